package sellerRequestRepo

import (
	"context"
	"fmt"
	"time"

	"sokoni/database"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSellerRequestRepo implements SellerRequestRepository using MongoDB.
type MongoSellerRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoSellerRequestRepo creates a new instance of SellerRequestRepository
// using MongoDB.
func NewMongoSellerRequestRepo() SellerRequestRepository {
	coll := database.DB().Collection("seller_requests")
	repo := &MongoSellerRequestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create seller request indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSellerRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		// At most one pending request per user; backs the duplicate check
		// in the submit path against concurrent submissions.
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.RequestStatusPending}),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new seller request document.
func (r *MongoSellerRequestRepo) Create(request *models.SellerRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, request); err != nil {
		return fmt.Errorf("failed to create seller request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its unique ID. Returns nil without error
// when no request exists.
func (r *MongoSellerRequestRepo) GetByID(id string) (*models.SellerRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var request models.SellerRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch seller request with id %s: %w", id, err)
	}
	return &request, nil
}

// GetActiveByUserID retrieves the user's pending or approved request.
func (r *MongoSellerRequestRepo) GetActiveByUserID(userID string) (*models.SellerRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"userId": userID,
		"status": bson.M{"$in": bson.A{models.RequestStatusPending, models.RequestStatusApproved}},
	}

	var request models.SellerRequest
	if err := r.coll.FindOne(ctx, filter).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch active seller request for user %s: %w", userID, err)
	}
	return &request, nil
}

// GetLatestByUserID retrieves the user's most recent request.
func (r *MongoSellerRequestRepo) GetLatestByUserID(userID string) (*models.SellerRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var request models.SellerRequest
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest seller request for user %s: %w", userID, err)
	}
	return &request, nil
}

// GetAllByStatus retrieves all requests in the given status, newest first.
func (r *MongoSellerRequestRepo) GetAllByStatus(status string) ([]models.SellerRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve seller requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.SellerRequest
	for cursor.Next(ctx) {
		var req models.SellerRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode seller request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// Reject finalizes a pending request as rejected. The status condition in
// the filter makes the check-then-act atomic: a request that was finalized
// concurrently matches nothing.
func (r *MongoSellerRequestRepo) Reject(id, reviewerID, reason string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": id, "status": models.RequestStatusPending}
	update := bson.M{"$set": bson.M{
		"status":          models.RequestStatusRejected,
		"rejectionReason": reason,
		"reviewedBy":      reviewerID,
		"reviewedAt":      now,
		"updatedAt":       now,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reject seller request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to check seller request %s: %w", id, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotPending
	}
	return nil
}
