package subscriptionRepo

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

// MongoSubscriptionRepo implements SubscriptionRepository using MongoDB. It
// also holds the seller and user collections for the activation transaction.
type MongoSubscriptionRepo struct {
	subColl    *mongo.Collection
	sellerColl *mongo.Collection
	userColl   *mongo.Collection
}

// NewMongoSubscriptionRepo creates a new instance of SubscriptionRepository
// using MongoDB.
func NewMongoSubscriptionRepo() SubscriptionRepository {
	db := database.DB()
	repo := &MongoSubscriptionRepo{
		subColl:    db.Collection("subscriptions"),
		sellerColl: db.Collection("sellers"),
		userColl:   db.Collection("users"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create subscription indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSubscriptionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiresAt", Value: 1}}},
		// At most one pending or active subscription per user; backs the
		// conflict check in the initiation path against concurrent checkouts.
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{models.SubscriptionPending, models.SubscriptionActive}},
				}),
		},
	}

	if _, err := r.subColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a subscription by its unique ID.
func (r *MongoSubscriptionRepo) GetByID(id string) (*models.Subscription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var sub models.Subscription
	if err := r.subColl.FindOne(ctx, bson.M{"id": id}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch subscription with id %s: %w", id, err)
	}
	return &sub, nil
}

// GetCurrentByUserID retrieves the user's pending or active subscription.
func (r *MongoSubscriptionRepo) GetCurrentByUserID(userID string) (*models.Subscription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"userId": userID,
		"status": bson.M{"$in": bson.A{models.SubscriptionPending, models.SubscriptionActive}},
	}

	var sub models.Subscription
	if err := r.subColl.FindOne(ctx, filter).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch current subscription for user %s: %w", userID, err)
	}
	return &sub, nil
}

// MarkFailedOlderThan moves pending subscriptions created before the cutoff
// to failed.
func (r *MongoSubscriptionRepo) MarkFailedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":    models.SubscriptionPending,
		"createdAt": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.SubscriptionFailed,
		"updatedAt": time.Now(),
	}}

	result, err := r.subColl.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to fail stale pending subscriptions: %w", err)
	}
	return result.ModifiedCount, nil
}

// MarkExpired moves active subscriptions whose expiry has passed to expired.
func (r *MongoSubscriptionRepo) MarkExpired(ctx context.Context) (int64, error) {
	now := time.Now()
	filter := bson.M{
		"status":    models.SubscriptionActive,
		"expiresAt": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.SubscriptionExpired,
		"updatedAt": now,
	}}

	result, err := r.subColl.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	return result.ModifiedCount, nil
}
