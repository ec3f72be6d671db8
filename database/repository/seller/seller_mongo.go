package sellerRepo

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

// MongoSellerRepo implements SellerRepository using MongoDB. It holds the
// collections touched by the approval transaction.
type MongoSellerRepo struct {
	sellerColl  *mongo.Collection
	shopColl    *mongo.Collection
	requestColl *mongo.Collection
	userColl    *mongo.Collection
	notifColl   *mongo.Collection
}

// NewMongoSellerRepo creates a new instance of SellerRepository using MongoDB.
func NewMongoSellerRepo() SellerRepository {
	db := database.DB()
	repo := &MongoSellerRepo{
		sellerColl:  db.Collection("sellers"),
		shopColl:    db.Collection("shops"),
		requestColl: db.Collection("seller_requests"),
		userColl:    db.Collection("users"),
		notifColl:   db.Collection("notifications"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create seller indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSellerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.sellerColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create seller indexes: %w", err)
	}

	_, err = r.shopColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sellerId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create shop indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a seller profile by its unique ID.
func (r *MongoSellerRepo) GetByID(id string) (*models.SellerProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.SellerProfile
	if err := r.sellerColl.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch seller with id %s: %w", id, err)
	}
	return &profile, nil
}

// GetByUserID retrieves the seller profile owned by the user.
func (r *MongoSellerRepo) GetByUserID(userID string) (*models.SellerProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.SellerProfile
	if err := r.sellerColl.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch seller for user %s: %w", userID, err)
	}
	return &profile, nil
}

// GetShopBySellerID retrieves the seller's shop.
func (r *MongoSellerRepo) GetShopBySellerID(sellerID string) (*models.Shop, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var shop models.Shop
	if err := r.shopColl.FindOne(ctx, bson.M{"sellerId": sellerID}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shop for seller %s: %w", sellerID, err)
	}
	return &shop, nil
}

// UpdateStatus sets the seller status and mirrors it onto the shop.
func (r *MongoSellerRepo) UpdateStatus(sellerID, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	result, err := r.sellerColl.UpdateOne(ctx,
		bson.M{"id": sellerID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to update seller %s status: %w", sellerID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	if _, err := r.shopColl.UpdateOne(ctx,
		bson.M{"sellerId": sellerID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": now}},
	); err != nil {
		return fmt.Errorf("failed to mirror status onto shop for seller %s: %w", sellerID, err)
	}
	return nil
}
