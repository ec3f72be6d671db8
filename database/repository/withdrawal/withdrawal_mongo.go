package withdrawalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sokoni/database"
	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository sentinels.
var (
	// ErrNotFound is returned when no withdrawal matches.
	ErrNotFound = errors.New("withdrawal not found")
	// ErrStatusChanged is returned when the conditional transition matched
	// nothing because the stored status moved underneath the caller.
	ErrStatusChanged = errors.New("withdrawal status changed concurrently")
)

// WithdrawalRepository defines methods for withdrawal data access.
type WithdrawalRepository interface {
	// Create inserts a new withdrawal request.
	Create(withdrawal *models.Withdrawal) error
	// GetByID retrieves a withdrawal by its unique ID, or nil if absent.
	GetByID(id string) (*models.Withdrawal, error)
	// GetAllBySellerID retrieves the seller's withdrawals, newest first.
	GetAllBySellerID(sellerID string) ([]models.Withdrawal, error)
	// GetAll retrieves all withdrawals, newest first.
	GetAll() ([]models.Withdrawal, error)
	// TransitionStatus moves the withdrawal from fromStatus to toStatus.
	// The from-status condition makes the transition atomic;
	// ErrStatusChanged signals a lost race.
	TransitionStatus(id, fromStatus, toStatus string) error
	// ProcessTransactionally claims the pending-to-processing transition
	// and issues the payout transfer in one transaction. The claim is
	// written before createTransfer runs, so of two concurrent callers
	// only the claim winner ever reaches the gateway; the loser gets
	// ErrStatusChanged. A createTransfer failure rolls the claim back.
	ProcessTransactionally(ctx context.Context, id string, createTransfer func(ctx context.Context) (transferID string, err error)) error
}

// MongoWithdrawalRepo implements WithdrawalRepository using MongoDB.
type MongoWithdrawalRepo struct {
	coll *mongo.Collection
}

// NewMongoWithdrawalRepo creates a new instance of WithdrawalRepository
// using MongoDB.
func NewMongoWithdrawalRepo() WithdrawalRepository {
	coll := database.DB().Collection("withdrawals")
	repo := &MongoWithdrawalRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		fmt.Printf("failed to create withdrawal indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new withdrawal document.
func (r *MongoWithdrawalRepo) Create(withdrawal *models.Withdrawal) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	withdrawal.CreatedAt = now
	withdrawal.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, withdrawal); err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

// GetByID retrieves a withdrawal by its unique ID.
func (r *MongoWithdrawalRepo) GetByID(id string) (*models.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var withdrawal models.Withdrawal
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&withdrawal); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch withdrawal with id %s: %w", id, err)
	}
	return &withdrawal, nil
}

// GetAllBySellerID retrieves the seller's withdrawals, newest first.
func (r *MongoWithdrawalRepo) GetAllBySellerID(sellerID string) ([]models.Withdrawal, error) {
	return r.findAll(bson.M{"sellerId": sellerID})
}

// GetAll retrieves all withdrawals, newest first.
func (r *MongoWithdrawalRepo) GetAll() ([]models.Withdrawal, error) {
	return r.findAll(bson.M{})
}

func (r *MongoWithdrawalRepo) findAll(filter bson.M) ([]models.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve withdrawals: %w", err)
	}
	defer cursor.Close(ctx)

	var withdrawals []models.Withdrawal
	for cursor.Next(ctx) {
		var w models.Withdrawal
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode withdrawal: %w", err)
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}

// TransitionStatus moves the withdrawal between the given statuses.
func (r *MongoWithdrawalRepo) TransitionStatus(id, fromStatus, toStatus string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":    toStatus,
		"updatedAt": time.Now(),
	}

	filter := bson.M{"id": id, "status": fromStatus}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to transition withdrawal %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to check withdrawal %s: %w", id, err)
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrStatusChanged
	}
	return nil
}

// ProcessTransactionally claims the withdrawal for processing and runs
// createTransfer inside the same transaction. The conditional claim write
// lands before the gateway call, so a concurrent transaction touching the
// same document hits a write conflict and aborts without reaching the
// gateway; the transfer id commits together with the claimed status.
func (r *MongoWithdrawalRepo) ProcessTransactionally(
	ctx context.Context,
	id string,
	createTransfer func(ctx context.Context) (transferID string, err error),
) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": id, "status": models.WithdrawalPending}
		update := bson.M{"$set": bson.M{
			"status":    models.WithdrawalProcessing,
			"updatedAt": time.Now(),
		}}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("claim withdrawal failed: %w", err)
		}
		if res.MatchedCount == 0 {
			count, err := r.coll.CountDocuments(sc, bson.M{"id": id})
			if err != nil {
				return fmt.Errorf("check withdrawal failed: %w", err)
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrStatusChanged
		}

		transferID, err := createTransfer(sc)
		if err != nil {
			return fmt.Errorf("gateway transfer creation failed: %w", err)
		}

		set := bson.M{"$set": bson.M{
			"transferId": transferID,
			"updatedAt":  time.Now(),
		}}
		if _, err := r.coll.UpdateOne(sc, bson.M{"id": id}, set); err != nil {
			return fmt.Errorf("persist transfer id failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrNotFound || err == ErrStatusChanged {
			return err
		}
		return fmt.Errorf("withdrawal processing transaction failed: %w", err)
	}
	return nil
}
