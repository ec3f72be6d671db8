package subscriptionRepo

import (
	"context"
	"fmt"
	"time"

	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitiateTransactionally inserts the pending subscription and persists the
// gateway transaction reference in one transaction. The gateway call runs
// inside the transaction scope so a failure rolls the inserted row back and
// no orphaned pending subscription survives.
func (r *MongoSubscriptionRepo) InitiateTransactionally(
	ctx context.Context,
	sub *models.Subscription,
	createTransaction func(ctx context.Context) (transactionID, paymentURL string, err error),
) error {
	client := r.subColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.subColl.InsertOne(sc, sub); err != nil {
			return fmt.Errorf("insert subscription failed: %w", err)
		}

		transactionID, paymentURL, err := createTransaction(sc)
		if err != nil {
			return fmt.Errorf("gateway transaction creation failed: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"transactionId": transactionID,
			"paymentUrl":    paymentURL,
			"updatedAt":     time.Now(),
		}}
		if _, err := r.subColl.UpdateOne(sc, bson.M{"id": sub.ID}, update); err != nil {
			return fmt.Errorf("persist transaction id failed: %w", err)
		}

		sub.TransactionID = transactionID
		sub.PaymentURL = paymentURL
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
		return fmt.Errorf("subscription initiation transaction failed: %w", err)
	}

	return nil
}

// ActivateTransactionally flips the subscription to active, find-or-creates
// the seller profile keyed by userId and promotes the user, all in one
// transaction. The conditional status flip doubles as the idempotency guard:
// a subscription that is already active matches nothing and the call becomes
// a no-op rather than an error.
func (r *MongoSubscriptionRepo) ActivateTransactionally(
	ctx context.Context,
	subscriptionID string,
	profile *models.SellerProfile,
) (bool, error) {
	client := r.subColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return false, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	activated := false

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": subscriptionID, "status": models.SubscriptionPending}
		update := bson.M{"$set": bson.M{
			"status":      models.SubscriptionActive,
			"activatedAt": now,
			"updatedAt":   now,
		}}
		res, err := r.subColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("activate subscription failed: %w", err)
		}
		if res.MatchedCount == 0 {
			var existing models.Subscription
			if err := r.subColl.FindOne(sc, bson.M{"id": subscriptionID}).Decode(&existing); err != nil {
				if err == mongo.ErrNoDocuments {
					return ErrNotFound
				}
				return fmt.Errorf("fetch subscription failed: %w", err)
			}
			if existing.Status == models.SubscriptionActive {
				// Duplicate callback, nothing to do.
				return nil
			}
			return fmt.Errorf("subscription %s is %s, cannot activate", subscriptionID, existing.Status)
		}
		activated = true

		// Find-or-create the seller profile keyed by userId.
		count, err := r.sellerColl.CountDocuments(sc, bson.M{"userId": profile.UserID})
		if err != nil {
			return fmt.Errorf("check seller profile failed: %w", err)
		}
		if count == 0 {
			profile.CreatedAt = now
			profile.UpdatedAt = now
			if _, err := r.sellerColl.InsertOne(sc, profile); err != nil {
				return fmt.Errorf("insert seller profile failed: %w", err)
			}
		}

		userUpdate := bson.M{"$set": bson.M{
			"role":      models.RoleSeller,
			"updatedAt": now,
		}}
		userRes, err := r.userColl.UpdateOne(sc, bson.M{"id": profile.UserID}, userUpdate)
		if err != nil {
			return fmt.Errorf("promote user to seller failed: %w", err)
		}
		if userRes.MatchedCount == 0 {
			return fmt.Errorf("user %s not found", profile.UserID)
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
		if err == ErrNotFound {
			return false, err
		}
		return false, fmt.Errorf("subscription activation transaction failed: %w", err)
	}

	return activated, nil
}
