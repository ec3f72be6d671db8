package sellerRepo

import (
	"context"
	"fmt"
	"time"

	"sokoni/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApproveRequestTransactionally performs the five approval writes in a single
// Mongo transaction. The request status flip is conditional on the request
// still being pending, which serializes concurrent approval attempts: the
// losing attempt matches nothing and the whole transaction aborts.
func (r *MongoSellerRepo) ApproveRequestTransactionally(
	ctx context.Context,
	requestID, reviewerID string,
	profile *models.SellerProfile,
	shop *models.Shop,
	notification *models.Notification,
) error {
	client := r.sellerColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	shop.CreatedAt = now
	shop.UpdatedAt = now
	notification.CreatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.sellerColl.InsertOne(sc, profile); err != nil {
			return fmt.Errorf("insert seller profile failed: %w", err)
		}

		if _, err := r.shopColl.InsertOne(sc, shop); err != nil {
			return fmt.Errorf("insert shop failed: %w", err)
		}

		filter := bson.M{"id": requestID, "status": models.RequestStatusPending}
		update := bson.M{"$set": bson.M{
			"status":     models.RequestStatusApproved,
			"reviewedBy": reviewerID,
			"reviewedAt": now,
			"updatedAt":  now,
		}}
		res, err := r.requestColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("finalize seller request failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrRequestNotPending
		}

		userUpdate := bson.M{"$set": bson.M{
			"role":      models.RoleSeller,
			"status":    models.UserStatusActive,
			"updatedAt": now,
		}}
		userRes, err := r.userColl.UpdateOne(sc, bson.M{"id": profile.UserID}, userUpdate)
		if err != nil {
			return fmt.Errorf("promote user to seller failed: %w", err)
		}
		if userRes.MatchedCount == 0 {
			return fmt.Errorf("user %s not found", profile.UserID)
		}

		if _, err := r.notifColl.InsertOne(sc, notification); err != nil {
			return fmt.Errorf("insert notification failed: %w", err)
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
		if err == ErrRequestNotPending {
			return err
		}
		return fmt.Errorf("approval transaction failed: %w", err)
	}

	return nil
}
