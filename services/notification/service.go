package notification

import (
	"context"
	"fmt"

	userRepo "sokoni/database/repository/user"
	"sokoni/models"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation: SMTP for
// email, FCM for push.
type DefaultNotificationService struct {
	Mailer    *SMTPMailer
	FCMClient *messaging.Client
	Users     userRepo.UserRepository
	Logger    *zap.Logger
}

// SendEmail delivers a templated email.
func (s *DefaultNotificationService) SendEmail(ctx context.Context, msg models.EmailMessage) error {
	if msg.To == "" {
		return fmt.Errorf("notification: email message has no recipient")
	}
	if err := s.Mailer.Send(msg); err != nil {
		return err
	}
	s.Logger.Info("sent email",
		zap.String("to", msg.To),
		zap.String("template", msg.Template),
	)
	return nil
}

// SendPush looks up the user's FCM token and sends a push. Users without a
// registered token are skipped silently.
func (s *DefaultNotificationService) SendPush(ctx context.Context, msg models.PushMessage) error {
	if s.FCMClient == nil {
		s.Logger.Debug("push disabled, skipping", zap.String("userId", msg.UserID))
		return nil
	}

	u, err := s.Users.GetByIDWithProjection(msg.UserID, bson.M{"fcmToken": 1})
	if err != nil {
		return fmt.Errorf("notification: could not find user %s: %w", msg.UserID, err)
	}
	if u == nil || u.FCMToken == "" {
		return nil
	}

	fcmMsg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	}

	if _, err := s.FCMClient.Send(ctx, fcmMsg); err != nil {
		return fmt.Errorf("notification: failed to send FCM message to user %s: %w", msg.UserID, err)
	}
	return nil
}
