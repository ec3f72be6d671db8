package notification

import (
	"context"

	"sokoni/models"
)

// NotificationService dispatches emails and push notifications to users.
// Both channels are best-effort collaborators: failures are logged by the
// callers and never unwind committed business state.
type NotificationService interface {
	SendEmail(ctx context.Context, msg models.EmailMessage) error
	SendPush(ctx context.Context, msg models.PushMessage) error
}
