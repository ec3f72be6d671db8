package tasks

import (
	"encoding/json"
	"fmt"

	"sokoni/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Task type names handled by the background worker.
const (
	TypeEmailSend = "email:send"
	TypePushSend  = "push:send"
)

// Enqueuer schedules post-commit side effects. Implementations must never
// let an enqueue failure propagate into the business transaction that
// already committed.
type Enqueuer interface {
	EnqueueEmail(msg models.EmailMessage) error
	EnqueuePush(msg models.PushMessage) error
}

// AsynqEnqueuer schedules tasks on the Redis-backed asynq queue.
type AsynqEnqueuer struct {
	client *asynq.Client
	logger *zap.Logger
}

// NewAsynqEnqueuer creates an Enqueuer on the given Redis connection.
func NewAsynqEnqueuer(redisOpts asynq.RedisClientOpt, logger *zap.Logger) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client: asynq.NewClient(redisOpts),
		logger: logger,
	}
}

// EnqueueEmail schedules an email send.
func (e *AsynqEnqueuer) EnqueueEmail(msg models.EmailMessage) error {
	return e.enqueue(TypeEmailSend, msg)
}

// EnqueuePush schedules a push notification send.
func (e *AsynqEnqueuer) EnqueuePush(msg models.PushMessage) error {
	return e.enqueue(TypePushSend, msg)
}

func (e *AsynqEnqueuer) enqueue(taskType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("tasks: failed to marshal %s payload: %w", taskType, err)
	}
	task := asynq.NewTask(taskType, b)
	info, err := e.client.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("tasks: failed to enqueue %s: %w", taskType, err)
	}
	e.logger.Debug("enqueued task",
		zap.String("type", taskType),
		zap.String("taskId", info.ID),
	)
	return nil
}

// Close releases the underlying queue client.
func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}
