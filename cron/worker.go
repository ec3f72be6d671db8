package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"sokoni/config"
	"sokoni/models"
	"sokoni/services/notification"
	"sokoni/services/subscription"
	"sokoni/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotificationWorker runs the async delivery worker in background.
func InitNotificationWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask(notifSvc))
	mux.HandleFunc(tasks.TypePushSend, handlePushTask(notifSvc))

	go func() {
		log.Println("[NotificationWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg models.EmailMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			log.Printf("[EmailHandler] Invalid payload: %v", err)
			return err
		}
		return notifSvc.SendEmail(ctx, msg)
	}
}

func handlePushTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg models.PushMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			log.Printf("[PushHandler] Invalid payload: %v", err)
			return err
		}
		return notifSvc.SendPush(ctx, msg)
	}
}

// InitSubscriptionSweeper periodically fails stale pending subscriptions
// and expires lapsed active ones.
func InitSubscriptionSweeper(subSvc subscription.SubscriptionService, logger *zap.Logger) {
	paymentWindow := time.Duration(config.AppConfig.PaymentWindowHours) * time.Hour

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, _, err := subSvc.Sweep(ctx, paymentWindow); err != nil {
				logger.Error("subscription sweep failed", zap.Error(err))
			}
			cancel()
		}
	}()
}
