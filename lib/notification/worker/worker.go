package notificationworker

import (
	"context"
	"time"

	"template-approval-backend/config"
	notificationhandler "template-approval-backend/lib/notification"
	baseworker "template-approval-backend/lib/utils/base-worker"
)

// StartWorker redelivers outbox rows whose immediate send attempt failed.
func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Notification.WorkerIntervalSec) * time.Second
	worker := baseworker.NewInstance("notification_redelivery", interval, interval)
	go worker.Run(ctx, func(ctx context.Context) {
		notificationhandler.Instance.RedeliverPending(ctx)
	})
}
