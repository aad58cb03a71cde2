package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"eventful/internal/domain"
)

// Name is the queue all reminder tasks flow through, for both the API-side
// enqueue client and the worker.
const Name = "email-queue"

type client struct {
	inner *asynq.Client
}

// NewClient returns a TaskQueue backed by asynq on the given Redis address.
func NewClient(redisAddr string) (domain.TaskQueue, func() error) {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	return &client{inner: c}, c.Close
}

// EnqueueReminderSend enqueues one dispatch task for a claimed reminder.
// MaxRetry is zero: the sent flag was already committed, so a failed send is
// logged and dropped rather than retried.
func (c *client) EnqueueReminderSend(ctx context.Context, task *domain.DueReminder) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal reminder task: %w", err)
	}
	t := asynq.NewTask(domain.TaskReminderSend, payload)
	if _, err := c.inner.EnqueueContext(ctx, t, asynq.Queue(Name), asynq.MaxRetry(0)); err != nil {
		return fmt.Errorf("enqueue %s: %w", domain.TaskReminderSend, err)
	}
	return nil
}
