package domain

import "context"

// Task names on the email queue. The check task is registered as a repeating
// job with a stable ID; send tasks are one-shot, one per due reminder.
const (
	TaskReminderCheck = "reminder:check"
	TaskReminderSend  = "reminder:send"
)

// TaskQueue is the message-passing boundary between the API/scheduler and
// the dispatch worker. Implementations are durable (Redis-backed); the two
// processes never share memory.
type TaskQueue interface {
	EnqueueReminderSend(ctx context.Context, task *DueReminder) error
}
