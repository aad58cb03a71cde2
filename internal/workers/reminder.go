// Package workers runs the background side of reminder delivery: a scheduled
// daily pass that claims due reminders, and a consumer that sends one email
// per claimed reminder.
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"eventful/internal/adapters/queue"
	"eventful/internal/domain"
)

// Concurrency bounds how many reminder emails are in flight at once, keeping
// dispatch inside the mail provider's rate limits.
const Concurrency = 5

// reminderCheckCron fires the due-reminder pass every day at 07:00.
const reminderCheckCron = "0 7 * * *"

// ReminderHandler processes reminder tasks off the email queue.
type ReminderHandler struct {
	reminders domain.ReminderService
	emails    domain.EmailService
	logger    *slog.Logger
}

// NewReminderHandler creates a handler for reminder check and send tasks.
func NewReminderHandler(reminders domain.ReminderService, emails domain.EmailService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminders: reminders,
		emails:    emails,
		logger:    logger,
	}
}

// HandleCheck runs the daily due-reminder pass.
func (h *ReminderHandler) HandleCheck(ctx context.Context, _ *asynq.Task) error {
	enqueued, err := h.reminders.RunDuePass(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("reminder pass failed: %w", err)
	}
	h.logger.Info("reminder check done", "enqueued", enqueued)
	return nil
}

// HandleSend renders and sends one reminder email from the task payload.
func (h *ReminderHandler) HandleSend(ctx context.Context, t *asynq.Task) error {
	var due domain.DueReminder
	if err := json.Unmarshal(t.Payload(), &due); err != nil {
		return fmt.Errorf("unmarshal reminder task: %w", err)
	}
	if due.Reminder == nil || due.Event == nil {
		return fmt.Errorf("reminder task payload is incomplete")
	}
	data := &domain.ReminderEmailData{
		Email:         due.Reminder.Email,
		EventTitle:    due.Event.Title,
		EventDate:     due.Event.Date.Format("Monday January 2, 2006"),
		EventLocation: due.Event.Location,
		Year:          time.Now().Year(),
	}
	if err := h.emails.SendReminder(ctx, data); err != nil {
		return fmt.Errorf("send reminder to %s: %w", due.Reminder.Email, err)
	}
	return nil
}

// NewServer builds the asynq server and mux consuming the email queue.
func NewServer(redisAddr string, handler *ReminderHandler, logger *slog.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: Concurrency,
			Queues:      map[string]int{queue.Name: 1},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed", "type", task.Type(), "error", err)
			}),
		},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(domain.TaskReminderCheck, handler.HandleCheck)
	mux.HandleFunc(domain.TaskReminderSend, handler.HandleSend)
	return srv, mux
}

// NewScheduler builds the asynq scheduler that enqueues the daily check task.
// The registration is idempotent across restarts; only one check fires per
// day regardless of how often the process bounces.
func NewScheduler(redisAddr string, logger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: redisAddr}, nil)
	task := asynq.NewTask(domain.TaskReminderCheck, nil)
	entryID, err := scheduler.Register(reminderCheckCron, task, asynq.Queue(queue.Name), asynq.MaxRetry(0))
	if err != nil {
		return nil, fmt.Errorf("register reminder check schedule: %w", err)
	}
	logger.Info("reminder check scheduled", "cron", reminderCheckCron, "entry_id", entryID)
	return scheduler, nil
}
