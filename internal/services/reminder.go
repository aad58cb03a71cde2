package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventful/internal/domain"
)

type reminderService struct {
	reminderRepo domain.ReminderRepository
	queue        domain.TaskQueue
	logger       *slog.Logger
}

// NewReminderService creates the service driving the daily due-reminder pass.
func NewReminderService(reminderRepo domain.ReminderRepository, queue domain.TaskQueue, logger *slog.Logger) domain.ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		queue:        queue,
		logger:       logger,
	}
}

// RunDuePass claims every reminder due today and enqueues one dispatch task
// per claimed reminder. The claim commits the sent flag before the task is
// enqueued, so a crash mid-pass drops a reminder rather than duplicating it.
// Reminders another pass already claimed are skipped silently, which makes
// overlapping or repeated runs on the same day harmless.
func (s *reminderService) RunDuePass(ctx context.Context, now time.Time) (int, error) {
	today := now.Format(domain.ReminderDateLayout)
	due, err := s.reminderRepo.ListDue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list due reminders: %w", err)
	}

	enqueued := 0
	for _, d := range due {
		claimed, err := s.reminderRepo.ClaimSent(ctx, d.Reminder.ID)
		if err != nil {
			s.logger.Error("failed to claim reminder", "reminder_id", d.Reminder.ID, "error", err)
			continue
		}
		if !claimed {
			continue
		}
		d.Reminder.Sent = true
		if err := s.queue.EnqueueReminderSend(ctx, d); err != nil {
			s.logger.Error("failed to enqueue reminder dispatch",
				"reminder_id", d.Reminder.ID, "email", d.Reminder.Email, "error", err)
			continue
		}
		enqueued++
	}

	s.logger.Info("reminder pass complete", "date", today, "due", len(due), "enqueued", enqueued)
	return enqueued, nil
}
