package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/brightpath/student-portal-api/internal/ports"
)

// OutboxWorker drains the submission journal and publishes enrollment events.
// Separating the transactional journal write from broker delivery keeps the
// submission pipeline independent of broker availability.
type OutboxWorker struct {
	logger    *slog.Logger
	journal   ports.SubmissionJournal
	publisher ports.EventPublisher
	interval  time.Duration
	batchSize int
}

func NewOutboxWorker(
	logger *slog.Logger,
	journal ports.SubmissionJournal,
	publisher ports.EventPublisher,
	interval time.Duration,
	batchSize int,
) *OutboxWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &OutboxWorker{
		logger:    logger,
		journal:   journal,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run executes the periodic publish loop until context cancellation.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.processOnce(ctx); err != nil {
			w.logger.ErrorContext(ctx, "outbox iteration failed",
				"module", "events.outbox_worker",
				"layer", "adapter",
				"operation", "outbox_process_once",
				"outcome", "failure",
				"error", err,
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *OutboxWorker) processOnce(ctx context.Context) error {
	records, err := w.journal.ListUnpublished(ctx, w.batchSize)
	if err != nil {
		return err
	}

	publishedIDs := make([]string, 0, len(records))
	for _, rec := range records {
		event := ports.EnrollmentEvent{
			Reference:   rec.Reference,
			Outcome:     rec.Outcome,
			ErrorCode:   rec.ErrorCode,
			StudentID:   rec.StudentID,
			CourseID:    rec.CourseID,
			CenterID:    rec.CenterID,
			CompletedAt: rec.CompletedAt,
		}
		if err := w.publisher.Publish(ctx, event); err != nil {
			// Leave the row unpublished; the next tick retries it.
			w.logger.WarnContext(ctx, "publish enrollment event failed",
				"module", "events.outbox_worker",
				"layer", "adapter",
				"operation", "publish",
				"outcome", "failure",
				"reference", rec.Reference,
				"error", err,
			)
			continue
		}
		publishedIDs = append(publishedIDs, rec.ID)
	}

	if len(publishedIDs) > 0 {
		if err := w.journal.MarkPublished(ctx, publishedIDs); err != nil {
			return err
		}
		w.logger.InfoContext(ctx, "enrollment events published",
			"module", "events.outbox_worker",
			"layer", "adapter",
			"operation", "outbox_process_once",
			"outcome", "success",
			"count", len(publishedIDs),
		)
	}
	return nil
}
