package ports

import (
	"context"

	"github.com/brightpath/student-portal-api/internal/domain"
)

// SubmissionJournal is the optional audit trail of completed submissions.
// It is write-behind only: the dedup guard never consults it, so a retried
// reference after completion still starts a fresh attempt.
type SubmissionJournal interface {
	Record(ctx context.Context, rec domain.SubmissionRecord) error
	ListUnpublished(ctx context.Context, limit int) ([]domain.SubmissionRecord, error)
	MarkPublished(ctx context.Context, ids []string) error
}
