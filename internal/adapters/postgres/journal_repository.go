package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath/student-portal-api/internal/domain"
)

// JournalRepository persists completed submission attempts.
// This is an audit trail and event outbox; it carries no dedup semantics.
type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Record(ctx context.Context, rec domain.SubmissionRecord) error {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	row := submissionModel{
		ID:          id,
		Reference:   rec.Reference,
		Outcome:     rec.Outcome,
		ErrorCode:   rec.ErrorCode,
		StudentID:   rec.StudentID,
		CourseID:    rec.CourseID,
		CenterID:    rec.CenterID,
		Published:   rec.Published,
		CompletedAt: rec.CompletedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *JournalRepository) ListUnpublished(ctx context.Context, limit int) ([]domain.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []submissionModel
	err := r.db.WithContext(ctx).
		Where("published = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.SubmissionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SubmissionRecord{
			ID:          row.ID,
			Reference:   row.Reference,
			Outcome:     row.Outcome,
			ErrorCode:   row.ErrorCode,
			StudentID:   row.StudentID,
			CourseID:    row.CourseID,
			CenterID:    row.CenterID,
			Published:   row.Published,
			CompletedAt: row.CompletedAt,
		})
	}
	return out, nil
}

func (r *JournalRepository) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("id IN ?", ids).
		Update("published", true).Error
}
