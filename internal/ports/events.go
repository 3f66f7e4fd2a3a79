package ports

import (
	"context"
	"time"
)

// EnrollmentEvent is emitted after a submission reaches a terminal state.
type EnrollmentEvent struct {
	Reference   string    `json:"reference"`
	Outcome     string    `json:"outcome"`
	ErrorCode   string    `json:"error_code,omitempty"`
	StudentID   string    `json:"student_id,omitempty"`
	CourseID    string    `json:"course_id,omitempty"`
	CenterID    string    `json:"center_id,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// EventPublisher delivers enrollment events to the event stream.
type EventPublisher interface {
	Publish(ctx context.Context, event EnrollmentEvent) error
	Close() error
}
