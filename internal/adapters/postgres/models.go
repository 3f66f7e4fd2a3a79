package postgres

import "time"

type submissionModel struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey"`
	Reference   string    `gorm:"column:reference;index"`
	Outcome     string    `gorm:"column:outcome"`
	ErrorCode   string    `gorm:"column:error_code"`
	StudentID   string    `gorm:"column:student_id"`
	CourseID    string    `gorm:"column:course_id"`
	CenterID    string    `gorm:"column:center_id"`
	Published   bool      `gorm:"column:published;index"`
	CompletedAt time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (submissionModel) TableName() string { return "submission_journal" }
