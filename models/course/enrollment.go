package course

import (
	"time"

	"gorm.io/gorm"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentPaused    = "paused"
)

// Enrollment tracks a user's registration into a course. ProgressPercent
// and Status are a denormalized snapshot maintained by the progress
// service; the Progress table holds the per-lesson detail.
type Enrollment struct {
	gorm.Model
	UserID          uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID        uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Status          string     `json:"status" gorm:"default:'active'"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	ProgressPercent int        `json:"progress_percent" gorm:"default:0"`
	IsDeleted       bool       `json:"-" gorm:"default:false"`
}
