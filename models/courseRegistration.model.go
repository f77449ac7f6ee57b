package models

import (
	"time"

	"gorm.io/gorm"
)

// CourseRegistration is the legacy per-user course registration kept for
// clients that predate the enrollment/progress tables. CourseKey is the
// client-side course identifier, not a foreign key.
type CourseRegistration struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	CourseKey    string    `json:"course_id"`
	CourseTitle  string    `json:"course_title"`
	Status       string    `json:"status" gorm:"default:'active'"`
	Progress     int       `json:"progress" gorm:"default:0"`
	RegisteredAt time.Time `json:"registered_at"`
}
