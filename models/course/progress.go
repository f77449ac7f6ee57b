package course

import (
	"time"

	"gorm.io/gorm"
)

// Progress is the per-(user, course) activity ledger. OverallPercent and
// the last-activity pointer are derived from the activity records on every
// write.
type Progress struct {
	gorm.Model
	UserID         uint             `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CourseID       uint             `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	OverallPercent int              `json:"overall_percent" gorm:"default:0"`
	LastModuleUID  string           `json:"last_module_uid"`
	LastLessonUID  string           `json:"last_lesson_uid"`
	LastVisitedAt  *time.Time       `json:"last_visited_at"`
	Records        []ActivityRecord `json:"records" gorm:"foreignKey:ProgressID"`
}

// ActivityRecord is one lesson's state within a Progress ledger. The
// composite unique index keeps at most one record per (module, lesson)
// pair per ledger.
type ActivityRecord struct {
	gorm.Model
	ProgressID       uint      `json:"-" gorm:"uniqueIndex:idx_activity_lesson;not null"`
	ModuleUID        string    `json:"module_uid" gorm:"uniqueIndex:idx_activity_lesson;not null"`
	LessonUID        string    `json:"lesson_uid" gorm:"uniqueIndex:idx_activity_lesson;not null"`
	Completed        bool      `json:"completed" gorm:"default:false"`
	Score            *float64  `json:"score"`
	TimeSpentSeconds int64     `json:"time_spent_seconds" gorm:"default:0"`
	LastVisitedAt    time.Time `json:"last_visited_at"`
}
