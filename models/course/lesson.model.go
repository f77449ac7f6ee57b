package course

import "gorm.io/gorm"

// Lesson is a unit of content within a module
type Lesson struct {
	gorm.Model
	UID             string         `json:"uid" gorm:"index;not null"`
	ModuleID        uint           `json:"module_id" gorm:"index;not null"`
	Title           string         `json:"title"`
	OrderIndex      int            `json:"order" gorm:"default:0"`
	DurationSeconds int            `json:"duration" gorm:"default:0"`
	VideoURL        string         `json:"video_url"`
	ContentBlocks   []ContentBlock `json:"content_blocks" gorm:"foreignKey:LessonID"`
}
