package course

import "gorm.io/gorm"

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title       string   `json:"title"`
	Slug        string   `json:"slug" gorm:"uniqueIndex;not null"`
	Description string   `json:"description" gorm:"type:text"`
	Level       string   `json:"level" gorm:"default:'beginner'"`
	PricePaise  int64    `json:"price" gorm:"default:0"` // minor units
	Tags        []string `json:"tags" gorm:"serializer:json"`
	OwnerID     uint     `json:"owner_id" gorm:"index"`
	IsPublished bool     `json:"is_published" gorm:"default:false"`
	IsDeleted   bool     `json:"-" gorm:"default:false"`
	Modules     []Module `json:"modules" gorm:"foreignKey:CourseID"`
}
