package course

import "gorm.io/gorm"

// Module represents a section/module within a course. UID is the stable
// opaque identifier progress records point at; it survives course edits
// while the row id does not have to.
type Module struct {
	gorm.Model
	UID        string   `json:"uid" gorm:"index;not null"`
	CourseID   uint     `json:"course_id" gorm:"index;not null"`
	Title      string   `json:"title"`
	OrderIndex int      `json:"order" gorm:"default:0"`
	Lessons    []Lesson `json:"lessons" gorm:"foreignKey:ModuleID"`
}
