package models

import "gorm.io/gorm"

// Contact stores a message submitted through the contact form
type Contact struct {
	gorm.Model
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message" gorm:"type:text"`
}
