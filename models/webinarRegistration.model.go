package models

import "gorm.io/gorm"

// WebinarRegistration is a paid webinar seat. The record is created only
// after the payment callback signature has been verified.
type WebinarRegistration struct {
	gorm.Model
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"index"`
	Phone       string `json:"phone"`
	Experience  string `json:"experience"`
	Goals       string `json:"goals" gorm:"type:text"`
	OrderID     string `json:"order_id" gorm:"index"`
	PaymentID   string `json:"payment_id"`
	AmountPaise int64  `json:"amount" gorm:"default:0"`
	Status      string `json:"status" gorm:"default:'pending'"`
}
