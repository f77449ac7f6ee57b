package models

import "gorm.io/gorm"

const (
	PaymentPurposeSubscription = "subscription"
	PaymentPurposeWebinar      = "webinar"
)

// PaymentEvent records a verified payment callback. OrderID is unique so a
// replayed callback for an already-processed order becomes a no-op instead
// of activating a purchase twice.
type PaymentEvent struct {
	gorm.Model
	OrderID   string `json:"order_id" gorm:"uniqueIndex;not null"`
	PaymentID string `json:"payment_id"`
	Purpose   string `json:"purpose"`
	UserID    *uint  `json:"user_id" gorm:"index"`
}
