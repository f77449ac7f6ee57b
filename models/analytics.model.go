package models

import "gorm.io/gorm"

// AnalyticsEvent is a client-reported tracking event
type AnalyticsEvent struct {
	gorm.Model
	Event     string `json:"event" gorm:"index"`
	Category  string `json:"category"`
	Label     string `json:"label"`
	Value     int    `json:"value" gorm:"default:0"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	UserAgent string `json:"user_agent"`
	IP        string `json:"ip"`
}
