package utils

import (
	"log"

	"vibelms/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartSubscriptionScheduler runs the daily subscription-expiry sweep.
func StartSubscriptionScheduler(db *gorm.DB) *cron.Cron {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Daily at 9 AM server time.
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription check...")
		ExpireSubscriptions(db)
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 9 AM")
	return c
}

// ExpireSubscriptions deactivates paid subscriptions whose end date has
// passed. Tier is left untouched so the last purchased plan stays visible.
func ExpireSubscriptions(db *gorm.DB) {
	cutoff := now.BeginningOfDay()

	result := db.Model(&models.User{}).
		Where("subscription_is_active = ? AND subscription_end_date IS NOT NULL AND subscription_end_date < ?", true, cutoff).
		Update("subscription_is_active", false)

	if result.Error != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscriptions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Expired %d subscriptions", result.RowsAffected)
	}
}
