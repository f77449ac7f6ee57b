package utils

import (
	"testing"
	"time"

	"vibelms/database"
	"vibelms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedSubscriber(t *testing.T, db *gorm.DB, email string, active bool, endsAt *time.Time) {
	t.Helper()

	user := models.User{
		Email: email,
		Subscription: models.Subscription{
			Tier:     models.TierBasic,
			IsActive: active,
			EndDate:  endsAt,
		},
	}
	require.NoError(t, db.Create(&user).Error)
}

func TestExpireSubscriptions(t *testing.T) {
	db := newTestDB(t)

	past := time.Now().AddDate(0, 0, -3)
	future := time.Now().AddDate(0, 1, 0)

	seedSubscriber(t, db, "expired@example.com", true, &past)
	seedSubscriber(t, db, "current@example.com", true, &future)
	seedSubscriber(t, db, "never-paid@example.com", false, nil)

	ExpireSubscriptions(db)

	var expired, current models.User
	require.NoError(t, db.Where("email = ?", "expired@example.com").First(&expired).Error)
	require.NoError(t, db.Where("email = ?", "current@example.com").First(&current).Error)

	assert.False(t, expired.Subscription.IsActive)
	// Tier sticks around after expiry; only the active flag drops.
	assert.Equal(t, models.TierBasic, expired.Subscription.Tier)

	assert.True(t, current.Subscription.IsActive)
}

func TestExpireSubscriptionsIgnoresOpenEnded(t *testing.T) {
	db := newTestDB(t)

	seedSubscriber(t, db, "open@example.com", true, nil)

	ExpireSubscriptions(db)

	var user models.User
	require.NoError(t, db.Where("email = ?", "open@example.com").First(&user).Error)
	assert.True(t, user.Subscription.IsActive)
}
