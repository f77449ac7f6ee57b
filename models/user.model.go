package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TierFree    = "free"
	TierBasic   = "basic"
	TierPremium = "premium"
)

// Subscription is the per-user subscription state, embedded into the
// users table with a subscription_ column prefix.
type Subscription struct {
	Tier      string     `json:"tier" gorm:"default:'free'"`
	IsActive  bool       `json:"is_active" gorm:"default:false"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type User struct {
	gorm.Model
	Name           string       `json:"name" gorm:"default:''"`
	Email          string       `json:"email" gorm:"unique;not null"`
	Password       string       `json:"-"` // bcrypt hash, empty for OAuth-only accounts
	LinkedInID     string       `json:"linkedin_id" gorm:"index;default:''"`
	ProfilePicture string       `json:"profile_picture" gorm:"default:''"`
	Subscription   Subscription `json:"subscription" gorm:"embedded;embeddedPrefix:subscription_"`
	IsDeleted      bool         `json:"-" gorm:"default:false"`
}

// UserView is the sanitized user shape returned by the API.
type UserView struct {
	ID             uint         `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	ProfilePicture string       `json:"profile_picture,omitempty"`
	Subscription   Subscription `json:"subscription"`
}

func (u *User) View() UserView {
	return UserView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Subscription:   u.Subscription,
	}
}

// HasPasswordLogin reports whether the account can authenticate with a
// password. OAuth-only accounts store an empty hash.
func (u *User) HasPasswordLogin() bool {
	return u.Password != ""
}
