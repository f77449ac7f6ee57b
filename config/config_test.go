package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("SALT_ROUND", "")
	t.Setenv("ADMIN_EMAILS", "admin@example.com, second@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 10, cfg.SaltRound)
	assert.Equal(t, []string{"admin@example.com", "second@example.com"}, cfg.AdminEmails)
}

func TestIsAdminEmail(t *testing.T) {
	cfg := &Config{AdminEmails: []string{"admin@example.com"}}

	assert.True(t, cfg.IsAdminEmail("admin@example.com"))
	assert.True(t, cfg.IsAdminEmail("ADMIN@example.com")) // case-insensitive
	assert.False(t, cfg.IsAdminEmail("user@example.com"))
	assert.False(t, cfg.IsAdminEmail(""))
}
