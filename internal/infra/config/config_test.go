package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/niceday")
	t.Setenv("ADMIN_TELEGRAM_ID", "12345")
	for _, key := range []string{"LOG_LEVEL", "ENVIRONMENT", "TIMEZONE", "CRON_SPEC_DAILY_DIGEST", "CRON_SPEC_MONTHLY_OUTLOOK", "RANGE_DAYS_BEFORE", "RANGE_DAYS_AFTER"} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, int64(12345), cfg.AdminTelegramID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "0 8 * * *", cfg.CronSpecDailyDigest)
	assert.Equal(t, "0 9 1 * *", cfg.CronSpecMonthlyOutlook)
	assert.Equal(t, 10, cfg.RangeDaysBefore)
	assert.Equal(t, 20, cfg.RangeDaysAfter)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("TIMEZONE", "Asia/Shanghai")
	t.Setenv("RANGE_DAYS_BEFORE", "3")
	t.Setenv("RANGE_DAYS_AFTER", "7")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "Asia/Shanghai", cfg.Location.String())
	assert.Equal(t, 3, cfg.RangeDaysBefore)
	assert.Equal(t, 7, cfg.RangeDaysAfter)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing token", "TELEGRAM_TOKEN", ""},
		{"missing database", "DATABASE_URL", ""},
		{"missing admin", "ADMIN_TELEGRAM_ID", ""},
		{"bad admin", "ADMIN_TELEGRAM_ID", "admin"},
		{"bad timezone", "TIMEZONE", "Mars/Olympus"},
		{"bad range", "RANGE_DAYS_BEFORE", "ten"},
		{"negative range", "RANGE_DAYS_AFTER", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
