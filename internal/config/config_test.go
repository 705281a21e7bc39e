package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"PrefLifeConfig", config.PrefLifeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestGridConstants pins the arithmetic the week grid depends on.
func TestGridConstants(t *testing.T) {
	assert.Equal(t, 52, config.WeeksPerRow)
	assert.Equal(t, 365.25, config.DaysPerYear)
	assert.Equal(t, 7, config.DaysPerWeek)
	assert.Equal(t, 1, config.ConfigVersion)
	assert.LessOrEqual(t, config.DefaultTotalYears, config.MaxTotalYears)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-LifeWeeks/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second)
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute)
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second)

	assert.Greater(t, config.MaxHTTPResponseSize, 0)
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")

	// A share token never needs more than a few kilobytes once inflated.
	assert.GreaterOrEqual(t, config.MaxDecodedSize, 64*1024)
}
