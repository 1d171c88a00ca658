package sheets

import (
	"testing"
	"time"

	"github.com/Veraticus/crux/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		wantIs error
		name   string
		errMsg string
		config Config
	}{
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:        "test-client",
				RefreshToken:    "test-token",
				SpreadsheetName: "Gym",
				BatchSize:       100,
				RetryAttempts:   3,
				RetryDelay:      time.Second,
			},
			wantIs: common.ErrMissingConfig,
			errMsg: "no authentication method configured",
		},
		{
			name: "both auth methods",
			config: Config{
				ClientID:           "id",
				ClientSecret:       "secret",
				RefreshToken:       "token",
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetName:    "Gym",
				BatchSize:          100,
			},
			wantIs: common.ErrInvalidConfig,
			errMsg: "multiple authentication methods",
		},
		{
			name: "zero retry delay is valid",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetName:    "Gym",
				BatchSize:          100,
			},
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetName:    "Gym",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         -1 * time.Second,
			},
			wantIs: common.ErrInvalidConfig,
			errMsg: "retry delay cannot be negative",
		},
		{
			name: "no spreadsheet target",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantIs: common.ErrMissingConfig,
		},
		{
			name: "known tabs in any case",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetName:    "Gym",
				BatchSize:          100,
				Tabs:               []string{"summary", "Heatmap"},
			},
		},
		{
			name: "unknown tab",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				SpreadsheetName:    "Gym",
				BatchSize:          100,
				Tabs:               []string{"Summary", "Leaderboard"},
			},
			wantIs: common.ErrInvalidConfig,
			errMsg: `unknown tab "Leaderboard"`,
		},
		{
			name:   "defaults still need credentials",
			config: DefaultConfig(),
			wantIs: common.ErrMissingConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantIs)
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestConfig_Wants(t *testing.T) {
	all := Config{}
	assert.True(t, all.wants("Daily"))

	some := Config{Tabs: []string{"summary", "weekly"}}
	assert.True(t, some.wants("Summary"))
	assert.True(t, some.wants("Weekly"))
	assert.False(t, some.wants("Daily"))
}
