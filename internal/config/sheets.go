package config

import (
	"os"

	"github.com/Veraticus/crux/internal/sheets"
	"github.com/spf13/viper"
)

// credentialEnv maps credential keys to the GOOGLE_SHEETS_* variables
// consulted when the key is unset in config.
var credentialEnv = []struct {
	key string
	env string
}{
	{"sheets.service_account_path", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"},
	{"sheets.client_id", "GOOGLE_SHEETS_CLIENT_ID"},
	{"sheets.client_secret", "GOOGLE_SHEETS_CLIENT_SECRET"},
	{"sheets.refresh_token", "GOOGLE_SHEETS_REFRESH_TOKEN"},
	{"sheets.spreadsheet_id", "GOOGLE_SHEETS_SPREADSHEET_ID"},
}

// sheetsString returns the configured value of key, falling back to its
// GOOGLE_SHEETS_* variable.
func sheetsString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	for _, c := range credentialEnv {
		if c.key == key {
			return os.Getenv(c.env)
		}
	}
	return ""
}

// LoadSheetsConfig builds the export configuration from the sheets.* keys
// on top of sheets.DefaultConfig and validates it.
func LoadSheetsConfig() (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	if v := sheetsString("sheets.service_account_path"); v != "" {
		cfg.ServiceAccountPath = ExpandPath(v)
	}
	cfg.ClientID = sheetsString("sheets.client_id")
	cfg.ClientSecret = sheetsString("sheets.client_secret")
	cfg.RefreshToken = sheetsString("sheets.refresh_token")
	cfg.SpreadsheetID = sheetsString("sheets.spreadsheet_id")

	if v := viper.GetString("sheets.spreadsheet_name"); v != "" {
		cfg.SpreadsheetName = v
	}
	if v := viper.GetString("sheets.time_zone"); v != "" {
		cfg.TimeZone = v
	}
	if v := viper.GetStringSlice("sheets.tabs"); len(v) > 0 {
		cfg.Tabs = v
	}
	if viper.IsSet("sheets.batch_size") {
		cfg.BatchSize = viper.GetInt("sheets.batch_size")
	}
	if viper.IsSet("sheets.retry_attempts") {
		cfg.RetryAttempts = viper.GetInt("sheets.retry_attempts")
	}
	if viper.IsSet("sheets.retry_delay") {
		cfg.RetryDelay = viper.GetDuration("sheets.retry_delay")
	}
	if viper.IsSet("sheets.formatting") {
		cfg.EnableFormatting = viper.GetBool("sheets.formatting")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
