package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/dataset"
	"github.com/Veraticus/crux/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useConfig loads yaml into the global viper for the duration of the test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(yaml)))
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/climber")
	t.Setenv("GYM", "boulder")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: "/home/climber"},
		{in: "~/data/a.csv", want: "/home/climber/data/a.csv"},
		{in: "/srv/$GYM/a.csv", want: "/srv/boulder/a.csv"},
		{in: "relative.csv", want: "relative.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDirs(t *testing.T) {
	t.Setenv("HOME", "/home/climber")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, "/home/climber/.local/share/crux", DataDir())
	assert.Equal(t, "/home/climber/.config/crux", ConfigDir())

	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	assert.Equal(t, filepath.Join("/xdg/data", "crux"), DataDir())
	assert.Equal(t, filepath.Join("/xdg/config", "crux"), ConfigDir())
}

func TestLoadSource(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		useConfig(t, "")
		src, err := LoadSource()
		require.NoError(t, err)
		assert.Equal(t, ',', src.Delimiter)
		assert.Equal(t, dataset.DefaultDateLayouts, src.DateLayouts)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("HOME", "/home/climber")
		useConfig(t, `
source:
  path: ~/gym.csv
  delimiter: ";"
  date_layouts: ["02.01.2006"]
  progress: true
`)
		src, err := LoadSource()
		require.NoError(t, err)
		assert.Equal(t, "/home/climber/gym.csv", src.Path)
		assert.Equal(t, ';', src.Delimiter)
		assert.Equal(t, []string{"02.01.2006"}, src.DateLayouts)
		assert.True(t, src.Progress)
	})

	t.Run("multi-character delimiter", func(t *testing.T) {
		useConfig(t, "source:\n  delimiter: \";;\"\n")
		_, err := LoadSource()
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestLoadNames(t *testing.T) {
	useConfig(t, `
names:
  weekdays:
    monday: [Montag, Mo]
  months:
    Mars: [März]
labels:
  weekdays:
    saturday: Sat
  months:
    january: Jan
`)

	names, err := LoadNames()
	require.NoError(t, err)
	assert.Equal(t, model.Monday, names.ParseWeekday("montag"))
	assert.Equal(t, model.Monday, names.ParseWeekday("Mo"))
	assert.Equal(t, model.March, names.ParseMonth("März"))
	assert.Equal(t, model.March, names.ParseMonth("Marz"))
	assert.Equal(t, "Sat", names.WeekdayLabel(model.Saturday))
	assert.Equal(t, "Jan", names.MonthLabel(model.January))
	assert.Equal(t, "Dimanche", names.WeekdayLabel(model.Sunday))
}

func TestLoadNames_UnknownKey(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "weekday alias", yaml: "names:\n  weekdays:\n    funday: [x]\n"},
		{name: "month alias", yaml: "names:\n  months:\n    smarch: [x]\n"},
		{name: "weekday label", yaml: "labels:\n  weekdays:\n    funday: x\n"},
		{name: "month label", yaml: "labels:\n  months:\n    smarch: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, tt.yaml)
			_, err := LoadNames()
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Setenv("HOME", "/home/climber")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	useConfig(t, `
sheets:
  service_account_path: ~/key.json
  batch_size: 50
  retry_delay: 2s
  formatting: false
  tabs: [summary, daily]
`)

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "/home/climber/key.json", cfg.ServiceAccountPath)
	assert.Equal(t, "from-env", cfg.SpreadsheetID)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.False(t, cfg.EnableFormatting)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, []string{"summary", "daily"}, cfg.Tabs)
}

func TestLoadSheetsConfig_ConfigBeatsEnvironment(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/env/key.json")
	useConfig(t, `
sheets:
  service_account_path: /etc/crux/key.json
  spreadsheet_id: from-file
`)

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "/etc/crux/key.json", cfg.ServiceAccountPath)
	assert.Equal(t, "from-file", cfg.SpreadsheetID)
}

func TestLoadSheetsConfig_MissingCredentials(t *testing.T) {
	for _, env := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(env, "")
	}
	useConfig(t, "")

	_, err := LoadSheetsConfig()
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
