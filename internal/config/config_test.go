package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Data: DataConfig{
			BasePath: "/some/path",
		},
		Indicator: IndicatorConfig{
			BaptismAnnualTarget: 168,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.BasePath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data base path")
}

func TestValidate_BaptismTarget(t *testing.T) {
	cfg := validConfig()
	cfg.Indicator.BaptismAnnualTarget = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baptism annual target")
}

func TestValidate_PortalTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Portal.BaseURL = "https://portal.example.org"
	cfg.Portal.Timeout = 0

	err := cfg.Validate()
	require.Error(t, err)

	cfg.Portal.BaseURL = ""
	assert.NoError(t, cfg.Validate())
}

func TestPortalEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.PortalEnabled())

	cfg.Portal.BaseURL = "https://portal.example.org"
	assert.True(t, cfg.PortalEnabled())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name        string
		path        string
		defaultPath string
		want        string
	}{
		{
			name:        "empty uses default",
			path:        "",
			defaultPath: "/default/path",
			want:        "/default/path",
		},
		{
			name: "tilde expansion",
			path: "~/data",
			want: filepath.Join(home, "data"),
		},
		{
			name: "absolute path unchanged",
			path: "/var/lib/stakemetrics",
			want: "/var/lib/stakemetrics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.path, tt.defaultPath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("STAKEMETRICS_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "STAKEMETRICS_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "STAKEMETRICS_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "STAKEMETRICS_TEST_MISSING", "default"))
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("STAKEMETRICS_TEST_INT", "42")

	assert.Equal(t, 42, getIntConfigValue("", "STAKEMETRICS_TEST_INT", 7))
	assert.Equal(t, 7, getIntConfigValue("", "STAKEMETRICS_TEST_INT_MISSING", 7))

	t.Setenv("STAKEMETRICS_TEST_INT", "not-a-number")
	assert.Equal(t, 7, getIntConfigValue("", "STAKEMETRICS_TEST_INT", 7))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	content := "# comment\nSTAKEMETRICS_ENVFILE_A=hello\nSTAKEMETRICS_ENVFILE_B=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("STAKEMETRICS_ENVFILE_A", "")
	os.Unsetenv("STAKEMETRICS_ENVFILE_A")
	t.Setenv("STAKEMETRICS_ENVFILE_B", "")
	os.Unsetenv("STAKEMETRICS_ENVFILE_B")

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "hello", os.Getenv("STAKEMETRICS_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("STAKEMETRICS_ENVFILE_B"))
}

func TestLoadEnvFile_DoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STAKEMETRICS_ENVFILE_C=file\n"), 0o600))

	t.Setenv("STAKEMETRICS_ENVFILE_C", "env")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "env", os.Getenv("STAKEMETRICS_ENVFILE_C"))
}
