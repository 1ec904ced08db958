package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CHAT_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "gemini", cfg.Completion.Provider)
	assert.Equal(t, 20*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, 5, cfg.Chat.RecentExpenses)
	assert.Equal(t, 7, cfg.Chat.ReportWindowDays)
	assert.Equal(t, time.UTC, cfg.Chat.Location)
	assert.InDelta(t, 0.3, cfg.Completion.Gemini.Temperature, 1e-6)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CHAT_TIMEZONE", "America/Lima")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("COMPLETION_PROVIDER", "gigachat")
	t.Setenv("COMPLETION_TIMEOUT_SECONDS", "5")
	t.Setenv("REPORT_WINDOW_DAYS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "gigachat", cfg.Completion.Provider)
	assert.Equal(t, 5*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, 30, cfg.Chat.ReportWindowDays)
	assert.Equal(t, "America/Lima", cfg.Chat.Location.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "storage driver", key: "STORAGE_DRIVER", value: "redis"},
		{name: "provider", key: "COMPLETION_PROVIDER", value: "openai"},
		{name: "window", key: "REPORT_WINDOW_DAYS", value: "-1"},
		{name: "timezone", key: "CHAT_TIMEZONE", value: "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHAT_TIMEZONE", "UTC")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_ConnectionStrings(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "finanzas", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=finanzas sslmode=disable", db.DSN())
	assert.Equal(t, "pgx5://u:p@db:5432/finanzas?sslmode=disable", db.URL("pgx5"))
}

func TestDatabaseConfig_URLEscapesCredentials(t *testing.T) {
	db := DatabaseConfig{Host: "db.internal", Port: "5433", User: "app@team", Password: "p@ss/w#rd:1", DBName: "finanzas", SSLMode: "require"}

	u, err := url.Parse(db.URL("pgx5"))
	require.NoError(t, err)

	assert.Equal(t, "pgx5", u.Scheme)
	assert.Equal(t, "db.internal", u.Hostname())
	assert.Equal(t, "5433", u.Port())
	assert.Equal(t, "app@team", u.User.Username())
	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss/w#rd:1", password)
	assert.Equal(t, "/finanzas", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}
