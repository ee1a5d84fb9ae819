package config_test

import (
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYAML = `
env: development
http:
  address: ":9000"
  read_timeout: 5s
monitoring_port: 9100
postgres:
  host: db.internal
  port: "6543"
  user: athena
  password: filepass
  db_name: hris
auth:
  jwt_secret: file-secret
  session_ttl: 2h
default_locale: uk
app:
  application_name: People Desk
  add_ons:
    - chat
`

func Test_LoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HRIS_ENV", "local")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("MONITORING_PORT", "9090")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Postgres.Host)
	assert.Equal(t, "12345", cfg.Postgres.Port)
	assert.Equal(t, "admin", cfg.Postgres.User)
	assert.Equal(t, "adminpass", cfg.Postgres.Password)
	assert.Equal(t, "testName", cfg.Postgres.Dbname)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 9090, cfg.MonitoringPort)

	// defaults
	assert.Equal(t, ":8000", cfg.HTTP.Address)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, "HR Information System", cfg.App.ApplicationName)
	assert.Equal(t, []string{"HR Manager"}, cfg.App.OwnerRoles)
}

func Test_LoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", configYAML)
	t.Setenv("CONFIG_PATH", file.Name())

	t.Setenv("DB_PASSWORD", "envpass")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 9100, cfg.MonitoringPort)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "6543", cfg.Postgres.Port)
	assert.Equal(t, "envpass", cfg.Postgres.Password, "environment wins over the file")
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "uk", cfg.DefaultLocale)

	assert.Equal(t, "People Desk", cfg.App.ApplicationName)
	assert.Equal(t, []string{"chat"}, cfg.App.AddOns)
	assert.Equal(t, "Company", cfg.App.TenantName, "unset app keys keep their defaults")
}

func Test_LoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/definitely/not/here.yaml")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrConfigNotFound)
}

func Test_Validate(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USERNAME", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.ErrorIs(t, cfg.ValidateDatabase(), config.ErrDatabase)
	require.ErrorIs(t, cfg.ValidateAuth(), config.ErrJWTSecretEmpty)

	cfg.Postgres = config.PostgresConfig{Host: "h", User: "u", Dbname: "d"}
	cfg.Auth.JWTSecret = "s"
	require.NoError(t, cfg.Validate())

	cfg.App.ApplicationName = ""
	require.Error(t, cfg.Validate())

	assert.PanicsWithValue(t, "config error: database configuration is incomplete: missing host, user, db_name", func() {
		config.MustLoad()
	})
}

func Test_StringMasksSecrets(t *testing.T) {
	cfg := &config.Config{
		Postgres: config.PostgresConfig{Host: "h", User: "u", Password: "pg-secret", Dbname: "d"},
		Auth:     config.AuthConfig{JWTSecret: "jwt-secret"},
	}

	out := cfg.String()
	assert.NotContains(t, out, "pg-secret")
	assert.NotContains(t, out, "jwt-secret")
	assert.Contains(t, out, "u@h")
}
