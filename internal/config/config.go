package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/UnknownOlympus/athena/internal/appconfig"
	"github.com/spf13/viper"
)

var (
	ErrConfigNotFound = errors.New("config file does not exist")
	ErrDatabase       = errors.New("database configuration is incomplete")
	ErrJWTSecretEmpty = errors.New("jwt secret is empty")
	ErrSessionTTL     = errors.New("session ttl must be positive")
)

const (
	defaultHTTPAddress    = ":8000"
	defaultMonitoringPort = 8080
	defaultPostgresPort   = "5432"
	defaultSessionTTL     = 8 * time.Hour
	defaultLocale         = "en"
	defaultEnv            = "local"
)

type Config struct {
	Env            string         `yaml:"env"`             // Env is the current environment: local, development, production.
	HTTP           HTTPConfig     `yaml:"http"`            // HTTP holds the web server configuration.
	MonitoringPort int            `yaml:"monitoring_port"` // MonitoringPort serves /metrics and /healthz.
	Postgres       PostgresConfig `yaml:"postgres"`        // Postgres holds the database configuration.
	Auth           AuthConfig     `yaml:"auth"`            // Auth holds the session token configuration.
	DefaultLocale  string         `yaml:"default_locale"`  // DefaultLocale is used when the request names none.
	App            appconfig.Spec `yaml:"app"`             // App is the declarative role and ability configuration.
}

// HTTPConfig struct holds the listen address and timeouts of the web server.
type HTTPConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

// AuthConfig struct holds the signing secret and lifetime of session tokens.
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// envBindings maps config keys to the environment variables overriding them.
var envBindings = map[string]string{
	"env":                "HRIS_ENV",
	"http.address":       "HTTP_ADDRESS",
	"monitoring_port":    "MONITORING_PORT",
	"postgres.host":      "DB_HOST",
	"postgres.port":      "DB_PORT",
	"postgres.user":      "DB_USERNAME",
	"postgres.password":  "DB_PASSWORD",
	"postgres.db_name":   "DB_NAME",
	"auth.jwt_secret":    "JWT_SECRET",
	"auth.session_ttl":   "SESSION_TTL",
	"auth.cookie_secure": "COOKIE_SECURE",
	"default_locale":     "DEFAULT_LOCALE",
}

// Load reads the optional YAML file named by CONFIG_PATH and applies the
// environment on top of it. Missing values fall back to defaults.
func Load() (*Config, error) {
	vpr := viper.New()
	setDefaults(vpr)

	for key, env := range envBindings {
		if err := vpr.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		vpr.SetConfigFile(configPath)
		if filepath.Ext(configPath) == "" {
			vpr.SetConfigType("yaml")
		}
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	app := appconfig.DefaultSpec()
	if vpr.IsSet("app") {
		if err := vpr.UnmarshalKey("app", &app); err != nil {
			return nil, fmt.Errorf("failed to decode app section: %w", err)
		}
	}

	return &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Address:      vpr.GetString("http.address"),
			ReadTimeout:  vpr.GetDuration("http.read_timeout"),
			WriteTimeout: vpr.GetDuration("http.write_timeout"),
			IdleTimeout:  vpr.GetDuration("http.idle_timeout"),
		},
		MonitoringPort: vpr.GetInt("monitoring_port"),
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		Auth: AuthConfig{
			JWTSecret:    vpr.GetString("auth.jwt_secret"),
			SessionTTL:   vpr.GetDuration("auth.session_ttl"),
			CookieSecure: vpr.GetBool("auth.cookie_secure"),
		},
		DefaultLocale: vpr.GetString("default_locale"),
		App:           app,
	}, nil
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", defaultEnv)
	vpr.SetDefault("http.address", defaultHTTPAddress)
	vpr.SetDefault("http.read_timeout", 10*time.Second)
	vpr.SetDefault("http.write_timeout", 15*time.Second)
	vpr.SetDefault("http.idle_timeout", time.Minute)
	vpr.SetDefault("monitoring_port", defaultMonitoringPort)
	vpr.SetDefault("postgres.port", defaultPostgresPort)
	vpr.SetDefault("auth.session_ttl", defaultSessionTTL)
	vpr.SetDefault("default_locale", defaultLocale)
}

// ValidateDatabase reports missing connection settings.
func (c *Config) ValidateDatabase() error {
	var missing []string
	if c.Postgres.Host == "" {
		missing = append(missing, "host")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "user")
	}
	if c.Postgres.Dbname == "" {
		missing = append(missing, "db_name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrDatabase, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateAuth reports an unusable session configuration.
func (c *Config) ValidateAuth() error {
	if c.Auth.JWTSecret == "" {
		return ErrJWTSecretEmpty
	}
	if c.Auth.SessionTTL <= 0 {
		return ErrSessionTTL
	}
	return nil
}

// Validate checks everything the web service needs to start.
func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if err := c.ValidateAuth(); err != nil {
		return err
	}
	if _, err := appconfig.New(c.App); err != nil {
		return fmt.Errorf("invalid app section: %w", err)
	}
	return nil
}

// MustLoad loads and validates the configuration, panicking on any error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("config error: " + err.Error())
	}
	if err = cfg.Validate(); err != nil {
		panic("config error: " + err.Error())
	}
	return cfg
}

// String renders the configuration for logs with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"env=%s http=%s monitoring_port=%d postgres=%s@%s:%s/%s password=%s jwt_secret=%s session_ttl=%s locale=%s app=%q",
		c.Env, c.HTTP.Address, c.MonitoringPort,
		c.Postgres.User, c.Postgres.Host, c.Postgres.Port, c.Postgres.Dbname, mask(c.Postgres.Password),
		mask(c.Auth.JWTSecret), c.Auth.SessionTTL, c.DefaultLocale, c.App.ApplicationName,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "******"
}
