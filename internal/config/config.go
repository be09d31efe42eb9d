package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config aggregates all runtime settings required by the application.
// It is built once at startup and passed explicitly; nothing mutates it afterwards.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	SQLite      SQLiteConfig
	JWT         JWTConfig
	Security    SecurityConfig
	Context     ContextConfig
	Monitor     MonitorConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
	CreateIfMissing bool
	// ResetOnStartup drops and recreates every table. Testing only.
	ResetOnStartup bool
}

type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
	LogQueries   bool
}

type JWTConfig struct {
	Secret       string
	Issuer       string
	AccessTTL    time.Duration
	CookieName   string
	CookieSecure bool
	CSRFProtect  bool
}

type SecurityConfig struct {
	BcryptCost int
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type MonitorConfig struct {
	Interval time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	// Path points at a directory of migration files; empty uses the embedded set.
	Path string
}

var defaults = map[string]interface{}{
	"APP_NAME":                "todo-api",
	"APP_ENV":                 "development",
	"SERVER_HOST":             "0.0.0.0",
	"SERVER_PORT":             "8080",
	"SERVER_READ_TIMEOUT":     "10s",
	"SERVER_WRITE_TIMEOUT":    "10s",
	"SERVER_IDLE_TIMEOUT":     "120s",
	"DB_DRIVER":               DriverPostgres,
	"DB_HOST":                 "localhost",
	"DB_PORT":                 "5432",
	"DB_NAME":                 "todo_api",
	"DB_USER":                 "todo_user",
	"DB_MAX_OPEN_CONNS":       25,
	"DB_MAX_IDLE_CONNS":       5,
	"DB_CONN_LIFETIME":        "1h",
	"DB_SSLMODE":              "disable",
	"DB_CREATE_IF_MISSING":    false,
	"RESET_TABLES_ON_STARTUP": false,
	"SQLITE_PATH":             "./data/todo.db",
	"SQLITE_MAX_OPEN_CONNS":   4,
	"SQLITE_LOG_QUERIES":      false,
	"JWT_ISSUER":              "todo-api",
	"JWT_ACCESS_TTL":          "30m",
	"JWT_COOKIE_NAME":         "access_token",
	"JWT_COOKIE_SECURE":       false,
	"JWT_COOKIE_CSRF_PROTECT": true,
	"SECURITY_BCRYPT_COST":    12,
	"REQUEST_TIMEOUT":         "5s",
	"SHUTDOWN_TIMEOUT":        "15s",
	"MONITOR_INTERVAL":        "10s",
	"LOG_LEVEL":               "info",
	"LOG_ENCODING":            "json",
	"RUN_MIGRATIONS":          true,
	"MIGRATIONS_PATH":         "",
}

// Load reads configuration from defaults, an optional file named by
// CONFIG_FILE and environment variables (optionally seeded from .env).
// Environment variables win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		AppName:     v.GetString("APP_NAME"),
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetString("SERVER_PORT"),
			ReadTimeout:  getDuration(v, "SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration(v, "SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration(v, "SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			Name:            v.GetString("DB_NAME"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxConnLifetime: getDuration(v, "DB_CONN_LIFETIME", time.Hour),
			SSLMode:         v.GetString("DB_SSLMODE"),
			CreateIfMissing: v.GetBool("DB_CREATE_IF_MISSING"),
			ResetOnStartup:  v.GetBool("RESET_TABLES_ON_STARTUP"),
		},
		SQLite: SQLiteConfig{
			Path:         v.GetString("SQLITE_PATH"),
			MaxOpenConns: v.GetInt("SQLITE_MAX_OPEN_CONNS"),
			LogQueries:   v.GetBool("SQLITE_LOG_QUERIES"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			Issuer:       v.GetString("JWT_ISSUER"),
			AccessTTL:    getDuration(v, "JWT_ACCESS_TTL", 30*time.Minute),
			CookieName:   v.GetString("JWT_COOKIE_NAME"),
			CookieSecure: v.GetBool("JWT_COOKIE_SECURE"),
			CSRFProtect:  v.GetBool("JWT_COOKIE_CSRF_PROTECT"),
		},
		Security: SecurityConfig{
			BcryptCost: v.GetInt("SECURITY_BCRYPT_COST"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration(v, "REQUEST_TIMEOUT", 5*time.Second),
			ShutdownTimeout: getDuration(v, "SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Monitor: MonitorConfig{
			Interval: getDuration(v, "MONITOR_INTERVAL", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
		Migrations: MigrationsConfig{
			Enabled: v.GetBool("RUN_MIGRATIONS"),
			Path:    v.GetString("MIGRATIONS_PATH"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg.Database)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.JWT.AccessTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL must be positive"))
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	return errors.Join(errs...)
}

func buildPostgresURL(db DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.SSLMode,
	)
}

// getDuration accepts Go duration strings ("30m") and bare integer seconds.
func getDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(v.GetString(key))
	if val == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(val); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(val); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
