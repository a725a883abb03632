package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the frontend processes.
type Config struct {
	App      AppConfig
	API      APIConfig
	Token    TokenConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig controls edge server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
	// WebRoot holds the built frontend pages served behind the route gate.
	WebRoot string
}

// APIConfig locates the backend and the frontend origin.
type APIConfig struct {
	// BackendURL is where the edge server proxies /api requests.
	BackendURL string
	// BaseURL is the prefix the client resolves endpoints against.
	BaseURL string
	// FrontendURL is the origin the token cookie is scoped to.
	FrontendURL string
}

// TokenConfig selects and tunes the durable token backend.
type TokenConfig struct {
	Store            string
	FilePath         string
	RedisKeyPrefix   string
	CookieMaxAgeSecs int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
	Output   string
}

// Token store backends.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	store := strings.ToLower(getEnv("TOKEN_STORE", StoreFile))
	switch store {
	case StoreMemory, StoreFile, StoreRedis, StorePostgres:
	default:
		return nil, fmt.Errorf("invalid TOKEN_STORE %q", store)
	}

	frontendURL := strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/")

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "concert-frontend"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "3000"),
			Version: getEnv("APP_VERSION", "dev"),
			WebRoot: getEnv("WEB_ROOT", "web/dist"),
		},
		API: APIConfig{
			BackendURL:  strings.TrimRight(getEnv("API_URL", "http://localhost:8080"), "/"),
			BaseURL:     strings.TrimRight(getEnv("API_BASE_URL", frontendURL+"/api"), "/"),
			FrontendURL: frontendURL,
		},
		Token: TokenConfig{
			Store:            store,
			FilePath:         getEnv("TOKEN_FILE", defaultTokenFile()),
			RedisKeyPrefix:   getEnv("TOKEN_REDIS_PREFIX", "concert:"),
			CookieMaxAgeSecs: getEnvAsInt("TOKEN_COOKIE_MAX_AGE_SECONDS", 86400),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
			Output:   getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// CookieMaxAge returns the lifetime of the mirrored token cookie.
func (t TokenConfig) CookieMaxAge() time.Duration {
	if t.CookieMaxAgeSecs <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(t.CookieMaxAgeSecs) * time.Second
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".concert-token.json"
	}
	return filepath.Join(dir, "concert-frontend", "token.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
