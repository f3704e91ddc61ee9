package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Auth     AuthConfig     `yaml:"auth"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Planner  PlannerConfig  `yaml:"planner"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"300s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StoreConfig selects the plan store backend.
type StoreConfig struct {
	Driver     string `yaml:"driver"      env:"STORE_DRIVER"      env-default:"postgres"`
	SQLitePath string `yaml:"sqlite_path" env:"STORE_SQLITE_PATH" env-default:"./studyplanner.db"`
}

// AuthConfig holds bearer token settings. Tokens are issued by the hosted
// auth provider and signed with the shared project secret.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"studyplanner"`
	JWTAudience    string        `yaml:"jwt_audience"     env:"AUTH_JWT_AUDIENCE"     env-default:"authenticated"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"1h"`
}

// GeminiConfig holds generative text endpoint settings. APIKey is optional
// at load time; a missing key is reported on the first generation call.
type GeminiConfig struct {
	APIKey         string        `yaml:"api_key"          env:"GEMINI_API_KEY"`
	BaseURL        string        `yaml:"base_url"         env:"GEMINI_BASE_URL"         env-default:"https://generativelanguage.googleapis.com/v1beta"`
	Model          string        `yaml:"model"            env:"GEMINI_MODEL"            env-default:"gemini-1.5-flash-latest"`
	Timeout        time.Duration `yaml:"timeout"          env:"GEMINI_TIMEOUT"          env-default:"60s"`
	MaxRetries     int           `yaml:"max_retries"      env:"GEMINI_MAX_RETRIES"      env-default:"3"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay" env:"GEMINI_RETRY_BASE_DELAY" env-default:"2s"`
}

// WorstCaseLatency is how long one generation call may take when every
// attempt runs into Timeout and every retry waits its full backoff.
func (g GeminiConfig) WorstCaseLatency() time.Duration {
	total := time.Duration(g.MaxRetries+1) * g.Timeout
	for i := 0; i < g.MaxRetries; i++ {
		total += g.RetryBaseDelay << i
	}
	return total
}

// PlannerConfig holds study plan limits.
type PlannerConfig struct {
	MaxTopicLength   int `yaml:"max_topic_length"    env:"PLANNER_MAX_TOPIC_LENGTH"    env-default:"200"`
	MaxTasksPerPlan  int `yaml:"max_tasks_per_plan"  env:"PLANNER_MAX_TASKS_PER_PLAN"  env-default:"30"`
	AIRatePerMinute  int `yaml:"ai_rate_per_minute"  env:"PLANNER_AI_RATE_PER_MINUTE"  env-default:"10"`
	OrphanAgeMinutes int `yaml:"orphan_age_minutes"  env:"PLANNER_ORPHAN_AGE_MINUTES"  env-default:"60"`
}

// SessionConfig identifies the local user for command line tools.
type SessionConfig struct {
	UserID string `yaml:"user_id" env:"PLANNER_USER_ID"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
