package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Server-only requirements live in ValidateServer.
func (c *Config) Validate() error {
	if err := c.Store.validate(c.Database); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if c.Auth.JWTSecret != "" {
		if err := c.Auth.Validate(); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Gemini.validate(); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}

	if err := c.Planner.validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	if c.Session.UserID != "" {
		if _, err := uuid.Parse(c.Session.UserID); err != nil {
			return fmt.Errorf("session.user_id must be a UUID: %w", err)
		}
	}

	return nil
}

// MaxGeminiRetries bounds the exponential backoff of the generation client.
const MaxGeminiRetries = 10

// ServerWriteMargin is kept free between the worst generation latency and
// the server write deadline for storing the result and writing the reply.
const ServerWriteMargin = 10 * time.Second

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Server.validate(c.Gemini); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// AIRequestTimeout is the deadline given to requests that call the model.
// It ends half a margin before the write deadline so an error reply still
// reaches the client.
func (s ServerConfig) AIRequestTimeout() time.Duration {
	return s.WriteTimeout - ServerWriteMargin/2
}

func (s ServerConfig) validate(g GeminiConfig) error {
	if s.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be > 0 (got %v)", s.ReadTimeout)
	}
	need := g.WorstCaseLatency() + ServerWriteMargin
	if s.WriteTimeout < need {
		return fmt.Errorf("write_timeout must be at least %v to cover %d gemini attempts (got %v)",
			need, g.MaxRetries+1, s.WriteTimeout)
	}
	return nil
}

// Validate checks the settings required to verify bearer tokens.
func (a AuthConfig) Validate() error {
	if len(a.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
	}
	if a.AccessTokenTTL <= 0 {
		return fmt.Errorf("access_token_ttl must be > 0 (got %v)", a.AccessTokenTTL)
	}
	return nil
}

func (s *StoreConfig) validate(db DatabaseConfig) error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("database.dsn is required for the %s driver", DriverPostgres)
		}
	case DriverSQLite:
		if strings.TrimSpace(s.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required for the %s driver", DriverSQLite)
		}
	default:
		return fmt.Errorf("driver must be %q or %q (got %q)", DriverPostgres, DriverSQLite, s.Driver)
	}
	return nil
}

func (g GeminiConfig) validate() error {
	if g.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if g.Model == "" {
		return fmt.Errorf("model is required")
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", g.Timeout)
	}
	if g.MaxRetries < 0 || g.MaxRetries > MaxGeminiRetries {
		return fmt.Errorf("max_retries must be between 0 and %d (got %d)", MaxGeminiRetries, g.MaxRetries)
	}
	if g.RetryBaseDelay <= 0 {
		return fmt.Errorf("retry_base_delay must be > 0 (got %v)", g.RetryBaseDelay)
	}
	return nil
}

func (p PlannerConfig) validate() error {
	if p.MaxTopicLength <= 0 {
		return fmt.Errorf("max_topic_length must be > 0 (got %d)", p.MaxTopicLength)
	}
	if p.MaxTasksPerPlan <= 0 {
		return fmt.Errorf("max_tasks_per_plan must be > 0 (got %d)", p.MaxTasksPerPlan)
	}
	if p.AIRatePerMinute <= 0 {
		return fmt.Errorf("ai_rate_per_minute must be > 0 (got %d)", p.AIRatePerMinute)
	}
	if p.OrphanAgeMinutes <= 0 {
		return fmt.Errorf("orphan_age_minutes must be > 0 (got %d)", p.OrphanAgeMinutes)
	}
	return nil
}
