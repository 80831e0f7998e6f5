package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultJWTSecret is the development signing secret. It is refused in
// production.
const DefaultJWTSecret = "dev_secret_change_me"

// ErrInsecureSecret is returned by Validate when production runs with the
// development secret.
var ErrInsecureSecret = errors.New("config: JWT_SECRET must be set in production")

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// StoreBackend selects "mongo" or "memory".
	StoreBackend string `env:"STORE_BACKEND, default=mongo"`
	// CORSAllowOrigins is a comma-separated origin list.
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS, default=*"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET,         default=dev_secret_change_me"`
	TokenTTLMinutes  int           `env:"TOKEN_TTL_MINUTES,  default=60"`
	BcryptCost       int           `env:"BCRYPT_COST,        default=10"`
	AllowAdminSignup bool          `env:"ALLOW_ADMIN_SIGNUP, default=false"`
	AdminEmail       string        `env:"ADMIN_EMAIL"`
	AdminPassword    string        `env:"ADMIN_PASSWORD"`
	AdminName        string        `env:"ADMIN_NAME,         default=Administrator"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=proton"`
}

type RedisConfig struct {
	// Addr empty disables idempotency keys and login throttling.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations that cannot run.
func (c *Config) Validate() error {
	if c.IsProduction() && c.UsesDefaultSecret() {
		return ErrInsecureSecret
	}
	switch c.StoreBackend {
	case "mongo", "memory":
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("config: TOKEN_TTL_MINUTES must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DefaultJWTSecret
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// AllowOrigins splits CORSAllowOrigins into trimmed, non-empty entries.
func (c *Config) AllowOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
