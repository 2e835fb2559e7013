package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultJWTSecret is used outside production when no secret is configured
const DefaultJWTSecret = "fallback-secret"

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Swagger   SwaggerConfig   `mapstructure:"swagger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Port    string `mapstructure:"port"`
	Version string `mapstructure:"version"`
}

// DatabaseConfig holds MongoDB connection settings. Name falls back to the
// database in the URI path.
type DatabaseConfig struct {
	URI                  string        `mapstructure:"uri"`
	Name                 string        `mapstructure:"name"`
	ConnectTimeout       time.Duration `mapstructure:"connect_timeout"`
	MaxPoolSize          uint64        `mapstructure:"max_pool_size"`
	MinPoolSize          uint64        `mapstructure:"min_pool_size"`
	MaxConnIdleTime      time.Duration `mapstructure:"max_conn_idle_time"`
	AutoMigrate          bool          `mapstructure:"auto_migrate"`
	SlowCommandThreshold time.Duration `mapstructure:"slow_command_threshold"`
	LogCommands          bool          `mapstructure:"log_commands"`
}

// JWTConfig holds token settings. ExpiresIn is parsed from jwt.expires_in
// by parseExpiry.
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	ExpiresIn time.Duration `mapstructure:"-"`
	Issuer    string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or a file path
}

type HTTPConfig struct {
	ReadTimeout           time.Duration `mapstructure:"read_timeout"`
	WriteTimeout          time.Duration `mapstructure:"write_timeout"`
	IdleTimeout           time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes        int           `mapstructure:"max_header_bytes"`
	MaxBodySize           int64         `mapstructure:"max_body_size"`
	AuthRateLimitEnabled  bool          `mapstructure:"auth_rate_limit_enabled"`
	AuthRateLimitRequests int           `mapstructure:"auth_rate_limit_requests"` // login attempts per window per client IP
	AuthRateLimitWindow   time.Duration `mapstructure:"auth_rate_limit_window"`
	CORSAllowOrigins      []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods      []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders      []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies        []string      `mapstructure:"trusted_proxies"`
}

// SwaggerConfig controls /docs. An empty AllowedIPs admits everyone.
type SwaggerConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	AllowedIPs []string `mapstructure:"allowed_ips"`
}

type TelemetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"` // host:port of the OTLP gRPC collector
	SamplingRatio     float64 `mapstructure:"sampling_ratio"`
	ServiceName       string  `mapstructure:"service_name"`
	Insecure          bool    `mapstructure:"insecure"`

	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
	MetricsInterval time.Duration `mapstructure:"metrics_interval"`
	LogsEnabled     bool          `mapstructure:"logs_enabled"`
}

var defaults = map[string]any{
	"app.name":    "ecommerce-backend",
	"app.env":     "development",
	"app.port":    "3000",
	"app.version": "1.0.0",

	"database.uri":                    "",
	"database.name":                   "",
	"database.connect_timeout":        10 * time.Second,
	"database.max_pool_size":          100,
	"database.min_pool_size":          0,
	"database.max_conn_idle_time":     30 * time.Minute,
	"database.auto_migrate":           true,
	"database.slow_command_threshold": 200 * time.Millisecond,
	"database.log_commands":           false,

	"jwt.secret":     "",
	"jwt.expires_in": "7d",
	"jwt.issuer":     "ecommerce-backend",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":             15 * time.Second,
	"http.write_timeout":            15 * time.Second,
	"http.idle_timeout":             60 * time.Second,
	"http.max_header_bytes":         1 << 20,
	"http.max_body_size":            10 << 20,
	"http.auth_rate_limit_enabled":  false,
	"http.auth_rate_limit_requests": 5,
	"http.auth_rate_limit_window":   time.Minute,
	"http.cors_allow_origins":       []string{},
	"http.cors_allow_methods":       []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers":       []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":          []string{},

	"swagger.enabled":     true,
	"swagger.allowed_ips": []string{},

	"telemetry.enabled":            false,
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.sampling_ratio":     1.0,
	"telemetry.service_name":       "",
	"telemetry.insecure":           false,
	"telemetry.metrics_enabled":    false,
	"telemetry.metrics_interval":   time.Minute,
	"telemetry.logs_enabled":       false,
}

// Load reads config.toml (from ".", "./config" or "/app"), then the
// environment. Precedence, highest first:
//
//	SHOP_<SECTION>_<KEY>, e.g. SHOP_DATABASE_URI
//	MONGODB_URI, JWT_SECRET, JWT_EXPIRES_IN, PORT, APP_ENV
//	config.toml
//	built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range deploymentEnv {
		_ = v.BindEnv(append([]string{key}, names...)...)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	expiresIn, err := parseExpiry(v.GetString("jwt.expires_in"))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt.expires_in: %w", err)
	}
	cfg.JWT.ExpiresIn = expiresIn

	cfg.fillDerived()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// deploymentEnv lists the unprefixed names existing deployments set. The
// prefixed name comes first so it wins.
var deploymentEnv = map[string][]string{
	"database.uri":   {"SHOP_DATABASE_URI", "MONGODB_URI"},
	"jwt.secret":     {"SHOP_JWT_SECRET", "JWT_SECRET"},
	"jwt.expires_in": {"SHOP_JWT_EXPIRES_IN", "JWT_EXPIRES_IN"},
	"app.port":       {"SHOP_APP_PORT", "PORT"},
	"app.env":        {"SHOP_APP_ENV", "APP_ENV"},
}

// fillDerived sets the defaults that depend on other values. Outside
// production a missing URI, secret or CORS origin list gets a local value;
// in production they stay empty and validate rejects them.
func (c *Config) fillDerived() {
	if !c.IsProduction() {
		if c.Database.URI == "" {
			c.Database.URI = "mongodb://localhost:27017/ecommerce"
		}
		if c.JWT.Secret == "" {
			c.JWT.Secret = DefaultJWTSecret
		}
		if len(c.HTTP.CORSAllowOrigins) == 0 {
			c.HTTP.CORSAllowOrigins = []string{"*"}
		}
	}
	if c.Database.Name == "" {
		c.Database.Name = c.Database.DatabaseFromURI()
	}
	if c.JWT.ExpiresIn == 0 {
		c.JWT.ExpiresIn = 7 * 24 * time.Hour
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.App.Name
	}
}

// parseExpiry accepts a Go duration ("12h"), a day count ("7d") or plain
// seconds ("3600").
func parseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func (c *Config) validate() error {
	var errs []error
	if c.Database.MinPoolSize > c.Database.MaxPoolSize {
		errs = append(errs, fmt.Errorf("database.min_pool_size (%d) exceeds database.max_pool_size (%d)",
			c.Database.MinPoolSize, c.Database.MaxPoolSize))
	}
	if c.JWT.ExpiresIn < 0 {
		errs = append(errs, errors.New("jwt.expires_in cannot be negative"))
	}
	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sampling_ratio must be within [0, 1], got %g", r))
	}
	if c.HTTP.AuthRateLimitEnabled {
		if c.HTTP.AuthRateLimitWindow <= 0 {
			errs = append(errs, fmt.Errorf("http.auth_rate_limit_window must be positive, got %s", c.HTTP.AuthRateLimitWindow))
		}
		if c.HTTP.AuthRateLimitRequests < 1 {
			errs = append(errs, fmt.Errorf("http.auth_rate_limit_requests must be at least 1, got %d", c.HTTP.AuthRateLimitRequests))
		}
	}
	if c.IsProduction() {
		if c.Database.URI == "" {
			errs = append(errs, errors.New("database.uri is required in production"))
		}
		if len(c.JWT.Secret) < 32 {
			errs = append(errs, errors.New("jwt.secret must be at least 32 characters in production"))
		}
		if slices.Contains(c.HTTP.CORSAllowOrigins, "*") {
			errs = append(errs, errors.New("http.cors_allow_origins cannot contain '*' in production"))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DatabaseFromURI returns the database named in the URI path, or "ecommerce".
func (d *DatabaseConfig) DatabaseFromURI() string {
	if cs, err := connstring.ParseAndValidate(d.URI); err == nil && cs.Database != "" {
		return cs.Database
	}
	return "ecommerce"
}
