package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel      string // "debug" | "info" | "warn" | "error"
	PrettyLog     bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile       string // optional, also write JSON logs to this rotated file
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	// Storage
	StoreDriver string // "redis" | "sqlite" | "memory" | "none"
	SQLitePath  string // ex: "/data/pitch.db"
	SeedDir     string // optional, fixtures directory overriding the bundled ones

	// Content & sessions
	ReloadInterval    time.Duration // periodic content reload (default: 5m)
	SessionTTL        time.Duration // signed-in session lifetime (default: 24h)
	SessionGCInterval time.Duration // expired sessions sweep (default: 1h)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Rate limits
	RegistrationBurst     int // registrations accepted at once per IP
	RegistrationPerMinute int // token refill per IP
	AuthRequestsPerMinute int // sign-in/sign-up attempts per IP

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints (healthz, readyz, infra, metrics)
	AdminCIDRS   []string // optional, restrict the admin API on top of the admin claim
	CORSOrigins  []string // optional, origins allowed to call the API from a browser
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// Load reads the configuration from PITCH_* environment variables.
// When PITCH_CONFIG_FILE points to a YAML file of flat PITCH_* keys, its
// values are used as defaults that the environment overrides.
func Load() *Config {
	src, err := newSource(os.Getenv("PITCH_CONFIG_FILE"))
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}
	return load(src)
}

func load(src *source) *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      src.getenv("PITCH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: src.mustDuration("PITCH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:      src.getenv("PITCH_LOG_LEVEL", "info"),
		PrettyLog:     src.mustBool("PITCH_PRETTY_LOG", false),
		LogFile:       src.getenv("PITCH_LOG_FILE", ""),
		LogMaxSizeMB:  src.getenvInt("PITCH_LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: src.getenvInt("PITCH_LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: src.getenvInt("PITCH_LOG_MAX_AGE_DAYS", 28),

		// Storage
		StoreDriver: strings.ToLower(src.getenv("PITCH_STORE_DRIVER", "none")),
		SQLitePath:  src.getenv("PITCH_SQLITE_PATH", ""),
		SeedDir:     src.getenv("PITCH_SEED_DIR", ""),

		// Content & sessions
		ReloadInterval:    src.mustDuration("PITCH_RELOAD_INTERVAL", 5*time.Minute),
		SessionTTL:        src.mustDuration("PITCH_SESSION_TTL", 24*time.Hour),
		SessionGCInterval: src.mustDuration("PITCH_SESSION_GC_INTERVAL", time.Hour),

		// Redis settings
		RedisAddr:             src.getenv("PITCH_REDIS_ADDR", ""),
		RedisUser:             src.getenv("PITCH_REDIS_USERNAME", ""),
		RedisPasswordRequired: src.mustBool("PITCH_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         src.getenv("PITCH_REDIS_PASSWORD", ""),
		RedisDB:               src.getenvInt("PITCH_REDIS_DB", 0),
		RedisDT:               src.mustDuration("PITCH_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               src.mustDuration("PITCH_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               src.mustDuration("PITCH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          src.mustDuration("PITCH_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      src.mustDuration("PITCH_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         src.getenvInt("PITCH_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   src.mustDuration("PITCH_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    src.mustDuration("PITCH_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    src.getenvInt("PITCH_REDIS_WARN_THRESHOLD", 3),

		// Rate limits
		RegistrationBurst:     src.getenvInt("PITCH_REGISTRATION_BURST", 3),
		RegistrationPerMinute: src.getenvInt("PITCH_REGISTRATION_PER_MINUTE", 2),
		AuthRequestsPerMinute: src.getenvInt("PITCH_AUTH_REQUESTS_PER_MINUTE", 10),

		// Access restrictions
		AllowedHosts: splitAndTrim(src.getenv("PITCH_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(src.getenv("PITCH_ALLOWED_CIDRS", "")),
		AdminCIDRS:   splitAndTrim(src.getenv("PITCH_ADMIN_CIDRS", "")),
		CORSOrigins:  splitAndTrim(src.getenv("PITCH_CORS_ORIGINS", "")),
		TrustProxy:   src.mustBool("PITCH_TRUST_PROXY", false),
	}

	// Validate Redis password configuration
	if cfg.StoreDriver == "redis" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: PITCH_REDIS_PASSWORD is required when PITCH_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.RedisPassword != "" {
		c.RedisPassword = "***REDACTED***"
	}
	if c.RedisUser != "" {
		c.RedisUser = "***REDACTED***"
	}
	return c
}

// source resolves a key from the environment first, then from the config file.
type source struct {
	file map[string]string
}

func newSource(path string) (*source, error) {
	src := &source{file: map[string]string{}}
	if path == "" {
		return src, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case []any:
			items := make([]string, 0, len(val))
			for _, it := range val {
				items = append(items, fmt.Sprint(it))
			}
			src.file[k] = strings.Join(items, ",")
		case map[string]any:
			return nil, fmt.Errorf("config file %s: key %s must be a scalar or a list", path, k)
		default:
			src.file[k] = fmt.Sprint(val)
		}
	}
	return src, nil
}

// helpers
func (s *source) lookup(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.file[key]
}

func (s *source) getenv(key, def string) string {
	if v := s.lookup(key); v != "" {
		return v
	}
	return def
}

func (s *source) getenvInt(key string, def int) int {
	if v := s.lookup(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func (s *source) mustBool(key string, def bool) bool {
	if v := s.lookup(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func (s *source) mustDuration(key string, def time.Duration) time.Duration {
	if v := s.lookup(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
