package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend names for the record store.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreBackend string // "memory" | "redis"
	SeedFile     string // optional YAML seed file, empty = no seeding

	DebounceWindow   time.Duration // quiet period before a pending query runs
	QueryCacheSize   int           // bounded FIFO result cache capacity
	FrequentSize     int           // default size of the frequent view
	FolderGCInterval time.Duration // interval for empty-folder cleanup

	// Redis (only required when StoreBackend == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout per ping attempt
	RedisWarnThreshold  int           // warn after this many attempts

	// Rate limiting on mutation endpoints
	RateLimitBurst  int
	RateLimitPerMin int
	TrustProxy      bool // trust X-Forwarded-For and friends
}

func Load() *Config {
	cfg := &Config{
		ListenPort:      getenv("DART_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DART_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("DART_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DART_PRETTY_LOG", true),

		StoreBackend: strings.ToLower(getenv("DART_STORE_BACKEND", BackendMemory)),
		SeedFile:     getenv("DART_SEED_FILE", ""),

		DebounceWindow:   mustDuration("DART_DEBOUNCE_WINDOW", 150*time.Millisecond),
		QueryCacheSize:   getenvInt("DART_QUERY_CACHE_SIZE", 64),
		FrequentSize:     getenvInt("DART_FREQUENT_SIZE", 10),
		FolderGCInterval: mustDuration("DART_FOLDER_GC_INTERVAL", 24*time.Hour),

		RedisAddr:           getenv("DART_REDIS_ADDR", ""),
		RedisUser:           getenv("DART_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("DART_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("DART_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("DART_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("DART_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("DART_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("DART_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("DART_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("DART_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("DART_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("DART_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("DART_REDIS_WARN_THRESHOLD", 3),

		RateLimitBurst:  getenvInt("DART_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("DART_RATE_LIMIT_PER_MIN", 60),
		TrustProxy:      mustBool("DART_TRUST_PROXY", false),
	}

	if cfg.StoreBackend != BackendMemory && cfg.StoreBackend != BackendRedis {
		panic(fmt.Sprintf("FATAL: DART_STORE_BACKEND must be %q or %q, got %q",
			BackendMemory, BackendRedis, cfg.StoreBackend))
	}
	if cfg.StoreBackend == BackendRedis && cfg.RedisAddr == "" {
		panic("FATAL: DART_REDIS_ADDR is required when DART_STORE_BACKEND=redis")
	}
	if cfg.QueryCacheSize < 1 {
		panic(fmt.Sprintf("FATAL: DART_QUERY_CACHE_SIZE must be >= 1, got %d", cfg.QueryCacheSize))
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		panic(fmt.Sprintf("FATAL: Invalid integer value for %s: %s", key, v))
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Sprintf("FATAL: Invalid duration value for %s: %s", key, v))
	}
	return d
}

func mustBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(fmt.Sprintf("FATAL: Invalid boolean value for %s: %s", key, v))
	}
	return b
}
