package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/platform/logging"
	"github.com/matchboard/matchboard/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// ProviderConfig holds the per-upstream client settings.
type ProviderConfig struct {
	Enabled        bool
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	CacheDir string
	PrefsDir string
	TTL      TTLTable

	WarmupEnabled bool
	WarmupWorkers int

	ESPN        ProviderConfig
	MLB         ProviderConfig
	ICCCalendar ProviderConfig
	Cricsheet   ProviderConfig
	FastF1      ProviderConfig

	ImageSearchEnabled bool
	ImageSearchAPIKey  string
	ImageSearchCX      string
	ImageSearchTimeout time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	corsOrigins := splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if len(corsOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	cacheDir := strings.TrimSpace(getEnv("CACHE_DIR", ".cache"))
	if cacheDir == "" {
		return Config{}, fmt.Errorf("CACHE_DIR cannot be empty")
	}
	prefsDir := strings.TrimSpace(getEnv("PREFS_DIR", ".prefs"))
	if prefsDir == "" {
		return Config{}, fmt.Errorf("PREFS_DIR cannot be empty")
	}

	ttl, err := loadTTLTable()
	if err != nil {
		return Config{}, err
	}

	warmupEnabled, err := strconv.ParseBool(getEnv("WARMUP_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_ENABLED: %w", err)
	}
	warmupWorkers, err := getEnvAsInt("WARMUP_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_WORKERS: %w", err)
	}
	if warmupWorkers < 1 {
		return Config{}, fmt.Errorf("WARMUP_WORKERS must be >= 1")
	}

	espn, err := loadProvider("ESPN", "https://site.api.espn.com/apis")
	if err != nil {
		return Config{}, err
	}
	mlb, err := loadProvider("MLB", "https://statsapi.mlb.com/api/v1")
	if err != nil {
		return Config{}, err
	}
	iccal, err := loadProvider("ICCAL", "https://www.icc-cricket.com/fixtures-and-results.ics")
	if err != nil {
		return Config{}, err
	}
	cricsheet, err := loadProvider("CRICSHEET", "https://cricsheet.org/downloads")
	if err != nil {
		return Config{}, err
	}
	fastf1, err := loadProvider("FASTF1", "http://localhost:8091")
	if err != nil {
		return Config{}, err
	}

	imageSearchEnabled, err := strconv.ParseBool(getEnv("IMAGE_SEARCH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_SEARCH_ENABLED: %w", err)
	}
	imageSearchAPIKey := strings.TrimSpace(getEnv("IMAGE_SEARCH_API_KEY", ""))
	imageSearchCX := strings.TrimSpace(getEnv("IMAGE_SEARCH_CX", ""))
	if imageSearchEnabled {
		if imageSearchAPIKey == "" {
			return Config{}, fmt.Errorf("IMAGE_SEARCH_API_KEY is required when IMAGE_SEARCH_ENABLED=true")
		}
		if imageSearchCX == "" {
			return Config{}, fmt.Errorf("IMAGE_SEARCH_CX is required when IMAGE_SEARCH_ENABLED=true")
		}
	}
	imageSearchTimeout, err := time.ParseDuration(getEnv("IMAGE_SEARCH_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse IMAGE_SEARCH_TIMEOUT: %w", err)
	}
	if imageSearchTimeout <= 0 {
		return Config{}, fmt.Errorf("IMAGE_SEARCH_TIMEOUT must be > 0")
	}

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "matchboard-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: corsOrigins,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CacheDir:           cacheDir,
		PrefsDir:           prefsDir,
		TTL:                ttl,
		WarmupEnabled:      warmupEnabled,
		WarmupWorkers:      warmupWorkers,
		ESPN:               espn,
		MLB:                mlb,
		ICCCalendar:        iccal,
		Cricsheet:          cricsheet,
		FastF1:             fastf1,
		ImageSearchEnabled: imageSearchEnabled,
		ImageSearchAPIKey:  imageSearchAPIKey,
		ImageSearchCX:      imageSearchCX,
		ImageSearchTimeout: imageSearchTimeout,
	}, nil
}

func loadProvider(prefix, defaultBaseURL string) (ProviderConfig, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", "true"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}

	timeout, err := time.ParseDuration(getEnv(prefix+"_TIMEOUT", "8s"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_TIMEOUT: %w", prefix, err)
	}
	if timeout <= 0 {
		return ProviderConfig{}, fmt.Errorf("%s_TIMEOUT must be > 0", prefix)
	}

	maxRetries, err := getEnvAsInt(prefix+"_MAX_RETRIES", 1)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_MAX_RETRIES: %w", prefix, err)
	}
	if maxRetries < 0 {
		return ProviderConfig{}, fmt.Errorf("%s_MAX_RETRIES must be >= 0", prefix)
	}

	circuitEnabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	failureCount, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return ProviderConfig{}, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if openTimeout <= 0 {
		return ProviderConfig{}, fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return ProviderConfig{}, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return ProviderConfig{
		Enabled:    enabled,
		BaseURL:    strings.TrimSpace(getEnv(prefix+"_BASE_URL", defaultBaseURL)),
		Timeout:    timeout,
		MaxRetries: maxRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          circuitEnabled,
			FailureThreshold: failureCount,
			OpenTimeout:      openTimeout,
			HalfOpenMaxReq:   halfOpenMaxReq,
		},
	}, nil
}

func loadTTLTable() (TTLTable, error) {
	table := DefaultTTLTable()

	for kind, envKey := range map[event.QueryKind]string{
		event.QueryLive:      "TTL_LIVE",
		event.QueryUpcoming:  "TTL_UPCOMING",
		event.QueryRecent:    "TTL_RECENT",
		event.QueryStandings: "TTL_STANDINGS",
		event.QueryNews:      "TTL_NEWS",
	} {
		raw := strings.TrimSpace(os.Getenv(envKey))
		if raw == "" {
			continue
		}
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return TTLTable{}, fmt.Errorf("parse %s: %w", envKey, err)
		}
		if ttl <= 0 {
			return TTLTable{}, fmt.Errorf("%s must be > 0", envKey)
		}
		table.defaults[kind] = ttl
	}

	overrides, err := parseTTLOverrides(getEnv("TTL_OVERRIDES", ""))
	if err != nil {
		return TTLTable{}, fmt.Errorf("parse TTL_OVERRIDES: %w", err)
	}
	for key, ttl := range overrides {
		table.overrides[key] = ttl
	}
	return table, nil
}

// parseTTLOverrides parses "sport:kind:duration" triples, e.g.
// "tennis:live:30m,formula1:upcoming:168h".
func parseTTLOverrides(raw string) (map[string]time.Duration, error) {
	out := make(map[string]time.Duration)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		segments := strings.SplitN(item, ":", 3)
		if len(segments) != 3 {
			return nil, fmt.Errorf("invalid override %q, expected sport:kind:duration", item)
		}
		ttl, err := time.ParseDuration(strings.TrimSpace(segments[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid duration in override %q: %w", item, err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("duration must be > 0 in override %q", item)
		}
		key := overrideKey(strings.TrimSpace(segments[0]), event.QueryKind(strings.TrimSpace(segments[1])))
		out[key] = ttl
	}
	return out, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
