package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	CORSAllowedOrigins            []string
	LogLevel                      logging.Level
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	ESPNSiteBaseURL               string
	ESPNCoreBaseURL               string
	ESPNSports                    []string
	UpstreamCallTimeout           time.Duration
	UpstreamMaxRetries            int
	UpstreamRatePerSecond         float64
	UpstreamFanout                int
	UpstreamCircuitEnabled        bool
	UpstreamCircuitFailureCount   int
	UpstreamCircuitOpenTimeout    time.Duration
	UpstreamCircuitHalfOpenMaxReq int
	DirectoryPrefixLimit          int
	OddsMarketIndex               int
	OddsWorkers                   int
	WindowPast                    time.Duration
	WindowFuture                  time.Duration
	PprofEnabled                  bool
	PprofAddr                     string
	UptraceEnabled                bool
	UptraceDSN                    string
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse UPTRACE_ENABLED")
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, crerr.New("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PYROSCOPE_ENABLED")
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, crerr.New("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PPROF_ENABLED")
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, crerr.New("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	readTimeout, err := getEnvAsPositiveDuration("READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("WRITE_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse CACHE_ENABLED")
	}
	cacheTTL, err := getEnvAsPositiveDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}

	callTimeout, err := getEnvAsPositiveDuration("UPSTREAM_CALL_TIMEOUT", "4s")
	if err != nil {
		return Config{}, err
	}
	maxRetries, err := getEnvAsInt("UPSTREAM_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse UPSTREAM_MAX_RETRIES")
	}
	if maxRetries < 0 {
		return Config{}, crerr.New("UPSTREAM_MAX_RETRIES must be >= 0")
	}
	ratePerSecond, err := strconv.ParseFloat(strings.TrimSpace(getEnv("UPSTREAM_RATE_PER_SECOND", "20")), 64)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse UPSTREAM_RATE_PER_SECOND")
	}
	if ratePerSecond < 0 {
		return Config{}, crerr.New("UPSTREAM_RATE_PER_SECOND must be >= 0")
	}
	fanout, err := getEnvAsMinInt("UPSTREAM_FANOUT", 8, 1)
	if err != nil {
		return Config{}, err
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("UPSTREAM_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse UPSTREAM_CIRCUIT_ENABLED")
	}
	circuitFailureCount, err := getEnvAsMinInt("UPSTREAM_CIRCUIT_FAILURE_COUNT", 5, 1)
	if err != nil {
		return Config{}, err
	}
	circuitOpenTimeout, err := getEnvAsPositiveDuration("UPSTREAM_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	circuitHalfOpenMaxReq, err := getEnvAsMinInt("UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1)
	if err != nil {
		return Config{}, err
	}

	prefixLimit, err := getEnvAsMinInt("DIRECTORY_PREFIX_LIMIT", 25, 1)
	if err != nil {
		return Config{}, err
	}
	marketIndex, err := getEnvAsMinInt("ODDS_MARKET_INDEX", 0, 0)
	if err != nil {
		return Config{}, err
	}
	oddsWorkers, err := getEnvAsMinInt("ODDS_WORKERS", 8, 1)
	if err != nil {
		return Config{}, err
	}

	windowPast, err := getEnvAsPositiveDuration("WINDOW_PAST", "96h")
	if err != nil {
		return Config{}, err
	}
	windowFuture, err := getEnvAsPositiveDuration("WINDOW_FUTURE", "192h")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("SERVICE_NAME", "scoreboard-aggregator"),
		ServiceVersion:                getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                      getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:                   readTimeout,
		WriteTimeout:                  writeTimeout,
		CORSAllowedOrigins:            splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                      logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
		CacheEnabled:                  cacheEnabled,
		CacheTTL:                      cacheTTL,
		ESPNSiteBaseURL:               strings.TrimSpace(getEnv("ESPN_SITE_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports")),
		ESPNCoreBaseURL:               strings.TrimSpace(getEnv("ESPN_CORE_BASE_URL", "https://sports.core.api.espn.com/v2")),
		ESPNSports:                    splitCSV(getEnv("ESPN_SPORTS", "football,basketball,baseball,hockey,soccer,tennis")),
		UpstreamCallTimeout:           callTimeout,
		UpstreamMaxRetries:            maxRetries,
		UpstreamRatePerSecond:         ratePerSecond,
		UpstreamFanout:                fanout,
		UpstreamCircuitEnabled:        circuitEnabled,
		UpstreamCircuitFailureCount:   circuitFailureCount,
		UpstreamCircuitOpenTimeout:    circuitOpenTimeout,
		UpstreamCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		DirectoryPrefixLimit:          prefixLimit,
		OddsMarketIndex:               marketIndex,
		OddsWorkers:                   oddsWorkers,
		WindowPast:                    windowPast,
		WindowFuture:                  windowFuture,
		PprofEnabled:                  pprofEnabled,
		PprofAddr:                     pprofAddr,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:        strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:    strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, crerr.New("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if len(cfg.ESPNSports) == 0 {
		return Config{}, crerr.New("ESPN_SPORTS cannot be empty")
	}

	return cfg, nil
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

func getEnvAsMinInt(key string, fallback, minValue int) (int, error) {
	value, err := getEnvAsInt(key, fallback)
	if err != nil {
		return 0, crerr.Wrapf(err, "parse %s", key)
	}
	if value < minValue {
		return 0, crerr.Newf("%s must be >= %d", key, minValue)
	}
	return value, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, crerr.Wrapf(err, "parse %s", key)
	}
	if value <= 0 {
		return 0, crerr.Newf("%s must be > 0", key)
	}
	return value, nil
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", crerr.Newf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
