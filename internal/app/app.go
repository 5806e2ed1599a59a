package app

import (
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scoreboard-aggregator/external/espn"
	"github.com/riskibarqy/scoreboard-aggregator/internal/config"
	"github.com/riskibarqy/scoreboard-aggregator/internal/interfaces/httpapi"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/scoreboard-aggregator/internal/usecase"
)

// NewAggregationService wires the upstream gateway, provider client and the
// directory, scoreboard and odds services into one aggregation facade.
func NewAggregationService(cfg config.Config, logger *logging.Logger) *usecase.AggregationService {
	if logger == nil {
		logger = logging.Default()
	}

	gateway := espn.NewGateway(espn.GatewayConfig{
		CallTimeout:   cfg.UpstreamCallTimeout,
		MaxRetries:    cfg.UpstreamMaxRetries,
		RatePerSecond: cfg.UpstreamRatePerSecond,
		Breaker: resilience.BreakerConfig{
			Enabled:          cfg.UpstreamCircuitEnabled,
			FailureThreshold: cfg.UpstreamCircuitFailureCount,
			OpenTimeout:      cfg.UpstreamCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.UpstreamCircuitHalfOpenMaxReq,
		},
		Logger: logger,
	})

	provider := espn.NewClient(espn.ClientConfig{
		Fetcher:     gateway,
		SiteBaseURL: cfg.ESPNSiteBaseURL,
		CoreBaseURL: cfg.ESPNCoreBaseURL,
		Logger:      logger,
	})

	directory := usecase.NewLeagueDirectoryService(provider, usecase.LeagueDirectoryConfig{
		Sports:      cfg.ESPNSports,
		PrefixLimit: cfg.DirectoryPrefixLimit,
		Fanout:      cfg.UpstreamFanout,
	}, logger)
	scoreboards := usecase.NewScoreboardService(provider, cfg.UpstreamFanout, logger)
	oddsSvc := usecase.NewOddsService(provider, usecase.OddsConfig{
		MarketIndex: cfg.OddsMarketIndex,
		Workers:     cfg.OddsWorkers,
	}, logger)

	return usecase.NewAggregationService(directory, scoreboards, oddsSvc, usecase.AggregationConfig{
		WindowPast:   cfg.WindowPast,
		WindowFuture: cfg.WindowFuture,
		CacheEnabled: cfg.CacheEnabled,
		CacheTTL:     cfg.CacheTTL,
	}, logger)
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, crerr.New("http server addr cannot be empty")
	}

	aggregation := NewAggregationService(cfg, logger)
	handler := httpapi.NewHandler(aggregation, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
