package usecase

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/odds"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultOddsWorkers = 8

type OddsConfig struct {
	// MarketIndex selects one entry from the provider's market list. The
	// upstream ordering is undocumented and has moved between revisions.
	MarketIndex int
	Workers     int
}

// CompetitionRef addresses one competition for odds resolution.
type CompetitionRef struct {
	Sport       string
	LeagueSlug  string
	EventID     string
	Competition scoreboard.Competition
}

// OddsService resolves moneyline pairs through the dedicated odds endpoint,
// then the odds embedded in the scoreboard payload.
type OddsService struct {
	provider    SportsProvider
	marketIndex int
	workers     int
	logger      *logging.Logger
}

func NewOddsService(provider SportsProvider, cfg OddsConfig, logger *logging.Logger) *OddsService {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultOddsWorkers
	}
	return &OddsService{
		provider:    provider,
		marketIndex: cfg.MarketIndex,
		workers:     workers,
		logger:      logger.Named("usecase.odds"),
	}
}

// Resolve returns nil when no source yields a price. It never fails.
func (s *OddsService) Resolve(ctx context.Context, ref CompetitionRef) *odds.Pair {
	competitionID := ref.Competition.ID
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.Resolve",
		attribute.String("league.slug", ref.LeagueSlug),
		attribute.String("competition.id", competitionID),
	)
	defer span.End()

	if pair, ok := s.fromEndpoint(ctx, ref); ok {
		span.SetAttributes(attribute.String("odds.source", "endpoint"))
		return &pair
	}

	embedded := odds.NewPair(ref.Competition.EmbeddedOdds.Home, ref.Competition.EmbeddedOdds.Away)
	if !embedded.IsEmpty() {
		span.SetAttributes(attribute.String("odds.source", "embedded"))
		return &embedded
	}

	span.SetAttributes(attribute.String("odds.source", "none"))
	return nil
}

func (s *OddsService) fromEndpoint(ctx context.Context, ref CompetitionRef) (odds.Pair, bool) {
	eventID := ref.EventID
	if eventID == "" {
		eventID = ref.Competition.EventID
	}
	if eventID == "" {
		eventID = ref.Competition.ID
	}
	if ref.Competition.ID == "" || ref.LeagueSlug == "" {
		return odds.Pair{}, false
	}

	markets, err := s.provider.CompetitionOdds(ctx, ref.Sport, ref.LeagueSlug, eventID, ref.Competition.ID)
	if err != nil {
		s.logger.DebugContext(ctx, "odds endpoint unavailable, falling back",
			"league", ref.LeagueSlug,
			"competition_id", ref.Competition.ID,
			"error", err,
		)
		return odds.Pair{}, false
	}

	market, ok := s.selectMarket(markets)
	if !ok {
		return odds.Pair{}, false
	}
	pair := odds.NewPair(market.Home, market.Away)
	return pair, !pair.IsEmpty()
}

// selectMarket applies the configured index and rejects entries without a moneyline.
func (s *OddsService) selectMarket(markets []ExternalOddsMarket) (ExternalOddsMarket, bool) {
	if s.marketIndex < 0 || s.marketIndex >= len(markets) {
		return ExternalOddsMarket{}, false
	}
	market := markets[s.marketIndex]
	if !market.HasMoneyline() {
		return ExternalOddsMarket{}, false
	}
	return market, true
}

// ResolveAll resolves every ref on a fixed-width worker pool and returns the
// resolved pairs keyed by competition id. Unresolved competitions are absent.
func (s *OddsService) ResolveAll(ctx context.Context, refs []CompetitionRef) map[string]odds.Pair {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.ResolveAll",
		attribute.Int("odds.requests", len(refs)),
		attribute.Int("odds.workers", s.workers),
	)
	defer span.End()

	results := make([]*odds.Pair, len(refs))
	if len(refs) > 0 {
		s.runPool(ctx, refs, results)
	}

	out := make(map[string]odds.Pair, len(refs))
	for idx, pair := range results {
		if pair == nil {
			continue
		}
		out[refs[idx].Competition.ID] = *pair
	}

	span.SetAttributes(attribute.Int("odds.resolved", len(out)))
	return out
}

func (s *OddsService) runPool(ctx context.Context, refs []CompetitionRef, results []*odds.Pair) {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		s.logger.WarnContext(ctx, "create odds worker pool failed, resolving inline", "error", err)
		for idx := range refs {
			results[idx] = s.Resolve(ctx, refs[idx])
		}
		return
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx := range refs {
		idx := idx
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results[idx] = s.Resolve(ctx, refs[idx])
		}); err != nil {
			workers.Done()
			results[idx] = s.Resolve(ctx, refs[idx])
		}
	}
	workers.Wait()
}
