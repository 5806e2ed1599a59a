package usecase

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/board"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/league"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/odds"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/cache"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	directoryCacheKey     = "directory"
	boardCacheKeyPrefix   = "board:"
	defaultDirectoryTTL   = 5 * time.Minute
	defaultBoardTTL       = time.Minute
	boardCacheGranularity = time.Minute
)

type AggregationConfig struct {
	WindowPast   time.Duration
	WindowFuture time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration
}

// AggregationService is the read API over the pipeline. None of its methods
// report upstream failures; they degrade to empty or nil values instead.
type AggregationService struct {
	directory    *LeagueDirectoryService
	scoreboards  *ScoreboardService
	odds         *OddsService
	windowPast   time.Duration
	windowFuture time.Duration
	leagues      *cache.Store[[]league.Descriptor]
	boards       *cache.Store[board.Board]
	now          func() time.Time
	logger       *logging.Logger
}

func NewAggregationService(
	directory *LeagueDirectoryService,
	scoreboards *ScoreboardService,
	oddsService *OddsService,
	cfg AggregationConfig,
	logger *logging.Logger,
) *AggregationService {
	if logger == nil {
		logger = logging.Default()
	}
	past := cfg.WindowPast
	if past <= 0 {
		past = DefaultWindowPast
	}
	future := cfg.WindowFuture
	if future <= 0 {
		future = DefaultWindowFuture
	}
	directoryTTL := cfg.CacheTTL
	if directoryTTL <= 0 {
		directoryTTL = defaultDirectoryTTL
	}

	svc := &AggregationService{
		directory:    directory,
		scoreboards:  scoreboards,
		odds:         oddsService,
		windowPast:   past,
		windowFuture: future,
		leagues:      cache.NewStore[[]league.Descriptor](directoryTTL),
		now:          time.Now,
		logger:       logger.Named("usecase.aggregation"),
	}
	if cfg.CacheEnabled {
		boardTTL := cfg.CacheTTL
		if boardTTL <= 0 {
			boardTTL = defaultBoardTTL
		}
		svc.boards = cache.NewStore[board.Board](boardTTL)
	}
	return svc
}

// ListLeagues returns the resolved directory. Non-empty results are cached.
func (s *AggregationService) ListLeagues(ctx context.Context) []league.Descriptor {
	items, err := s.leagues.GetOrLoad(ctx, directoryCacheKey, func(ctx context.Context) ([]league.Descriptor, error) {
		items := s.directory.List(ctx)
		if len(items) == 0 {
			return nil, crerr.Wrap(ErrDependencyUnavailable, "league directory is empty")
		}
		return items, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "no leagues resolved", "error", err)
		return []league.Descriptor{}
	}

	out := make([]league.Descriptor, len(items))
	copy(out, items)
	return out
}

// GetScoreboard returns the league's events for the current window. Unknown
// slugs and failed fetches yield an empty list.
func (s *AggregationService) GetScoreboard(ctx context.Context, leagueSlug string) []scoreboard.Event {
	item, ok := s.findLeague(ctx, leagueSlug)
	if !ok {
		return []scoreboard.Event{}
	}
	window := NewWindow(s.now(), s.windowPast, s.windowFuture)
	return s.scoreboards.GetScoreboard(ctx, item, window.Start, window.End)
}

// GetOdds resolves one competition's moneyline. It returns nil when nothing resolves.
func (s *AggregationService) GetOdds(ctx context.Context, leagueSlug, competitionID string) *odds.Pair {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil
	}
	item, ok := s.findLeague(ctx, leagueSlug)
	if !ok {
		return nil
	}

	ref := CompetitionRef{
		Sport:       item.Sport,
		LeagueSlug:  item.Slug,
		EventID:     competitionID,
		Competition: scoreboard.Competition{ID: competitionID},
	}
	if found, ok := findCompetition(s.GetScoreboard(ctx, item.Slug), competitionID); ok {
		ref.EventID = found.EventID
		ref.Competition = found
	}
	return s.odds.Resolve(ctx, ref)
}

// BuildBoard runs one full aggregation cycle for the given instant.
func (s *AggregationService) BuildBoard(ctx context.Context, now time.Time) board.Board {
	if now.IsZero() {
		now = s.now()
	}
	if s.boards == nil {
		return s.buildBoard(ctx, now)
	}

	key := boardCacheKeyPrefix + now.UTC().Truncate(boardCacheGranularity).Format(time.RFC3339)
	out, err := s.boards.GetOrLoad(ctx, key, func(ctx context.Context) (board.Board, error) {
		return s.buildBoard(ctx, now), nil
	})
	if err != nil {
		return s.buildBoard(ctx, now)
	}
	return out
}

func (s *AggregationService) buildBoard(ctx context.Context, now time.Time) board.Board {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.BuildBoard")
	defer span.End()

	window := NewWindow(now, s.windowPast, s.windowFuture)
	leagues := s.ListLeagues(ctx)
	perLeague := s.scoreboards.GetScoreboards(ctx, leagues, window.Start, window.End)

	events := make([]scoreboard.Event, 0)
	for _, items := range perLeague {
		events = append(events, FilterEventsByWindow(items, window)...)
	}

	tournaments := BuildTournaments(events)
	resolved := s.odds.ResolveAll(ctx, collectRefs(tournaments))
	attachOdds(tournaments, resolved)
	SortLiveFirst(tournaments)

	span.SetAttributes(
		attribute.Int("board.leagues", len(leagues)),
		attribute.Int("board.events", len(events)),
		attribute.Int("board.tournaments", len(tournaments)),
		attribute.Int("board.odds_resolved", len(resolved)),
	)
	s.logger.InfoContext(ctx, "board built",
		"leagues", len(leagues),
		"events", len(events),
		"tournaments", len(tournaments),
		"odds_resolved", len(resolved),
	)

	return board.Board{
		GeneratedAt: now.UTC(),
		WindowStart: window.Start.UTC(),
		WindowEnd:   window.End.UTC(),
		Tournaments: tournaments,
	}
}

func (s *AggregationService) findLeague(ctx context.Context, slug string) (league.Descriptor, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return league.Descriptor{}, false
	}
	for _, item := range s.ListLeagues(ctx) {
		if strings.ToLower(item.Slug) == slug {
			return item, true
		}
	}
	return league.Descriptor{}, false
}

func findCompetition(events []scoreboard.Event, competitionID string) (scoreboard.Competition, bool) {
	for _, event := range events {
		for _, competition := range event.Competitions {
			if competition.ID == competitionID {
				return competition, true
			}
		}
	}
	return scoreboard.Competition{}, false
}

func collectRefs(tournaments []board.Tournament) []CompetitionRef {
	refs := make([]CompetitionRef, 0)
	seen := make(map[string]struct{})
	for _, tournament := range tournaments {
		for _, grouping := range tournament.Groupings {
			for _, item := range grouping.Items {
				if _, ok := seen[item.Competition.ID]; ok {
					continue
				}
				seen[item.Competition.ID] = struct{}{}
				refs = append(refs, CompetitionRef{
					Sport:       item.Event.Sport,
					LeagueSlug:  item.Event.LeagueSlug,
					EventID:     item.Event.ID,
					Competition: item.Competition,
				})
			}
		}
	}
	return refs
}

func attachOdds(tournaments []board.Tournament, resolved map[string]odds.Pair) {
	for ti := range tournaments {
		for gi := range tournaments[ti].Groupings {
			items := tournaments[ti].Groupings[gi].Items
			for ii := range items {
				pair, ok := resolved[items[ii].Competition.ID]
				if !ok {
					continue
				}
				items[ii].Odds = &pair
				items[ii].HomeProbability = odds.ImpliedProbability(pair.Home)
				items[ii].AwayProbability = odds.ImpliedProbability(pair.Away)
			}
		}
	}
}
