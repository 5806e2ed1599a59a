package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/league"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
)

// ScoreboardService fetches and normalizes league scoreboards.
type ScoreboardService struct {
	provider SportsProvider
	fanout   int
	logger   *logging.Logger
}

func NewScoreboardService(provider SportsProvider, fanout int, logger *logging.Logger) *ScoreboardService {
	if logger == nil {
		logger = logging.Default()
	}
	if fanout <= 0 {
		fanout = DefaultFanout
	}
	return &ScoreboardService{
		provider: provider,
		fanout:   fanout,
		logger:   logger.Named("usecase.scoreboard"),
	}
}

// GetScoreboard returns the league's events in upstream order. A failed fetch
// yields an empty list for this league only.
func (s *ScoreboardService) GetScoreboard(ctx context.Context, item league.Descriptor, from, to time.Time) []scoreboard.Event {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.GetScoreboard",
		attribute.String("league.slug", item.Slug),
		attribute.String("league.sport", item.Sport),
	)
	defer span.End()

	external, err := s.provider.Scoreboard(ctx, item.Sport, item.Slug, from, to)
	if err != nil {
		s.logger.WarnContext(ctx, "scoreboard unavailable, league yields no events",
			"sport", item.Sport,
			"league", item.Slug,
			"error", err,
		)
		return []scoreboard.Event{}
	}

	events := make([]scoreboard.Event, 0, len(external))
	for idx, raw := range external {
		events = append(events, NormalizeEvent(item, raw, idx))
	}

	span.SetAttributes(attribute.Int("scoreboard.events", len(events)))
	return events
}

// GetScoreboards fans out over leagues with bounded concurrency. The result is
// indexed like the input; each slot is written by exactly one worker.
func (s *ScoreboardService) GetScoreboards(ctx context.Context, leagues []league.Descriptor, from, to time.Time) [][]scoreboard.Event {
	mapper := iter.Mapper[league.Descriptor, []scoreboard.Event]{MaxGoroutines: s.fanout}
	return mapper.Map(leagues, func(item *league.Descriptor) []scoreboard.Event {
		return s.GetScoreboard(ctx, *item, from, to)
	})
}

// NormalizeEvent binds an upstream event to the league it was fetched for and
// flattens its competitions.
func NormalizeEvent(item league.Descriptor, raw ExternalEvent, position int) scoreboard.Event {
	if strings.TrimSpace(raw.ID) == "" {
		raw.ID = item.Slug + "-" + strconv.Itoa(position)
	}

	shape := ClassifyEvent(raw)
	tournament := strings.TrimSpace(raw.TournamentName)
	if tournament == "" && shape == scoreboard.ShapeCompetitions {
		tournament = strings.TrimSpace(item.Name)
	}

	return scoreboard.Event{
		ID:             strings.TrimSpace(raw.ID),
		Date:           ParseUpstreamTime(raw.Date),
		Name:           strings.TrimSpace(raw.Name),
		ShortName:      strings.TrimSpace(raw.ShortName),
		TournamentName: tournament,
		LeagueID:       item.ID,
		LeagueSlug:     item.Slug,
		Sport:          item.Sport,
		Shape:          shape,
		Competitions:   FlattenEvent(raw),
	}
}
