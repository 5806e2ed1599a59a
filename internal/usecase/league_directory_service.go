package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/league"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultDirectoryPrefixLimit = 25
	DefaultFanout               = 8
)

type LeagueDirectoryConfig struct {
	Sports      []string
	PrefixLimit int
	Fanout      int
}

// LeagueDirectoryService resolves the upstream league directory into descriptors.
type LeagueDirectoryService struct {
	provider    SportsProvider
	validator   *validator.Validate
	sports      []string
	prefixLimit int
	fanout      int
	logger      *logging.Logger
}

func NewLeagueDirectoryService(provider SportsProvider, cfg LeagueDirectoryConfig, logger *logging.Logger) *LeagueDirectoryService {
	if logger == nil {
		logger = logging.Default()
	}
	prefix := cfg.PrefixLimit
	if prefix <= 0 {
		prefix = DefaultDirectoryPrefixLimit
	}
	fanout := cfg.Fanout
	if fanout <= 0 {
		fanout = DefaultFanout
	}

	sports := make([]string, 0, len(cfg.Sports))
	seen := make(map[string]struct{}, len(cfg.Sports))
	for _, sport := range cfg.Sports {
		sport = strings.ToLower(strings.TrimSpace(sport))
		if sport == "" {
			continue
		}
		if _, ok := seen[sport]; ok {
			continue
		}
		seen[sport] = struct{}{}
		sports = append(sports, sport)
	}

	return &LeagueDirectoryService{
		provider:    provider,
		validator:   validator.New(),
		sports:      sports,
		prefixLimit: prefix,
		fanout:      fanout,
		logger:      logger.Named("usecase.league_directory"),
	}
}

// List resolves every configured sport's directory. Unreachable directories and
// unresolvable references are dropped; the result is never an error.
func (s *LeagueDirectoryService) List(ctx context.Context) []league.Descriptor {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueDirectoryService.List",
		attribute.Int("directory.sports", len(s.sports)),
	)
	defer span.End()

	out := make([]league.Descriptor, 0)
	seen := make(map[string]struct{})
	for _, sport := range s.sports {
		for _, item := range s.listSport(ctx, sport) {
			key := item.Sport + "/" + item.Slug
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}

	span.SetAttributes(attribute.Int("directory.leagues", len(out)))
	return out
}

func (s *LeagueDirectoryService) listSport(ctx context.Context, sport string) []league.Descriptor {
	refs, err := s.provider.LeagueRefs(ctx, sport)
	if err != nil {
		s.logger.WarnContext(ctx, "league directory unavailable", "sport", sport, "error", err)
		return nil
	}
	if len(refs) > s.prefixLimit {
		refs = refs[:s.prefixLimit]
	}

	type resolved struct {
		item league.Descriptor
		ok   bool
	}

	mapper := iter.Mapper[string, resolved]{MaxGoroutines: s.fanout}
	results := mapper.Map(refs, func(ref *string) resolved {
		item, ok := s.resolve(ctx, sport, *ref)
		return resolved{item: item, ok: ok}
	})

	out := make([]league.Descriptor, 0, len(results))
	for _, result := range results {
		if result.ok {
			out = append(out, result.item)
		}
	}
	if dropped := len(refs) - len(out); dropped > 0 {
		s.logger.DebugContext(ctx, "dropped unresolved league references", "sport", sport, "dropped", dropped)
	}
	return out
}

func (s *LeagueDirectoryService) resolve(ctx context.Context, sport, ref string) (league.Descriptor, bool) {
	external, err := s.provider.League(ctx, ref)
	if err != nil {
		s.logger.DebugContext(ctx, "resolve league reference failed", "sport", sport, "ref", ref, "error", err)
		return league.Descriptor{}, false
	}

	item := league.Descriptor{
		ID:           strings.TrimSpace(external.ID),
		Name:         strings.TrimSpace(external.Name),
		Abbreviation: strings.TrimSpace(external.Abbreviation),
		Slug:         strings.TrimSpace(external.Slug),
		Logo:         strings.TrimSpace(external.Logo),
		Sport:        sport,
	}
	if item.Logo != "" {
		if err := s.validator.VarCtx(ctx, item.Logo, "url"); err != nil {
			s.logger.DebugContext(ctx, "league logo is not an absolute url", "sport", sport, "ref", ref, "logo", item.Logo)
			item.Logo = ""
		}
	}
	if err := s.validator.StructCtx(ctx, item); err != nil {
		s.logger.DebugContext(ctx, "league reference missing required fields", "sport", sport, "ref", ref, "error", err)
		return league.Descriptor{}, false
	}
	return item, true
}
