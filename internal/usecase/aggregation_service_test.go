package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationService_BuildBoardKeepsOddsWithTheirCompetition(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		refs:    map[string][]string{"tennis": {"ref-open"}},
		leagues: map[string]ExternalLeague{"ref-open": {ID: "851", Name: "Open", Slug: "open"}},
		events: map[string][]ExternalEvent{
			"open": {{
				ID:   "900",
				Date: "2026-10-15T10:00Z",
				Name: "Open",
				Groupings: []ExternalGrouping{
					{DisplayName: "Court 1", Competitions: []ExternalCompetition{{Moneyline: ExternalMoneyline{HomeOpen: float(-300), AwayOpen: float(240)}}}},
					{DisplayName: "Court 2", Competitions: []ExternalCompetition{{Moneyline: ExternalMoneyline{HomeOpen: float(250), AwayOpen: float(-320)}}}},
				},
			}},
		},
	}

	logger := logging.NewNop()
	svc := NewAggregationService(
		NewLeagueDirectoryService(provider, LeagueDirectoryConfig{Sports: []string{"tennis"}}, logger),
		NewScoreboardService(provider, 2, logger),
		NewOddsService(provider, OddsConfig{Workers: 2}, logger),
		AggregationConfig{},
		logger,
	)

	got := svc.BuildBoard(context.Background(), time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))
	require.Len(t, got.Tournaments, 1)
	require.Len(t, got.Tournaments[0].Groupings, 2)

	ids := make(map[string]bool)
	for _, grouping := range got.Tournaments[0].Groupings {
		require.Len(t, grouping.Items, 1)
		item := grouping.Items[0]
		assert.False(t, ids[item.Competition.ID], "duplicate competition id %q", item.Competition.ID)
		ids[item.Competition.ID] = true

		require.NotNil(t, item.Odds)
		assert.Equal(t, *item.Competition.EmbeddedOdds.Home, *item.Odds.Home, "odds attached to %s", grouping.Key)
	}
}
