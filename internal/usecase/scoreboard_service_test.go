package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/league"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreboardService_IsolatesLeagueFailures(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		events: map[string][]ExternalEvent{
			"nfl": {
				{ID: "401", Date: "2026-10-15T17:00Z", Name: "Bills at Chiefs", Competitions: []ExternalCompetition{{ID: "401"}}},
				{ID: "402", Date: "2026-10-16T17:00Z", Name: "Jets at Dolphins", Competitions: []ExternalCompetition{{ID: "402"}}},
			},
		},
		eventsErr: map[string]error{"nba": errUpstream},
	}
	svc := NewScoreboardService(provider, 2, logging.NewNop())

	leagues := []league.Descriptor{
		{ID: "28", Name: "National Football League", Slug: "nfl", Sport: "football"},
		{ID: "46", Name: "National Basketball Association", Slug: "nba", Sport: "basketball"},
		{ID: "90", Name: "Quiet League", Slug: "quiet", Sport: "soccer"},
	}

	got := svc.GetScoreboards(context.Background(), leagues, time.Time{}, time.Time{})
	require.Len(t, got, 3)

	require.Len(t, got[0], 2)
	assert.Equal(t, "401", got[0][0].ID)
	assert.Equal(t, "402", got[0][1].ID)
	assert.Equal(t, "nfl", got[0][0].LeagueSlug)

	assert.NotNil(t, got[1])
	assert.Empty(t, got[1], "failed league yields an empty list")
	assert.Empty(t, got[2])
}

func TestNormalizeEvent_DerivesTournamentAndIdentity(t *testing.T) {
	t.Parallel()

	nfl := league.Descriptor{ID: "28", Name: "National Football League", Slug: "nfl", Sport: "football"}

	team := NormalizeEvent(nfl, ExternalEvent{ID: "401", Competitions: []ExternalCompetition{{ID: "401"}}}, 0)
	assert.Equal(t, scoreboard.ShapeCompetitions, team.Shape)
	assert.Equal(t, "National Football League", team.TournamentName)

	explicit := NormalizeEvent(nfl, ExternalEvent{ID: "401", TournamentName: "Preseason", Competitions: []ExternalCompetition{{ID: "401"}}}, 0)
	assert.Equal(t, "Preseason", explicit.TournamentName)

	atp := league.Descriptor{ID: "851", Name: "ATP", Slug: "atp", Sport: "tennis"}
	tennis := NormalizeEvent(atp, ExternalEvent{ID: "713", ShortName: "Shanghai", Groupings: []ExternalGrouping{{DisplayName: "Court 1"}}}, 0)
	assert.Equal(t, scoreboard.ShapeGroupings, tennis.Shape)
	assert.Empty(t, tennis.TournamentName)
	assert.Equal(t, "Shanghai", TournamentKey(tennis))

	anonymous := NormalizeEvent(atp, ExternalEvent{Date: "2026-10-15T10:00Z"}, 3)
	assert.Equal(t, "atp-3", anonymous.ID)
	require.Len(t, anonymous.Competitions, 1)
	assert.Equal(t, "atp-3", anonymous.Competitions[0].ID)
	assert.True(t, anonymous.HasDate())
}
