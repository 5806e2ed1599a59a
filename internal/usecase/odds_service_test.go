package usecase

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oddsRef(id string, home, away *float64) CompetitionRef {
	return CompetitionRef{
		Sport:      "football",
		LeagueSlug: "nfl",
		EventID:    id,
		Competition: scoreboard.Competition{
			ID:           id,
			EventID:      id,
			EmbeddedOdds: scoreboard.EmbeddedOdds{Home: home, Away: away},
		},
	}
}

func TestOddsServiceResolve_FallbackChain(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{markets: map[string][]ExternalOddsMarket{
		"endpoint":      {{Provider: "ESPN BET", Home: float(-185), Away: float(154)}},
		"empty-market":  {{Provider: "Spread"}},
		"short-list":    {},
		"nan-endpoint":  {{Home: float(math.NaN()), Away: float(math.Inf(1))}},
		"half-endpoint": {{Home: float(-110)}},
	}}
	svc := NewOddsService(provider, OddsConfig{MarketIndex: 0, Workers: 2}, logging.NewNop())
	ctx := context.Background()

	cases := []struct {
		name     string
		ref      CompetitionRef
		wantNil  bool
		wantHome *float64
		wantAway *float64
	}{
		{name: "endpoint wins over embedded", ref: oddsRef("endpoint", float(-120), float(100)), wantHome: float(-185), wantAway: float(154)},
		{name: "entry without moneyline falls back", ref: oddsRef("empty-market", float(-120), float(100)), wantHome: float(-120), wantAway: float(100)},
		{name: "index out of bounds falls back", ref: oddsRef("short-list", nil, float(130)), wantAway: float(130)},
		{name: "failed call falls back", ref: oddsRef("unknown", float(-300), nil), wantHome: float(-300)},
		{name: "non finite endpoint values fall back", ref: oddsRef("nan-endpoint", float(200), float(-250)), wantHome: float(200), wantAway: float(-250)},
		{name: "one sided endpoint pair is kept", ref: oddsRef("half-endpoint", float(1), float(1)), wantHome: float(-110)},
		{name: "nothing resolves", ref: oddsRef("unknown", nil, nil), wantNil: true},
		{name: "non finite embedded values do not resolve", ref: oddsRef("unknown", float(math.NaN()), nil), wantNil: true},
	}

	for _, tc := range cases {
		got := svc.Resolve(ctx, tc.ref)
		if tc.wantNil {
			assert.Nil(t, got, tc.name)
			continue
		}
		require.NotNil(t, got, tc.name)
		assert.Equal(t, tc.wantHome, got.Home, tc.name)
		assert.Equal(t, tc.wantAway, got.Away, tc.name)
	}
}

func TestOddsServiceResolve_ConfigurableMarketIndex(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{markets: map[string][]ExternalOddsMarket{
		"401": {
			{Provider: "first", Home: float(-101), Away: float(101)},
			{Provider: "second", Home: float(-202), Away: float(202)},
		},
	}}
	ctx := context.Background()

	second := NewOddsService(provider, OddsConfig{MarketIndex: 1}, logging.NewNop()).Resolve(ctx, oddsRef("401", nil, nil))
	require.NotNil(t, second)
	assert.Equal(t, -202.0, *second.Home)

	third := NewOddsService(provider, OddsConfig{MarketIndex: 2}, logging.NewNop()).Resolve(ctx, oddsRef("401", nil, nil))
	assert.Nil(t, third)

	negative := NewOddsService(provider, OddsConfig{MarketIndex: -1}, logging.NewNop()).Resolve(ctx, oddsRef("401", float(150), nil))
	require.NotNil(t, negative)
	assert.Equal(t, 150.0, *negative.Home)
}

func TestOddsServiceResolveAll_BoundedAndKeyed(t *testing.T) {
	t.Parallel()

	markets := make(map[string][]ExternalOddsMarket)
	refs := make([]CompetitionRef, 0, 40)
	for i := 0; i < 40; i++ {
		id := strconv.Itoa(i)
		if i%2 == 0 {
			markets[id] = []ExternalOddsMarket{{Home: float(float64(-100 - i)), Away: float(float64(100 + i))}}
		}
		refs = append(refs, oddsRef(id, nil, nil))
	}
	provider := &fakeProvider{markets: markets, oddsDelay: 2 * time.Millisecond}
	svc := NewOddsService(provider, OddsConfig{Workers: 4}, logging.NewNop())

	got := svc.ResolveAll(context.Background(), refs)
	require.Len(t, got, 20)
	for i := 0; i < 40; i += 2 {
		pair, ok := got[strconv.Itoa(i)]
		require.True(t, ok)
		assert.Equal(t, float64(-100-i), *pair.Home)
	}
	_, ok := got["1"]
	assert.False(t, ok, "unresolved competitions are absent")

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Len(t, provider.oddsCalls, 40)
	assert.LessOrEqual(t, provider.maxInflight, 4)
}

func TestOddsServiceResolveAll_Empty(t *testing.T) {
	t.Parallel()

	svc := NewOddsService(&fakeProvider{}, OddsConfig{}, logging.NewNop())
	if got := svc.ResolveAll(context.Background(), nil); len(got) != 0 {
		t.Fatalf("expected no pairs, got %d", len(got))
	}
}
