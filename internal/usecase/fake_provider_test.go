package usecase

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var errUpstream = crerr.New("upstream failed")

type fakeProvider struct {
	mu sync.Mutex

	refs      map[string][]string
	leagues   map[string]ExternalLeague
	events    map[string][]ExternalEvent
	eventsErr map[string]error
	markets   map[string][]ExternalOddsMarket

	leagueCalls int
	oddsCalls   []string
	inflight    int
	maxInflight int
	oddsDelay   time.Duration
}

func (f *fakeProvider) LeagueRefs(_ context.Context, sport string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	refs, ok := f.refs[sport]
	if !ok {
		return nil, errUpstream
	}
	return refs, nil
}

func (f *fakeProvider) League(_ context.Context, ref string) (ExternalLeague, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leagueCalls++
	item, ok := f.leagues[ref]
	if !ok {
		return ExternalLeague{}, errUpstream
	}
	return item, nil
}

func (f *fakeProvider) Scoreboard(_ context.Context, _ string, leagueSlug string, _, _ time.Time) ([]ExternalEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.eventsErr[leagueSlug]; err != nil {
		return nil, err
	}
	return f.events[leagueSlug], nil
}

func (f *fakeProvider) CompetitionOdds(_ context.Context, _ string, _ string, _ string, competitionID string) ([]ExternalOddsMarket, error) {
	f.mu.Lock()
	f.oddsCalls = append(f.oddsCalls, competitionID)
	f.inflight++
	if f.inflight > f.maxInflight {
		f.maxInflight = f.inflight
	}
	delay := f.oddsDelay
	markets, ok := f.markets[competitionID]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	f.inflight--
	f.mu.Unlock()

	if !ok {
		return nil, errUpstream
	}
	return markets, nil
}

func float(v float64) *float64 {
	return &v
}
