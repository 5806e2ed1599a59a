package usecase

import (
	"context"
	"time"
)

// SportsProvider is the upstream feed as seen by the aggregation pipeline.
// Implementations report transport failures as errors; the pipeline decides how to absorb them.
type SportsProvider interface {
	LeagueRefs(ctx context.Context, sport string) ([]string, error)
	League(ctx context.Context, ref string) (ExternalLeague, error)
	Scoreboard(ctx context.Context, sport, leagueSlug string, from, to time.Time) ([]ExternalEvent, error)
	CompetitionOdds(ctx context.Context, sport, leagueSlug, eventID, competitionID string) ([]ExternalOddsMarket, error)
}

type ExternalLeague struct {
	ID           string
	Name         string
	Abbreviation string
	Slug         string
	Logo         string
}

// ExternalEvent keeps every layout an event may arrive in; the flattener picks one.
type ExternalEvent struct {
	ID             string
	Date           string
	Name           string
	ShortName      string
	TournamentName string
	Status         ExternalStatus
	Competitors    []ExternalCompetitor
	Broadcasts     []string
	Moneyline      ExternalMoneyline
	Groupings      []ExternalGrouping
	Competitions   []ExternalCompetition
}

type ExternalGrouping struct {
	ID           string
	Slug         string
	DisplayName  string
	Broadcasts   []string
	Competitions []ExternalCompetition
}

type ExternalCompetition struct {
	ID          string
	Date        string
	Status      *ExternalStatus
	Competitors []ExternalCompetitor
	Broadcasts  []string
	RoundLabel  string
	Moneyline   ExternalMoneyline
}

type ExternalStatus struct {
	State       string
	Detail      string
	ShortDetail string
	Description string
}

type ExternalCompetitor struct {
	ID          string
	HomeAway    string
	DisplayName string
	Score       string
	Winner      bool
	Linescores  []ExternalLinescore
}

type ExternalLinescore struct {
	Value  float64
	Winner bool
}

// ExternalMoneyline carries the opening prices inlined on scoreboard payloads (odds[0].moneyline).
type ExternalMoneyline struct {
	HomeOpen *float64
	AwayOpen *float64
}

// ExternalOddsMarket is one provider entry returned by the dedicated odds endpoint.
type ExternalOddsMarket struct {
	Provider string
	Home     *float64
	Away     *float64
}

// HasMoneyline reports whether the entry carries a usable price on either side.
func (m ExternalOddsMarket) HasMoneyline() bool {
	return m.Home != nil || m.Away != nil
}
