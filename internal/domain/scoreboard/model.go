package scoreboard

import (
	"strings"
	"time"
)

const (
	StatePre  = "pre"
	StateIn   = "in"
	StatePost = "post"
)

// EventShape tags which upstream layout an event arrived in.
// The order of the constants is the flattening precedence.
type EventShape int

const (
	ShapeGroupings EventShape = iota + 1
	ShapeCompetitions
	ShapeBare
)

func (s EventShape) String() string {
	switch s {
	case ShapeGroupings:
		return "groupings"
	case ShapeCompetitions:
		return "competitions"
	case ShapeBare:
		return "bare"
	default:
		return "unknown"
	}
}

// Event is one upstream event normalized for a single league.
type Event struct {
	ID             string
	Date           time.Time
	Name           string
	ShortName      string
	TournamentName string
	LeagueID       string
	LeagueSlug     string
	Sport          string
	Shape          EventShape
	Competitions   []Competition
}

// HasDate reports whether the upstream date parsed.
func (e Event) HasDate() bool {
	return !e.Date.IsZero()
}

// Status is the display status of a competition.
type Status struct {
	State string
	Label string
}

func NormalizeState(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StateIn:
		return StateIn
	case StatePost:
		return StatePost
	default:
		return StatePre
	}
}

func (s Status) IsLive() bool {
	return s.State == StateIn
}

// Competition is one head-to-head contest inside an event.
type Competition struct {
	ID           string
	EventID      string
	StartTime    time.Time
	Status       Status
	Competitors  []Competitor
	Broadcasts   []string
	RoundLabel   string
	GroupingName string
	Synthesized  bool
	// EmbeddedOdds holds opening moneyline prices carried in the scoreboard payload.
	EmbeddedOdds EmbeddedOdds
}

// EmbeddedOdds mirrors the moneyline block some payloads inline on a competition.
type EmbeddedOdds struct {
	Home *float64
	Away *float64
}

func (c Competition) Home() (Competitor, bool) {
	for _, item := range c.Competitors {
		if item.IsHome {
			return item, true
		}
	}
	return Competitor{}, false
}

func (c Competition) Away() (Competitor, bool) {
	for _, item := range c.Competitors {
		if !item.IsHome {
			return item, true
		}
	}
	return Competitor{}, false
}

type Competitor struct {
	ID           string
	DisplayName  string
	IsHome       bool
	Score        string
	IsWinner     bool
	PeriodScores []PeriodScore
}

type PeriodScore struct {
	Value    float64
	IsWinner bool
}

// IsHomeSide maps the upstream homeAway discriminator; only the literal "home" is home.
func IsHomeSide(homeAway string) bool {
	return homeAway == "home"
}
