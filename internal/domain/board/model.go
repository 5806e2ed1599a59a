package board

import (
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/odds"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
)

// KeySeparator joins tournament and grouping names into a grouping key.
const KeySeparator = "||"

// Board is the presentation-ready hierarchy for one aggregation cycle.
type Board struct {
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Tournaments []Tournament
}

// Tournament is a top-level node: a league or an ad-hoc tournament name.
type Tournament struct {
	Key       string
	Name      string
	Groupings []Grouping
}

// HasLive reports whether any competition under the node is in progress.
func (t Tournament) HasLive() bool {
	for _, grouping := range t.Groupings {
		for _, item := range grouping.Items {
			if item.Competition.Status.IsLive() {
				return true
			}
		}
	}
	return false
}

func (t Tournament) CompetitionCount() int {
	total := 0
	for _, grouping := range t.Groupings {
		total += len(grouping.Items)
	}
	return total
}

type Grouping struct {
	Key         string
	DisplayName string
	Items       []Item
}

// Item pairs a competition with the event it was flattened from.
type Item struct {
	Event           scoreboard.Event
	Competition     scoreboard.Competition
	Odds            *odds.Pair
	HomeProbability *float64
	AwayProbability *float64
}
