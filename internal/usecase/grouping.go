package usecase

import (
	"strings"

	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/board"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
)

const (
	fallbackTournamentName = "Tournament"
	fallbackGroupingName   = "Matches"
	tournamentDateLayout   = "Jan 2, 2006"
)

// TournamentKey names the top-level node an event belongs to.
func TournamentKey(event scoreboard.Event) string {
	if name := firstNonEmpty(event.TournamentName, event.ShortName, event.Name); name != "" {
		return name
	}
	if event.HasDate() {
		return event.Date.UTC().Format(tournamentDateLayout)
	}
	return fallbackTournamentName
}

// GroupingDisplayName names the second-level node a competition belongs to.
func GroupingDisplayName(event scoreboard.Event, competition scoreboard.Competition) string {
	if name := firstNonEmpty(competition.GroupingName, event.Name); name != "" {
		return name
	}
	return fallbackGroupingName
}

func GroupingKey(tournamentKey, displayName string) string {
	return tournamentKey + board.KeySeparator + displayName
}

// BuildTournaments groups competitions into tournament and grouping nodes.
// Nodes appear in first-seen order and items keep flattening order; a
// competition id already present under a grouping key is skipped.
func BuildTournaments(events []scoreboard.Event) []board.Tournament {
	tournaments := make([]board.Tournament, 0)
	tournamentIdx := make(map[string]int)
	groupingIdx := make(map[string][2]int)
	seen := make(map[string]map[string]struct{})

	for _, event := range events {
		tKey := TournamentKey(event)
		ti, ok := tournamentIdx[tKey]
		if !ok {
			ti = len(tournaments)
			tournamentIdx[tKey] = ti
			tournaments = append(tournaments, board.Tournament{Key: tKey, Name: tKey})
		}

		for _, competition := range event.Competitions {
			if strings.TrimSpace(competition.ID) == "" {
				continue
			}
			displayName := GroupingDisplayName(event, competition)
			gKey := GroupingKey(tKey, displayName)

			pos, ok := groupingIdx[gKey]
			if !ok {
				pos = [2]int{ti, len(tournaments[ti].Groupings)}
				groupingIdx[gKey] = pos
				tournaments[ti].Groupings = append(tournaments[ti].Groupings, board.Grouping{
					Key:         gKey,
					DisplayName: displayName,
				})
				seen[gKey] = make(map[string]struct{})
			}
			if _, dup := seen[gKey][competition.ID]; dup {
				continue
			}
			seen[gKey][competition.ID] = struct{}{}

			grouping := &tournaments[pos[0]].Groupings[pos[1]]
			grouping.Items = append(grouping.Items, board.Item{
				Event:       event,
				Competition: competition,
			})
		}
	}

	out := tournaments[:0]
	for _, tournament := range tournaments {
		if len(tournament.Groupings) > 0 {
			out = append(out, tournament)
		}
	}
	return out
}
