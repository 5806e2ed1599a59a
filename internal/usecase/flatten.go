package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
)

// ClassifyEvent picks exactly one layout for an event. Groupings win over
// top-level competitions; an event with neither is treated as a single contest.
func ClassifyEvent(event ExternalEvent) scoreboard.EventShape {
	switch {
	case len(event.Groupings) > 0:
		return scoreboard.ShapeGroupings
	case len(event.Competitions) > 0:
		return scoreboard.ShapeCompetitions
	default:
		return scoreboard.ShapeBare
	}
}

// FlattenEvent expands one upstream event into its competitions.
func FlattenEvent(event ExternalEvent) []scoreboard.Competition {
	switch ClassifyEvent(event) {
	case scoreboard.ShapeGroupings:
		return flattenGroupings(event)
	case scoreboard.ShapeCompetitions:
		return flattenCompetitions(event)
	default:
		return []scoreboard.Competition{synthesizeCompetition(event, eventID(event), "", nil)}
	}
}

// flattenGroupings takes each grouping's own competitions, or synthesizes one
// from the event when the grouping has none.
func flattenGroupings(event ExternalEvent) []scoreboard.Competition {
	id := eventID(event)
	out := make([]scoreboard.Competition, 0, len(event.Groupings))
	for idx, grouping := range event.Groupings {
		name := strings.TrimSpace(grouping.DisplayName)
		groupingID := strings.TrimSpace(grouping.ID)
		if groupingID == "" {
			groupingID = strconv.Itoa(idx)
		}
		if len(grouping.Competitions) == 0 {
			out = append(out, synthesizeCompetition(event, id+":"+groupingID, name, grouping.Broadcasts))
			continue
		}
		// Fallback ids carry the grouping so id-less contests in sibling groupings stay distinct.
		for compIdx, item := range grouping.Competitions {
			competition := mapCompetition(event, item, id, id+":"+groupingID+":"+strconv.Itoa(compIdx))
			competition.GroupingName = name
			if len(competition.Broadcasts) == 0 {
				competition.Broadcasts = cloneStrings(grouping.Broadcasts)
			}
			out = append(out, competition)
		}
	}
	return out
}

func flattenCompetitions(event ExternalEvent) []scoreboard.Competition {
	id := eventID(event)
	out := make([]scoreboard.Competition, 0, len(event.Competitions))
	for idx, item := range event.Competitions {
		out = append(out, mapCompetition(event, item, id, id+":"+strconv.Itoa(idx)))
	}
	return out
}

func synthesizeCompetition(event ExternalEvent, id, groupingName string, broadcasts []string) scoreboard.Competition {
	if len(broadcasts) == 0 {
		broadcasts = event.Broadcasts
	}
	return scoreboard.Competition{
		ID:           id,
		EventID:      eventID(event),
		StartTime:    ParseUpstreamTime(event.Date),
		Status:       mapStatus(event.Status),
		Competitors:  mapCompetitors(event.Competitors),
		Broadcasts:   cloneStrings(broadcasts),
		GroupingName: groupingName,
		Synthesized:  true,
		EmbeddedOdds: scoreboard.EmbeddedOdds{
			Home: event.Moneyline.HomeOpen,
			Away: event.Moneyline.AwayOpen,
		},
	}
}

func mapCompetition(event ExternalEvent, item ExternalCompetition, eventID, fallbackID string) scoreboard.Competition {
	competition := scoreboard.Competition{
		ID:          strings.TrimSpace(item.ID),
		EventID:     eventID,
		StartTime:   ParseUpstreamTime(item.Date),
		Competitors: mapCompetitors(item.Competitors),
		Broadcasts:  cloneStrings(item.Broadcasts),
		RoundLabel:  strings.TrimSpace(item.RoundLabel),
		EmbeddedOdds: scoreboard.EmbeddedOdds{
			Home: item.Moneyline.HomeOpen,
			Away: item.Moneyline.AwayOpen,
		},
	}
	if competition.ID == "" {
		competition.ID = fallbackID
		competition.Synthesized = true
	}
	if competition.StartTime.IsZero() {
		competition.StartTime = ParseUpstreamTime(event.Date)
	}
	if item.Status != nil {
		competition.Status = mapStatus(*item.Status)
	} else {
		competition.Status = mapStatus(event.Status)
	}
	if len(competition.Competitors) == 0 {
		competition.Competitors = mapCompetitors(event.Competitors)
	}
	return competition
}

func mapStatus(src ExternalStatus) scoreboard.Status {
	state := scoreboard.NormalizeState(src.State)
	label := firstNonEmpty(src.ShortDetail, src.Detail, src.Description)
	if label == "" {
		switch state {
		case scoreboard.StateIn:
			label = "Live"
		case scoreboard.StatePost:
			label = "Final"
		default:
			label = "Scheduled"
		}
	}
	return scoreboard.Status{State: state, Label: label}
}

func mapCompetitors(items []ExternalCompetitor) []scoreboard.Competitor {
	if len(items) == 0 {
		return nil
	}
	out := make([]scoreboard.Competitor, 0, len(items))
	for _, item := range items {
		competitor := scoreboard.Competitor{
			ID:          strings.TrimSpace(item.ID),
			DisplayName: strings.TrimSpace(item.DisplayName),
			IsHome:      scoreboard.IsHomeSide(item.HomeAway),
			Score:       strings.TrimSpace(item.Score),
			IsWinner:    item.Winner,
		}
		for _, line := range item.Linescores {
			competitor.PeriodScores = append(competitor.PeriodScores, scoreboard.PeriodScore{
				Value:    line.Value,
				IsWinner: line.Winner,
			})
		}
		out = append(out, competitor)
	}
	return out
}

var upstreamTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02",
}

// ParseUpstreamTime accepts the timestamp layouts seen on the feed. Unparseable
// values return the zero time.
func ParseUpstreamTime(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range upstreamTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func eventID(event ExternalEvent) string {
	return strings.TrimSpace(event.ID)
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
