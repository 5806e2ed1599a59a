package httpapi

import (
	"time"

	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/board"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/league"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/odds"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
)

type listDTO[T any] struct {
	Items []T `json:"items"`
}

type leagueDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Slug         string `json:"slug"`
	Sport        string `json:"sport"`
	Logo         string `json:"logo,omitempty"`
}

type eventDTO struct {
	ID             string           `json:"id"`
	Date           string           `json:"date,omitempty"`
	Name           string           `json:"name,omitempty"`
	ShortName      string           `json:"shortName,omitempty"`
	TournamentName string           `json:"tournamentName,omitempty"`
	LeagueSlug     string           `json:"leagueSlug"`
	Sport          string           `json:"sport"`
	Shape          string           `json:"shape"`
	Competitions   []competitionDTO `json:"competitions"`
}

type competitionDTO struct {
	ID           string          `json:"id"`
	EventID      string          `json:"eventId"`
	StartTime    string          `json:"startTime,omitempty"`
	State        string          `json:"state"`
	StatusLabel  string          `json:"statusLabel"`
	RoundLabel   string          `json:"roundLabel,omitempty"`
	GroupingName string          `json:"groupingName,omitempty"`
	Broadcasts   []string        `json:"broadcasts"`
	Synthesized  bool            `json:"synthesized,omitempty"`
	Competitors  []competitorDTO `json:"competitors"`
}

type competitorDTO struct {
	ID           string           `json:"id,omitempty"`
	DisplayName  string           `json:"displayName"`
	HomeAway     string           `json:"homeAway"`
	Score        string           `json:"score,omitempty"`
	Winner       bool             `json:"winner"`
	PeriodScores []periodScoreDTO `json:"periodScores,omitempty"`
}

type periodScoreDTO struct {
	Value  float64 `json:"value"`
	Winner bool    `json:"winner"`
}

type oddsDTO struct {
	Home *float64 `json:"home"`
	Away *float64 `json:"away"`
}

type boardDTO struct {
	GeneratedAt string          `json:"generatedAt"`
	WindowStart string          `json:"windowStart"`
	WindowEnd   string          `json:"windowEnd"`
	Tournaments []tournamentDTO `json:"tournaments"`
}

type tournamentDTO struct {
	Key       string        `json:"key"`
	Name      string        `json:"name"`
	Live      bool          `json:"live"`
	Groupings []groupingDTO `json:"groupings"`
}

type groupingDTO struct {
	Key         string    `json:"key"`
	DisplayName string    `json:"displayName"`
	Items       []itemDTO `json:"items"`
}

type itemDTO struct {
	EventName       string         `json:"eventName,omitempty"`
	Competition     competitionDTO `json:"competition"`
	Odds            *oddsDTO       `json:"odds,omitempty"`
	HomeProbability *float64       `json:"homeProbability,omitempty"`
	AwayProbability *float64       `json:"awayProbability,omitempty"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func toLeagueDTO(item league.Descriptor) leagueDTO {
	return leagueDTO{
		ID:           item.ID,
		Name:         item.Name,
		DisplayName:  item.DisplayName(),
		Abbreviation: item.Abbreviation,
		Slug:         item.Slug,
		Sport:        item.Sport,
		Logo:         item.Logo,
	}
}

func toEventDTO(item scoreboard.Event) eventDTO {
	competitions := make([]competitionDTO, 0, len(item.Competitions))
	for _, comp := range item.Competitions {
		competitions = append(competitions, toCompetitionDTO(comp))
	}

	return eventDTO{
		ID:             item.ID,
		Date:           formatTime(item.Date),
		Name:           item.Name,
		ShortName:      item.ShortName,
		TournamentName: item.TournamentName,
		LeagueSlug:     item.LeagueSlug,
		Sport:          item.Sport,
		Shape:          item.Shape.String(),
		Competitions:   competitions,
	}
}

func toCompetitionDTO(item scoreboard.Competition) competitionDTO {
	competitors := make([]competitorDTO, 0, len(item.Competitors))
	for _, c := range item.Competitors {
		homeAway := "away"
		if c.IsHome {
			homeAway = "home"
		}
		periods := make([]periodScoreDTO, 0, len(c.PeriodScores))
		for _, p := range c.PeriodScores {
			periods = append(periods, periodScoreDTO{Value: p.Value, Winner: p.IsWinner})
		}
		competitors = append(competitors, competitorDTO{
			ID:           c.ID,
			DisplayName:  c.DisplayName,
			HomeAway:     homeAway,
			Score:        c.Score,
			Winner:       c.IsWinner,
			PeriodScores: periods,
		})
	}

	broadcasts := item.Broadcasts
	if broadcasts == nil {
		broadcasts = []string{}
	}

	return competitionDTO{
		ID:           item.ID,
		EventID:      item.EventID,
		StartTime:    formatTime(item.StartTime),
		State:        item.Status.State,
		StatusLabel:  item.Status.Label,
		RoundLabel:   item.RoundLabel,
		GroupingName: item.GroupingName,
		Broadcasts:   broadcasts,
		Synthesized:  item.Synthesized,
		Competitors:  competitors,
	}
}

func toOddsDTO(pair odds.Pair) oddsDTO {
	return oddsDTO{Home: pair.Home, Away: pair.Away}
}

func toBoardDTO(item board.Board) boardDTO {
	tournaments := make([]tournamentDTO, 0, len(item.Tournaments))
	for _, t := range item.Tournaments {
		groupings := make([]groupingDTO, 0, len(t.Groupings))
		for _, g := range t.Groupings {
			items := make([]itemDTO, 0, len(g.Items))
			for _, it := range g.Items {
				out := itemDTO{
					EventName:       it.Event.Name,
					Competition:     toCompetitionDTO(it.Competition),
					HomeProbability: it.HomeProbability,
					AwayProbability: it.AwayProbability,
				}
				if it.Odds != nil {
					mapped := toOddsDTO(*it.Odds)
					out.Odds = &mapped
				}
				items = append(items, out)
			}
			groupings = append(groupings, groupingDTO{Key: g.Key, DisplayName: g.DisplayName, Items: items})
		}
		tournaments = append(tournaments, tournamentDTO{
			Key:       t.Key,
			Name:      t.Name,
			Live:      t.HasLive(),
			Groupings: groupings,
		})
	}

	return boardDTO{
		GeneratedAt: formatTime(item.GeneratedAt),
		WindowStart: formatTime(item.WindowStart),
		WindowEnd:   formatTime(item.WindowEnd),
		Tournaments: tournaments,
	}
}
