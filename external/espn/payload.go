package espn

import (
	"bytes"
	"encoding/json"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/scoreboard-aggregator/internal/usecase"
)

type directoryEnvelope struct {
	Items []struct {
		Ref string `json:"$ref"`
	} `json:"items"`
}

type leaguePayload struct {
	ID           flexString `json:"id"`
	Name         string     `json:"name"`
	DisplayName  string     `json:"displayName"`
	Abbreviation string     `json:"abbreviation"`
	ShortName    string     `json:"shortName"`
	Slug         string     `json:"slug"`
	Logo         string     `json:"logo"`
	Logos        []struct {
		Href string `json:"href"`
	} `json:"logos"`
}

type scoreboardEnvelope struct {
	Events []json.RawMessage `json:"events"`
}

type namedRef struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

func (n *namedRef) label() string {
	if n == nil {
		return ""
	}
	return firstNonEmpty(n.DisplayName, n.Name, n.Abbreviation)
}

type eventPayload struct {
	ID           flexString           `json:"id"`
	Date         string               `json:"date"`
	Name         string               `json:"name"`
	ShortName    string               `json:"shortName"`
	Tournament   *namedRef            `json:"tournament"`
	League       *namedRef            `json:"league"`
	Status       *statusPayload       `json:"status"`
	Competitors  []competitorPayload  `json:"competitors"`
	Broadcasts   []broadcastPayload   `json:"broadcasts"`
	Odds         []embeddedOdds       `json:"odds"`
	Groupings    []groupingPayload    `json:"groupings"`
	Competitions []competitionPayload `json:"competitions"`
}

type groupingPayload struct {
	Grouping struct {
		ID          flexString `json:"id"`
		Slug        string     `json:"slug"`
		DisplayName string     `json:"displayName"`
	} `json:"grouping"`
	Broadcasts   []broadcastPayload   `json:"broadcasts"`
	Competitions []competitionPayload `json:"competitions"`
}

type competitionPayload struct {
	ID            flexString            `json:"id"`
	Date          string                `json:"date"`
	StartDate     string                `json:"startDate"`
	Status        *statusPayload        `json:"status"`
	Competitors   []competitorPayload   `json:"competitors"`
	Broadcasts    []broadcastPayload    `json:"broadcasts"`
	GeoBroadcasts []geoBroadcastPayload `json:"geoBroadcasts"`
	Odds          []embeddedOdds        `json:"odds"`
	Round         *namedRef             `json:"round"`
	Notes         []struct {
		Headline string `json:"headline"`
	} `json:"notes"`
}

type statusPayload struct {
	Type struct {
		State       string `json:"state"`
		Detail      string `json:"detail"`
		ShortDetail string `json:"shortDetail"`
		Description string `json:"description"`
	} `json:"type"`
}

type competitorPayload struct {
	ID          flexString `json:"id"`
	HomeAway    string     `json:"homeAway"`
	Winner      flexBool   `json:"winner"`
	Score       flexString `json:"score"`
	DisplayName string     `json:"displayName"`
	Team        *namedRef  `json:"team"`
	Athlete     *namedRef  `json:"athlete"`
	Roster      *namedRef  `json:"roster"`
	Linescores  []struct {
		Value  flexNumber `json:"value"`
		Winner flexBool   `json:"winner"`
	} `json:"linescores"`
}

type broadcastPayload struct {
	Market string   `json:"market"`
	Names  []string `json:"names"`
}

type geoBroadcastPayload struct {
	Media struct {
		ShortName string `json:"shortName"`
	} `json:"media"`
}

type embeddedOdds struct {
	Moneyline *struct {
		Home *moneylineSide `json:"home"`
		Away *moneylineSide `json:"away"`
	} `json:"moneyline"`
}

type moneylineSide struct {
	Open *struct {
		Odds flexNumber `json:"odds"`
	} `json:"open"`
}

func (s *moneylineSide) openPrice() *float64 {
	if s == nil || s.Open == nil {
		return nil
	}
	return s.Open.Odds.Ptr()
}

type oddsEnvelope struct {
	Items []oddsMarketPayload `json:"items"`
}

type oddsMarketPayload struct {
	Provider     *namedRef     `json:"provider"`
	HomeTeamOdds *teamOddsSide `json:"homeTeamOdds"`
	AwayTeamOdds *teamOddsSide `json:"awayTeamOdds"`
}

type teamOddsSide struct {
	MoneyLine flexNumber `json:"moneyLine"`
	Current   *struct {
		MoneyLine *struct {
			American flexNumber `json:"american"`
		} `json:"moneyLine"`
	} `json:"current"`
}

// american prefers current.moneyLine.american and falls back to the flat moneyLine field.
func (s *teamOddsSide) american() *float64 {
	if s == nil {
		return nil
	}
	if s.Current != nil && s.Current.MoneyLine != nil {
		if v := s.Current.MoneyLine.American.Ptr(); v != nil {
			return v
		}
	}
	return s.MoneyLine.Ptr()
}

// decodeEventContainer accepts a bare array of events or an object with an events field.
// Any other shape yields no events; individual events that fail to decode are skipped.
func decodeEventContainer(raw []byte) ([]eventPayload, int) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, 0
	}

	var items []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return nil, 0
		}
	case '{':
		var envelope scoreboardEnvelope
		if err := sonic.Unmarshal(trimmed, &envelope); err != nil {
			return nil, 0
		}
		items = envelope.Events
	default:
		return nil, 0
	}

	out := make([]eventPayload, 0, len(items))
	skipped := 0
	for _, item := range items {
		var event eventPayload
		if err := sonic.Unmarshal(item, &event); err != nil {
			skipped++
			continue
		}
		out = append(out, event)
	}
	return out, skipped
}

func mapEvent(src eventPayload) usecase.ExternalEvent {
	out := usecase.ExternalEvent{
		ID:             src.ID.String(),
		Date:           strings.TrimSpace(src.Date),
		Name:           strings.TrimSpace(src.Name),
		ShortName:      strings.TrimSpace(src.ShortName),
		TournamentName: firstNonEmpty(src.Tournament.label(), src.League.label()),
		Status:         mapStatus(src.Status),
		Competitors:    mapCompetitors(src.Competitors),
		Broadcasts:     broadcastNames(src.Broadcasts, nil),
		Moneyline:      mapMoneyline(src.Odds),
	}

	if len(src.Groupings) > 0 {
		out.Groupings = make([]usecase.ExternalGrouping, 0, len(src.Groupings))
		for _, grouping := range src.Groupings {
			out.Groupings = append(out.Groupings, usecase.ExternalGrouping{
				ID:           grouping.Grouping.ID.String(),
				Slug:         strings.TrimSpace(grouping.Grouping.Slug),
				DisplayName:  strings.TrimSpace(grouping.Grouping.DisplayName),
				Broadcasts:   broadcastNames(grouping.Broadcasts, nil),
				Competitions: mapCompetitions(grouping.Competitions),
			})
		}
	}
	out.Competitions = mapCompetitions(src.Competitions)

	return out
}

func mapCompetitions(items []competitionPayload) []usecase.ExternalCompetition {
	if len(items) == 0 {
		return nil
	}
	out := make([]usecase.ExternalCompetition, 0, len(items))
	for _, item := range items {
		competition := usecase.ExternalCompetition{
			ID:          item.ID.String(),
			Date:        firstNonEmpty(item.Date, item.StartDate),
			Competitors: mapCompetitors(item.Competitors),
			Broadcasts:  broadcastNames(item.Broadcasts, item.GeoBroadcasts),
			Moneyline:   mapMoneyline(item.Odds),
		}
		if item.Status != nil {
			status := mapStatus(item.Status)
			competition.Status = &status
		}
		competition.RoundLabel = item.Round.label()
		if competition.RoundLabel == "" && len(item.Notes) > 0 {
			competition.RoundLabel = strings.TrimSpace(item.Notes[0].Headline)
		}
		out = append(out, competition)
	}
	return out
}

func mapStatus(src *statusPayload) usecase.ExternalStatus {
	if src == nil {
		return usecase.ExternalStatus{}
	}
	return usecase.ExternalStatus{
		State:       strings.TrimSpace(src.Type.State),
		Detail:      strings.TrimSpace(src.Type.Detail),
		ShortDetail: strings.TrimSpace(src.Type.ShortDetail),
		Description: strings.TrimSpace(src.Type.Description),
	}
}

func mapCompetitors(items []competitorPayload) []usecase.ExternalCompetitor {
	if len(items) == 0 {
		return nil
	}
	out := make([]usecase.ExternalCompetitor, 0, len(items))
	for _, item := range items {
		competitor := usecase.ExternalCompetitor{
			ID:          item.ID.String(),
			HomeAway:    strings.TrimSpace(item.HomeAway),
			DisplayName: firstNonEmpty(item.Team.label(), item.Athlete.label(), item.Roster.label(), item.DisplayName),
			Score:       item.Score.String(),
			Winner:      bool(item.Winner),
		}
		for _, line := range item.Linescores {
			if !line.Value.Valid {
				continue
			}
			competitor.Linescores = append(competitor.Linescores, usecase.ExternalLinescore{
				Value:  line.Value.Value,
				Winner: bool(line.Winner),
			})
		}
		out = append(out, competitor)
	}
	return out
}

func mapMoneyline(items []embeddedOdds) usecase.ExternalMoneyline {
	if len(items) == 0 || items[0].Moneyline == nil {
		return usecase.ExternalMoneyline{}
	}
	line := items[0].Moneyline
	return usecase.ExternalMoneyline{
		HomeOpen: line.Home.openPrice(),
		AwayOpen: line.Away.openPrice(),
	}
}

func broadcastNames(broadcasts []broadcastPayload, geo []geoBroadcastPayload) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(broadcasts))
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, item := range broadcasts {
		for _, name := range item.Names {
			add(name)
		}
	}
	if len(out) == 0 {
		for _, item := range geo {
			add(item.Media.ShortName)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mapOddsMarkets(items []oddsMarketPayload) []usecase.ExternalOddsMarket {
	out := make([]usecase.ExternalOddsMarket, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ExternalOddsMarket{
			Provider: item.Provider.label(),
			Home:     item.HomeTeamOdds.american(),
			Away:     item.AwayTeamOdds.american(),
		})
	}
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
