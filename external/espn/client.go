package espn

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/riskibarqy/scoreboard-aggregator/internal/usecase"
)

const (
	defaultSiteBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	defaultCoreBaseURL = "https://sports.core.api.espn.com/v2"
	directoryPageLimit = 100
	scoreboardDateFmt  = "20060102"
)

type ClientConfig struct {
	Fetcher     Fetcher
	SiteBaseURL string
	CoreBaseURL string
	Logger      *logging.Logger
}

// Client maps the provider's endpoints onto usecase.SportsProvider.
type Client struct {
	fetcher     Fetcher
	siteBaseURL string
	coreBaseURL string
	logger      *logging.Logger
}

var _ usecase.SportsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = NewGateway(GatewayConfig{Logger: logger})
	}

	return &Client{
		fetcher:     fetcher,
		siteBaseURL: normalizeBaseURL(cfg.SiteBaseURL, defaultSiteBaseURL),
		coreBaseURL: normalizeBaseURL(cfg.CoreBaseURL, defaultCoreBaseURL),
		logger:      logger.Named("espn.client"),
	}
}

func (c *Client) LeagueRefs(ctx context.Context, sport string) ([]string, error) {
	sport = strings.TrimSpace(sport)
	if sport == "" {
		return nil, crerr.Wrap(usecase.ErrInvalidInput, "sport is required")
	}

	endpoint := fmt.Sprintf("%s/sports/%s/leagues?limit=%d", c.coreBaseURL, url.PathEscape(sport), directoryPageLimit)
	raw, err := c.fetcher.FetchJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope directoryEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "decode league directory sport=%s", sport), usecase.ErrSchemaMismatch)
	}

	refs := make([]string, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		if ref := strings.TrimSpace(item.Ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (c *Client) League(ctx context.Context, ref string) (usecase.ExternalLeague, error) {
	raw, err := c.fetcher.FetchJSON(ctx, ref)
	if err != nil {
		return usecase.ExternalLeague{}, err
	}

	var payload leaguePayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return usecase.ExternalLeague{}, crerr.Mark(crerr.Wrapf(err, "decode league ref=%s", ref), usecase.ErrSchemaMismatch)
	}

	logo := strings.TrimSpace(payload.Logo)
	if logo == "" && len(payload.Logos) > 0 {
		logo = strings.TrimSpace(payload.Logos[0].Href)
	}

	return usecase.ExternalLeague{
		ID:           payload.ID.String(),
		Name:         firstNonEmpty(payload.Name, payload.DisplayName),
		Abbreviation: firstNonEmpty(payload.Abbreviation, payload.ShortName),
		Slug:         strings.TrimSpace(payload.Slug),
		Logo:         logo,
	}, nil
}

func (c *Client) Scoreboard(ctx context.Context, sport, leagueSlug string, from, to time.Time) ([]usecase.ExternalEvent, error) {
	endpoint := c.scoreboardURL(sport, leagueSlug, from, to)
	raw, err := c.fetcher.FetchJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	payloads, skipped := decodeEventContainer(raw)
	if skipped > 0 {
		c.logger.DebugContext(ctx, "skipped undecodable scoreboard events",
			"sport", sport,
			"league", leagueSlug,
			"skipped", skipped,
		)
	}

	events := make([]usecase.ExternalEvent, 0, len(payloads))
	for _, payload := range payloads {
		events = append(events, mapEvent(payload))
	}
	return events, nil
}

func (c *Client) CompetitionOdds(ctx context.Context, sport, leagueSlug, eventID, competitionID string) ([]usecase.ExternalOddsMarket, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/leagues/%s/events/%s/competitions/%s/odds",
		c.coreBaseURL,
		url.PathEscape(sport),
		url.PathEscape(leagueSlug),
		url.PathEscape(eventID),
		url.PathEscape(competitionID),
	)
	raw, err := c.fetcher.FetchJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope oddsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "decode odds competition_id=%s", competitionID), usecase.ErrSchemaMismatch)
	}
	return mapOddsMarkets(envelope.Items), nil
}

func (c *Client) scoreboardURL(sport, leagueSlug string, from, to time.Time) string {
	endpoint := fmt.Sprintf("%s/%s/%s/scoreboard", c.siteBaseURL, url.PathEscape(sport), url.PathEscape(leagueSlug))
	if from.IsZero() || to.IsZero() {
		return endpoint
	}
	values := url.Values{}
	values.Set("dates", from.UTC().Format(scoreboardDateFmt)+"-"+to.UTC().Format(scoreboardDateFmt))
	return endpoint + "?" + values.Encode()
}

func normalizeBaseURL(raw, fallback string) string {
	value := strings.TrimRight(strings.TrimSpace(raw), "/")
	if value == "" {
		return fallback
	}
	return value
}
