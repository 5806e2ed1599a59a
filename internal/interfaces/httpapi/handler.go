package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/board"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/league"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/odds"
	"github.com/riskibarqy/scoreboard-aggregator/internal/domain/scoreboard"
	"github.com/riskibarqy/scoreboard-aggregator/internal/platform/logging"
	"github.com/riskibarqy/scoreboard-aggregator/internal/usecase"
)

// BoardReader is the read surface the HTTP layer needs from the aggregation service.
type BoardReader interface {
	ListLeagues(ctx context.Context) []league.Descriptor
	GetScoreboard(ctx context.Context, leagueSlug string) []scoreboard.Event
	GetOdds(ctx context.Context, leagueSlug, competitionID string) *odds.Pair
	BuildBoard(ctx context.Context, now time.Time) board.Board
}

type Handler struct {
	reader    BoardReader
	logger    *logging.Logger
	validator *validator.Validate
	now       func() time.Time
}

func NewHandler(reader BoardReader, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		reader:    reader,
		logger:    logger.Named("handler"),
		validator: validator.New(),
		now:       time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues := h.reader.ListLeagues(ctx)
	items := make([]leagueDTO, 0, len(leagues))
	for _, item := range leagues {
		items = append(items, toLeagueDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, listDTO[leagueDTO]{Items: items})
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	req := scoreboardRequest{LeagueSlug: strings.TrimSpace(r.PathValue("slug"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	events := h.reader.GetScoreboard(ctx, req.LeagueSlug)
	items := make([]eventDTO, 0, len(events))
	for _, item := range events {
		items = append(items, toEventDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, listDTO[eventDTO]{Items: items})
}

func (h *Handler) GetOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOdds")
	defer span.End()

	req := oddsRequest{
		LeagueSlug:    strings.TrimSpace(r.PathValue("slug")),
		CompetitionID: strings.TrimSpace(r.PathValue("competitionID")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pair := h.reader.GetOdds(ctx, req.LeagueSlug, req.CompetitionID)
	if pair == nil {
		writeError(ctx, w, crerr.Mark(crerr.Wrapf(usecase.ErrNotResolvable, "odds for competition %s", req.CompetitionID), usecase.ErrNotFound))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toOddsDTO(*pair))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	req := boardRequest{Now: strings.TrimSpace(r.URL.Query().Get("now"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	now := h.now()
	if req.Now != "" {
		parsed, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: now: %v", usecase.ErrInvalidInput, err))
			return
		}
		now = parsed
	}

	result := h.reader.BuildBoard(ctx, now)
	h.logger.DebugContext(ctx, "board served", "tournaments", len(result.Tournaments))

	writeSuccess(ctx, w, http.StatusOK, toBoardDTO(result))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type scoreboardRequest struct {
	LeagueSlug string `validate:"required,max=64"`
}

type oddsRequest struct {
	LeagueSlug    string `validate:"required,max=64"`
	CompetitionID string `validate:"required,max=128"`
}

type boardRequest struct {
	Now string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
