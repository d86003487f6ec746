package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minelogic/minesweeper-agent/internal/board"
	"github.com/minelogic/minesweeper-agent/internal/config"
	"github.com/minelogic/minesweeper-agent/internal/middleware"
	"github.com/minelogic/minesweeper-agent/internal/player"
	"github.com/minelogic/minesweeper-agent/internal/repository"
)

type EpisodeHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewEpisodeHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *EpisodeHandler {
	return &EpisodeHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

// Run plays one full game server-side and stores the finished episode.
func (h EpisodeHandler) Run(w http.ResponseWriter, r *http.Request) {
	params, err := ParseBoardParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	b, err := board.New(params, h.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	p, err := player.New(b, h.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create player", "error", err)
		return
	}

	outcome, err := p.Play()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("episode aborted", "error", err)
		return
	}

	createParams := repository.CreateEpisodeParams{
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
		Outcome:   outcome,
		Moves:     p.Moves(),
	}
	claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		createParams.PlayerId = &claims.PlayerId
	}

	episode, err := h.repo.CreateEpisode(r.Context(), createParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to store episode", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewEpisodeDTO(episode, p.Moves()))
}

func (h EpisodeHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	publicId, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	episode, err := h.repo.FetchEpisode(r.Context(), publicId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch episode from db", "error", err)
		return
	}

	moves, err := episode.DecodeMoves()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid episode.moves", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewEpisodeDTO(episode, moves))
}

func (h EpisodeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 100 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	episodes, err := h.repo.ListEpisodes(r.Context(), limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list episodes", "error", err)
		return
	}

	dtos := make([]*EpisodeDTO, 0, len(episodes))
	for i := range episodes {
		dtos = append(dtos, NewEpisodeDTO(&episodes[i], nil))
	}
	sendJSONOrLog(w, h.logger, dtos)
}

func (h EpisodeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetPlayerStats(r.Context(), 20)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to aggregate player stats", "error", err)
		return
	}
	sendJSONOrLog(w, h.logger, stats)
}
