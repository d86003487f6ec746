package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/minelogic/minesweeper-agent/internal/config"
	"github.com/minelogic/minesweeper-agent/internal/middleware"
	"github.com/minelogic/minesweeper-agent/internal/repository"
)

type AuthHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	auth   *config.Auth
}

func NewAuthHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	auth *config.Auth,
) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		repo:   repository.New(db),
		auth:   auth,
	}
}

var (
	ErrBadAuthBody   = fmt.Errorf("request body must contain url-encoded username and password")
	ErrUsernameTaken = fmt.Errorf("username taken")
	ErrBadLogin      = fmt.Errorf("invalid username or password")
)

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func (h AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if !ok {
		h.auth.Clear(w)
		sendJSONOrLog(w, h.logger, &Status{LoggedIn: false})
		return
	}

	token, err := h.auth.Sign(claims)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to re-sign checked claims", "error", err)
		return
	}
	h.auth.Refresh(w, token)

	sendJSONOrLog(w, h.logger, &Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}

func credentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", ErrBadAuthBody
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		return "", "", ErrBadAuthBody
	}
	return username, password, nil
}

func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	player, err := h.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.logger, wrapError(ErrUsernameTaken))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create player", "error", err)
		return
	}

	h.login(w, player)
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	player, err := h.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, h.logger, wrapError(ErrBadLogin))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch player", "error", err)
		return
	}

	if bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)) != nil {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, h.logger, wrapError(ErrBadLogin))
		return
	}

	h.login(w, player)
}

func (h AuthHandler) login(w http.ResponseWriter, player *repository.Player) {
	token, err := h.auth.Sign(
		config.NewPlayerClaims(player.PlayerId, player.Username),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to sign claims", "error", err)
		return
	}
	if err := h.auth.Refresh(w, token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to set auth cookie", "error", err)
		return
	}
	sendJSONOrLog(w, h.logger, &PlayerInfo{player.PlayerId, player.Username})
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
