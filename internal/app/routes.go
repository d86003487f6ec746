package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/minelogic/minesweeper-agent/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	episode := handlers.NewEpisodeHandler(a.logger, a.db, a.ws, createRand())
	auth := handlers.NewAuthHandler(a.logger, a.db, a.auth)

	a.router.HandleFunc("POST /episode", episode.Run)
	a.router.HandleFunc("GET /episode/{id}", episode.Fetch)
	a.router.HandleFunc("GET /episodes", episode.List)
	a.router.HandleFunc("GET /stats", episode.Stats)
	a.router.HandleFunc("/watch", episode.Watch)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)
}
