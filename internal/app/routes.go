package app

import (
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-server/internal/handlers"
	"github.com/vancomm/minesweeper-server/internal/service"
)

// lockedRand shares one generator between concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

func createRand() *lockedRand {
	return &lockedRand{rnd: rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))}
}

func (a *App) loadRoutes() {
	games := service.NewGames(a.logger, a.store, createRand(), time.Now)
	accounts := service.NewAccounts(a.logger, a.store, 0)

	auth := handlers.NewAuth(a.logger, accounts, a.jwt)
	game := handlers.NewGameHandler(a.logger, games, a.ws)
	highscores := handlers.NewHighscores(a.logger, a.store)

	a.router.HandleFunc("POST /accounts", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)

	a.router.HandleFunc("GET /games", game.List)
	a.router.HandleFunc("POST /games/create/custom", game.CreateCustom)
	a.router.HandleFunc("POST /games/create/{level}", game.CreateLevel)
	a.router.HandleFunc("GET /games/{id}", game.Fetch)
	a.router.HandleFunc("PUT /games/{id}/reveal/{row}/{column}", game.Reveal)
	a.router.HandleFunc("PUT /games/{id}/flag/{row}/{column}", game.Flag)
	a.router.HandleFunc("PUT /games/{id}/unflag/{row}/{column}", game.Unflag)
	a.router.HandleFunc("PUT /games/{id}/pause", game.Pause)
	a.router.HandleFunc("GET /games/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("GET /highscores", highscores.List)
}
