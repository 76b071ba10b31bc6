package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-server/internal/mines"
)

type memoryGame struct {
	game    mines.Game
	periods []period
}

// Memory keeps accounts and games in process. It has the same method set
// as Queries and is used for STORAGE=memory and in tests.
type Memory struct {
	mu       sync.Mutex
	now      func() time.Time
	accounts map[string]Account
	games    map[int64]*memoryGame
	lastID   int64
}

func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		now:      now,
		accounts: make(map[string]Account),
		games:    make(map[int64]*memoryGame),
	}
}

func (m *Memory) CreateAccount(_ context.Context, email string, passwordHash []byte) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[email]; ok {
		return nil, ErrEmailTaken
	}
	account := Account{
		Email:        email,
		PasswordHash: slices.Clone(passwordHash),
		CreatedAt:    m.now(),
	}
	m.accounts[email] = account
	return &account, nil
}

func (m *Memory) FetchAccount(_ context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (m *Memory) CreateGame(
	_ context.Context, owner string, board *mines.Board, now time.Time,
) (mines.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	g := &memoryGame{game: mines.NewGame(m.lastID, owner, board.Clone(), now)}
	m.games[g.game.ID] = g
	return m.snapshot(g), nil
}

func (m *Memory) FetchGame(_ context.Context, gameID int64) (mines.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[gameID]
	if !ok {
		return mines.Game{}, ErrNotFound
	}
	return m.snapshot(g), nil
}

func (m *Memory) ListGames(_ context.Context, owner string) ([]mines.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	games := make([]mines.Game, 0)
	for _, g := range m.games {
		if g.game.Owner == owner {
			games = append(games, m.snapshot(g))
		}
	}
	slices.SortFunc(games, func(a, b mines.Game) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return games, nil
}

// UpdateGame runs fn under the store lock, so actions on a game never
// interleave.
func (m *Memory) UpdateGame(
	_ context.Context, gameID int64, now time.Time, fn UpdateFunc,
) (mines.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[gameID]
	if !ok {
		return mines.Game{}, ErrNotFound
	}
	current := m.snapshot(g)
	next, err := fn(current)
	if err != nil {
		return mines.Game{}, err
	}
	if next == nil {
		return current, nil
	}

	g.game.Status = next.Status
	g.game.FinishedAt = next.FinishedAt
	g.game.Board = next.Board.Clone()

	open := len(g.periods) > 0 && g.periods[len(g.periods)-1].finishedAt == nil
	switch {
	case next.Status == mines.Playing && !open:
		g.periods = append(g.periods, period{startedAt: now})
	case next.Status != mines.Playing && open:
		g.periods[len(g.periods)-1].finishedAt = &now
	}
	return m.snapshot(g), nil
}

func (m *Memory) GetHighscores(_ context.Context, filter HighscoreFilter) ([]Highscore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	scores := make([]Highscore, 0)
	for _, g := range m.games {
		game := g.game
		if game.Status != mines.Won {
			continue
		}
		if filter.Owner != nil && game.Owner != *filter.Owner {
			continue
		}
		b := game.Board
		if filter.Level != nil &&
			(b.Rows() != filter.Level.Rows || b.Columns() != filter.Level.Columns || b.Mines() != filter.Level.Mines) {
			continue
		}
		var played time.Duration
		for _, p := range g.periods {
			if p.finishedAt != nil {
				played += p.duration(*p.finishedAt)
			}
		}
		scores = append(scores, Highscore{
			GameID:     game.ID,
			Owner:      game.Owner,
			Rows:       b.Rows(),
			Columns:    b.Columns(),
			Mines:      b.Mines(),
			PlayTimeMs: played.Milliseconds(),
		})
	}
	slices.SortFunc(scores, func(a, b Highscore) int {
		if c := cmp.Compare(a.PlayTimeMs, b.PlayTimeMs); c != 0 {
			return c
		}
		return cmp.Compare(a.GameID, b.GameID)
	})
	if filter.Limit > 0 && len(scores) > filter.Limit {
		scores = scores[:filter.Limit]
	}
	return scores, nil
}

func (m *Memory) snapshot(g *memoryGame) mines.Game {
	game := g.game
	now := m.now()
	game.PlayTime = 0
	for _, p := range g.periods {
		game.PlayTime += p.duration(now)
	}
	return game
}
