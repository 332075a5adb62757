package scraper

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/panjf2000/ants/v2"

	"stormlightlabs.org/hockey/internal/core"
	"stormlightlabs.org/hockey/internal/nhl"
	"stormlightlabs.org/hockey/internal/stats"
)

// Scraper fans the per-game pipeline out over a bounded worker pool and
// accumulates results. Completed games are cached; a game that fails is
// recorded and skipped by the accessors so one bad feed never aborts a
// batch.
type Scraper struct {
	client  *nhl.Client
	logger  *log.Logger
	workers int

	mu      sync.Mutex
	games   map[core.GameID]*Game
	order   []core.GameID
	failed  map[core.GameID]error
	cancels map[core.GameID]context.CancelFunc
}

// New builds a Scraper over the client with the given worker-pool size.
func New(client *nhl.Client, logger *log.Logger, workers int) *Scraper {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scraper{
		client:  client,
		logger:  logger,
		workers: workers,
		games:   make(map[core.GameID]*Game),
		failed:  make(map[core.GameID]error),
		cancels: make(map[core.GameID]context.CancelFunc),
	}
}

// AddGames scrapes the given games concurrently. Games already scraped are
// skipped; failures are recorded per game and do not stop the batch.
func (s *Scraper) AddGames(ctx context.Context, gameIDs []core.GameID) error {
	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup

	for _, gameID := range gameIDs {
		s.mu.Lock()
		_, done := s.games[gameID]
		s.mu.Unlock()
		if done {
			continue
		}

		gameID := gameID
		wg.Add(1)

		submitErr := pool.Submit(func() {
			defer wg.Done()
			s.scrapeOne(ctx, gameID)
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}

	wg.Wait()
	return ctx.Err()
}

// scrapeOne runs a single game to completion under its own cancelable
// context.
func (s *Scraper) scrapeOne(ctx context.Context, gameID core.GameID) {
	gameCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.cancels[gameID] = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.cancels, gameID)
		s.mu.Unlock()
	}()

	game, err := NewGame(gameCtx, s.client, gameID)
	if err == nil {
		_, err = game.PlayByPlay(gameCtx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("game failed", "game_id", gameID, "err", err)
		s.failed[gameID] = err
		return
	}

	s.games[gameID] = game
	s.order = append(s.order, gameID)
	s.logger.Info("game scraped", "game_id", gameID)
}

// Cancel aborts a single in-flight game, leaving completed games intact.
func (s *Scraper) Cancel(gameID core.GameID) {
	s.mu.Lock()
	cancel, ok := s.cancels[gameID]
	s.mu.Unlock()
	if ok {
		cancel()
	}
}

// Failed returns the games that could not be scraped, with their errors.
func (s *Scraper) Failed() map[core.GameID]error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[core.GameID]error, len(s.failed))
	for id, err := range s.failed {
		out[id] = err
	}
	return out
}

// gamesInOrder snapshots the completed games in scrape order.
func (s *Scraper) gamesInOrder() []*Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Game, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.games[id])
	}
	return out
}

// PlayByPlay concatenates the play-by-play of every completed game.
// Callers group by game_id; no cross-game ordering is promised.
func (s *Scraper) PlayByPlay(ctx context.Context) ([]core.Event, error) {
	var out []core.Event
	for _, game := range s.gamesInOrder() {
		events, err := game.PlayByPlay(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, events...)
	}
	return out, nil
}

// Rosters concatenates the merged rosters of every completed game.
func (s *Scraper) Rosters(ctx context.Context) ([]core.RosterPlayer, error) {
	var out []core.RosterPlayer
	for _, game := range s.gamesInOrder() {
		rosters, err := game.Rosters(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, rosters...)
	}
	return out, nil
}

// Shifts concatenates the shifts of every completed game.
func (s *Scraper) Shifts(ctx context.Context) ([]core.Shift, error) {
	var out []core.Shift
	for _, game := range s.gamesInOrder() {
		shiftList, err := game.Shifts(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, shiftList...)
	}
	return out, nil
}

// Changes concatenates the change events of every completed game.
func (s *Scraper) Changes(ctx context.Context) ([]core.Event, error) {
	var out []core.Event
	for _, game := range s.gamesInOrder() {
		changes, err := game.Changes(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, changes...)
	}
	return out, nil
}

// Stats aggregates the joined individual and on-ice view over every
// completed game. The aggregator is pure over its input and safe to call
// repeatedly with different options.
func (s *Scraper) Stats(ctx context.Context, opts stats.Options) ([]stats.PlayerStats, error) {
	events, err := s.PlayByPlay(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Player(events, opts)
}

// Lines aggregates the line view over every completed game.
func (s *Scraper) Lines(ctx context.Context, position stats.LinePosition, opts stats.Options) ([]stats.LineStats, error) {
	events, err := s.PlayByPlay(ctx)
	if err != nil {
		return nil, err
	}
	if err := stats.Validate(events); err != nil {
		return nil, err
	}
	return stats.Lines(events, position, opts), nil
}

// TeamStats aggregates the team view over every completed game.
func (s *Scraper) TeamStats(ctx context.Context, opts stats.Options) ([]stats.TeamStats, error) {
	events, err := s.PlayByPlay(ctx)
	if err != nil {
		return nil, err
	}
	if err := stats.Validate(events); err != nil {
		return nil, err
	}
	return stats.Team(events, opts), nil
}
