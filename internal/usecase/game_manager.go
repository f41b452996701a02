package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg"
	"github.com/rocketscienceinc/tictactoe/internal/pkg/clock"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const (
	// DefaultComputerDelay paces the computer's reply so it reads as a turn.
	DefaultComputerDelay = 400 * time.Millisecond

	saveTimeout = 5 * time.Second
)

type scoreRepo interface {
	Get(ctx context.Context, sessionID string) (entity.Score, error)
	Save(ctx context.Context, sessionID string, score entity.Score) error
	Delete(ctx context.Context, sessionID string) error
}

type preferenceRepo interface {
	GetTheme(ctx context.Context, sessionID string) (entity.Theme, error)
	SaveTheme(ctx context.Context, sessionID string, theme entity.Theme) error
}

type moveSelector interface {
	Decide(board entity.Board, self, opponent entity.Mark) (tictactoe.Decision, bool)
}

type GameManager struct {
	logger *slog.Logger

	scoreRepo      scoreRepo
	preferenceRepo preferenceRepo
	selector       moveSelector

	clock         clock.Clock
	computerDelay time.Duration
	sessionTTL    time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// sessionState serialises placements for one session. generation changes
// whenever the board is replaced so a stale computer move can detect it;
// activity does the same for the idle timer.
type sessionState struct {
	mu sync.Mutex

	snapshot    entity.Session
	pending     clock.Timer
	generation  uint64
	idle        clock.Timer
	activity    uint64
	closed      bool
	subscribers map[chan entity.Session]struct{}
}

func NewGameManager(
	logger *slog.Logger,
	scoreRepo scoreRepo,
	preferenceRepo preferenceRepo,
	selector moveSelector,
	clk clock.Clock,
	computerDelay time.Duration,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		scoreRepo:      scoreRepo,
		preferenceRepo: preferenceRepo,
		selector:       selector,

		clock:         clk,
		computerDelay: computerDelay,

		sessions: make(map[string]*sessionState),
	}
}

// WithSessionTTL makes sessions without activity for ttl end on their own.
// A zero ttl keeps them until EndSession.
func (that *GameManager) WithSessionTTL(ttl time.Duration) *GameManager {
	that.sessionTTL = ttl

	return that
}

// StartSession resumes a known session or opens a new one with the stored tally and theme.
func (that *GameManager) StartSession(ctx context.Context, id string) (entity.Session, error) {
	if id != "" {
		if state, ok := that.lookup(id); ok {
			if session, err := that.resume(state); err == nil {
				return session, nil
			}
		}
	}

	if id == "" {
		id = pkg.GenerateSessionID()
	}

	log := that.logger.With("method", "StartSession", "session", id)

	score, err := that.loadScore(ctx, id)
	if err != nil {
		return entity.Session{}, fmt.Errorf("failed to load score: %w", err)
	}

	theme, err := that.loadTheme(ctx, id)
	if err != nil {
		return entity.Session{}, fmt.Errorf("failed to load theme: %w", err)
	}

	session := tictactoe.NewRound(entity.Session{
		ID:    id,
		Mode:  entity.ModeHuman,
		Score: score,
		Theme: theme,
	})

	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.sessions[id]; ok {
		return that.resume(existing)
	}

	state := &sessionState{
		snapshot:    session,
		subscribers: make(map[chan entity.Session]struct{}),
	}
	that.sessions[id] = state

	state.mu.Lock()
	that.touch(state)
	state.mu.Unlock()

	log.Info("session started", "rounds", score.Rounds())

	return session, nil
}

func (that *GameManager) GetSession(_ context.Context, id string) (entity.Session, error) {
	state, err := that.getState(id)
	if err != nil {
		return entity.Session{}, err
	}

	return that.resume(state)
}

// MakeTurn places the current mark on cell for the human whose turn it is.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (entity.Session, error) {
	state, err := that.getState(id)
	if err != nil {
		return entity.Session{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if err = that.active(state); err != nil {
		return entity.Session{}, err
	}

	if state.snapshot.IsComputerTurn() {
		return entity.Session{}, apperror.ErrNotYourTurn
	}

	next, err := tictactoe.MakeTurn(state.snapshot, state.snapshot.Turn, cell)
	if err != nil {
		return entity.Session{}, fmt.Errorf("failed make turn: %w", err)
	}

	return that.commit(ctx, state, next), nil
}

// NewRound discards the board, keeping mode, theme and tally.
func (that *GameManager) NewRound(_ context.Context, id string) (entity.Session, error) {
	state, err := that.getState(id)
	if err != nil {
		return entity.Session{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if err = that.active(state); err != nil {
		return entity.Session{}, err
	}

	state.cancelPending()
	state.snapshot = tictactoe.NewRound(state.snapshot)
	state.publish()

	that.logger.Debug("new round", "session", id, "round", state.snapshot.Round)

	return state.snapshot, nil
}

// SetMode switches between two humans and human versus computer, starting a new round.
func (that *GameManager) SetMode(_ context.Context, id string, mode entity.Mode) (entity.Session, error) {
	if !mode.IsValid() {
		return entity.Session{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	state, err := that.getState(id)
	if err != nil {
		return entity.Session{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if err = that.active(state); err != nil {
		return entity.Session{}, err
	}

	state.cancelPending()

	session := state.snapshot
	session.Mode = mode
	session.HumanMark, session.ComputerMark = entity.EmptyCell, entity.EmptyCell
	if mode == entity.ModeComputer {
		session.HumanMark, session.ComputerMark = entity.PlayerX, entity.PlayerO
	}

	state.snapshot = tictactoe.NewRound(session)
	state.publish()

	that.logger.Info("mode changed", "session", id, "mode", mode)

	return state.snapshot, nil
}

func (that *GameManager) SetTheme(ctx context.Context, id string, theme entity.Theme) (entity.Session, error) {
	if !theme.IsValid() {
		return entity.Session{}, fmt.Errorf("%w: %q", apperror.ErrInvalidTheme, theme)
	}

	state, err := that.getState(id)
	if err != nil {
		return entity.Session{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if err = that.active(state); err != nil {
		return entity.Session{}, err
	}

	if err = that.preferenceRepo.SaveTheme(ctx, id, theme); err != nil {
		return entity.Session{}, fmt.Errorf("failed to save theme: %w", err)
	}

	state.snapshot.Theme = theme
	state.publish()

	return state.snapshot, nil
}

func (that *GameManager) ResetScore(ctx context.Context, id string) (entity.Session, error) {
	state, err := that.getState(id)
	if err != nil {
		return entity.Session{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if err = that.active(state); err != nil {
		return entity.Session{}, err
	}

	if err = that.scoreRepo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrScoreNotFound) {
		return entity.Session{}, fmt.Errorf("failed to reset score: %w", err)
	}

	state.snapshot.Score = entity.Score{}
	state.publish()

	return state.snapshot, nil
}

// EndSession cancels any pending computer move and forgets the session.
func (that *GameManager) EndSession(id string) error {
	that.mu.Lock()
	state, ok := that.sessions[id]
	delete(that.sessions, id)
	that.mu.Unlock()

	if !ok {
		return apperror.ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	state.close()

	that.logger.Info("session ended", "session", id)

	return nil
}

// evictIdle ends the session unless it saw activity after the timer was armed.
func (that *GameManager) evictIdle(id string, state *sessionState, activity uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.closed || state.activity != activity || that.sessions[id] != state {
		return
	}

	delete(that.sessions, id)
	state.close()

	that.logger.Info("idle session evicted", "session", id, "ttl", that.sessionTTL)
}

// Subscribe streams snapshots after every change. A slow reader only ever
// misses intermediate snapshots, never the latest one.
func (that *GameManager) Subscribe(id string) (<-chan entity.Session, func(), error) {
	state, err := that.getState(id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan entity.Session, 1)

	state.mu.Lock()
	defer state.mu.Unlock()

	if err = that.active(state); err != nil {
		return nil, nil, err
	}
	state.subscribers[ch] = struct{}{}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			state.mu.Lock()
			defer state.mu.Unlock()

			if _, ok := state.subscribers[ch]; ok {
				delete(state.subscribers, ch)
				close(ch)
			}
		})
	}

	return ch, unsubscribe, nil
}

// commit stores next, persists a decided outcome and schedules the computer when it is due.
func (that *GameManager) commit(ctx context.Context, state *sessionState, next entity.Session) entity.Session {
	log := that.logger.With("method", "commit", "session", next.ID)

	next.AwaitComputer = false

	if next.Outcome.IsDecided() {
		if err := that.scoreRepo.Save(ctx, next.ID, next.Score); err != nil {
			log.Error("failed to save score", "error", err)
		}

		log.Info("round finished", "result", next.Outcome.Result, "winner", next.Outcome.Winner)
	}

	state.snapshot = next

	if next.IsComputerTurn() {
		that.scheduleComputerTurn(state)
	}

	state.publish()

	return state.snapshot
}

func (that *GameManager) scheduleComputerTurn(state *sessionState) {
	generation := state.generation

	state.snapshot.AwaitComputer = true
	state.pending = that.clock.AfterFunc(that.computerDelay, func() {
		that.playComputerTurn(state, generation)
	})
}

func (that *GameManager) playComputerTurn(state *sessionState, generation uint64) {
	state.mu.Lock()
	defer state.mu.Unlock()

	log := that.logger.With("method", "playComputerTurn", "session", state.snapshot.ID)

	if state.closed || state.generation != generation || !state.snapshot.IsComputerTurn() {
		log.Debug("stale computer turn skipped")
		return
	}
	state.pending = nil

	session := state.snapshot

	decision, ok := that.selector.Decide(session.Board, session.ComputerMark, session.HumanMark)
	if !ok {
		log.Error("computer has no move", "error", apperror.ErrNoAvailableMoves)
		state.snapshot.AwaitComputer = false
		return
	}

	next, err := tictactoe.MakeTurn(session, session.ComputerMark, decision.Cell)
	if err != nil {
		log.Error("computer failed to make turn", "error", err)
		state.snapshot.AwaitComputer = false
		return
	}

	log.Debug("computer moved", "cell", decision.Cell, "rule", decision.Rule)

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	that.commit(ctx, state, next)
}

func (that *GameManager) loadScore(ctx context.Context, id string) (entity.Score, error) {
	score, err := that.scoreRepo.Get(ctx, id)
	if errors.Is(err, repository.ErrScoreNotFound) {
		return entity.Score{}, nil
	}

	return score, err
}

func (that *GameManager) loadTheme(ctx context.Context, id string) (entity.Theme, error) {
	theme, err := that.preferenceRepo.GetTheme(ctx, id)
	if errors.Is(err, repository.ErrPreferenceNotFound) || (err == nil && !theme.IsValid()) {
		return entity.ThemeLight, nil
	}

	return theme, err
}

// resume returns the snapshot of a known session and counts it as activity.
func (that *GameManager) resume(state *sessionState) (entity.Session, error) {
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := that.active(state); err != nil {
		return entity.Session{}, err
	}

	return state.snapshot, nil
}

// active rejects a session that EndSession closed after it was looked up,
// otherwise it restarts the idle timer. Callers hold state.mu.
func (that *GameManager) active(state *sessionState) error {
	if state.closed {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, state.snapshot.ID)
	}

	that.touch(state)

	return nil
}

// touch rearms the idle timer. Callers hold state.mu.
func (that *GameManager) touch(state *sessionState) {
	if that.sessionTTL <= 0 {
		return
	}

	if state.idle != nil {
		state.idle.Stop()
	}

	state.activity++
	id, activity := state.snapshot.ID, state.activity
	state.idle = that.clock.AfterFunc(that.sessionTTL, func() {
		that.evictIdle(id, state, activity)
	})
}

func (that *GameManager) lookup(id string) (*sessionState, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state, ok := that.sessions[id]
	return state, ok
}

func (that *GameManager) getState(id string) (*sessionState, error) {
	state, ok := that.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return state, nil
}

// close stops both timers and releases every subscriber. Callers hold mu.
func (that *sessionState) close() {
	that.cancelPending()
	if that.idle != nil {
		that.idle.Stop()
		that.idle = nil
	}

	that.closed = true
	for ch := range that.subscribers {
		delete(that.subscribers, ch)
		close(ch)
	}
}

// cancelPending stops the scheduled computer move, if any.
func (that *sessionState) cancelPending() {
	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}

	that.generation++
	that.snapshot.AwaitComputer = false
}

func (that *sessionState) publish() {
	for ch := range that.subscribers {
		select {
		case ch <- that.snapshot:
			continue
		default:
		}

		// replace the unread snapshot with the latest one
		select {
		case <-ch:
		default:
		}

		select {
		case ch <- that.snapshot:
		default:
		}
	}
}
