package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Memory keeps scores and preferences in process. It serves the terminal client.
type Memory struct {
	mu     sync.RWMutex
	scores map[string]entity.Score
	themes map[string]entity.Theme
}

var (
	_ ScoreRepository      = (*Memory)(nil)
	_ PreferenceRepository = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		scores: make(map[string]entity.Score),
		themes: make(map[string]entity.Theme),
	}
}

func (that *Memory) Get(_ context.Context, sessionID string) (entity.Score, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	score, ok := that.scores[sessionID]
	if !ok {
		return entity.Score{}, ErrScoreNotFound
	}

	return score, nil
}

func (that *Memory) Save(_ context.Context, sessionID string, score entity.Score) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores[sessionID] = score

	return nil
}

func (that *Memory) Delete(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.scores[sessionID]; !ok {
		return ErrScoreNotFound
	}
	delete(that.scores, sessionID)

	return nil
}

func (that *Memory) GetTheme(_ context.Context, sessionID string) (entity.Theme, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	theme, ok := that.themes[sessionID]
	if !ok {
		return "", ErrPreferenceNotFound
	}

	return theme, nil
}

func (that *Memory) SaveTheme(_ context.Context, sessionID string, theme entity.Theme) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.themes[sessionID] = theme

	return nil
}
