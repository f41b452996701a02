package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type MemorySuite struct {
	suite.Suite
	memory *Memory
	ctx    context.Context
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(MemorySuite))
}

func (s *MemorySuite) SetupTest() {
	s.memory = NewMemory()
	s.ctx = context.Background()
}

// Score tests

func (s *MemorySuite) TestGetScoreNotFound() {
	_, err := s.memory.Get(s.ctx, "s")
	s.ErrorIs(err, ErrScoreNotFound)
}

func (s *MemorySuite) TestSaveAndGetScore() {
	s.Require().NoError(s.memory.Save(s.ctx, "s", entity.Score{Draws: 2}))

	score, err := s.memory.Get(s.ctx, "s")
	s.Require().NoError(err)
	s.Equal(entity.Score{Draws: 2}, score)
}

func (s *MemorySuite) TestDeleteScore() {
	s.Require().NoError(s.memory.Save(s.ctx, "s", entity.Score{X: 1}))

	s.Require().NoError(s.memory.Delete(s.ctx, "s"))
	s.ErrorIs(s.memory.Delete(s.ctx, "s"), ErrScoreNotFound)
}

// Preference tests

func (s *MemorySuite) TestGetThemeNotFound() {
	_, err := s.memory.GetTheme(s.ctx, "s")
	s.ErrorIs(err, ErrPreferenceNotFound)
}

func (s *MemorySuite) TestSaveAndGetTheme() {
	s.Require().NoError(s.memory.SaveTheme(s.ctx, "s", entity.ThemeDark))

	theme, err := s.memory.GetTheme(s.ctx, "s")
	s.Require().NoError(err)
	s.Equal(entity.ThemeDark, theme)
}

func (s *MemorySuite) TestConcurrentSessions() {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			id := fmt.Sprintf("s-%d", i)
			_ = s.memory.Save(s.ctx, id, entity.Score{X: i})
			_ = s.memory.SaveTheme(s.ctx, id, entity.ThemeLight)
		}()
	}
	wg.Wait()

	for i := range 16 {
		score, err := s.memory.Get(s.ctx, fmt.Sprintf("s-%d", i))
		s.Require().NoError(err)
		s.Equal(i, score.X)
	}
}
