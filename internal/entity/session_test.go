package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Record(t *testing.T) {
	t.Run("Counts a win for X", func(t *testing.T) {
		// Given: an empty tally
		score := Score{}

		// When: recording a win for X
		score = score.Record(Win(PlayerX, WinLines[0]))

		// Then: only X is incremented
		assert.Equal(t, Score{X: 1}, score)
	})

	t.Run("Counts a win for O", func(t *testing.T) {
		score := Score{X: 2}.Record(Win(PlayerO, WinLines[6]))

		assert.Equal(t, Score{X: 2, O: 1}, score)
	})

	t.Run("Counts a draw", func(t *testing.T) {
		score := Score{X: 1, O: 1}.Record(Draw())

		assert.Equal(t, Score{X: 1, O: 1, Draws: 1}, score)
		assert.Equal(t, 3, score.Rounds())
	})

	t.Run("Ignores an undecided outcome", func(t *testing.T) {
		score := Score{Draws: 4}.Record(NoResult())

		assert.Equal(t, Score{Draws: 4}, score)
	})
}

func TestSession_StatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when status is finished", func(t *testing.T) {
		// Given: a finished session
		session := Session{Status: StatusFinished}

		// Then: it reports finished and not ongoing
		assert.True(t, session.IsFinished())
		assert.False(t, session.IsOngoing())
	})

	t.Run("IsComputerTurn follows mode, status and turn", func(t *testing.T) {
		// Given: a computer session where O is the computer
		session := Session{
			Status:       StatusOngoing,
			Mode:         ModeComputer,
			HumanMark:    PlayerX,
			ComputerMark: PlayerO,
			Turn:         PlayerO,
		}

		// Then: it is the computer's turn
		assert.True(t, session.IsComputerTurn())

		// When: the round is over
		session.Status = StatusFinished

		// Then: the computer has nothing to play
		assert.False(t, session.IsComputerTurn())

		// When: the session is human versus human
		session.Status = StatusOngoing
		session.Mode = ModeHuman

		// Then: there is no computer turn
		assert.False(t, session.IsComputerTurn())
	})
}

func TestModeAndTheme_IsValid(t *testing.T) {
	assert.True(t, ModeHuman.IsValid())
	assert.True(t, ModeComputer.IsValid())
	assert.False(t, Mode("online").IsValid())

	assert.True(t, ThemeLight.IsValid())
	assert.True(t, ThemeDark.IsValid())
	assert.False(t, Theme("sepia").IsValid())
}
