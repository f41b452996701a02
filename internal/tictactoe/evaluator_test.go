package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestEvaluate(t *testing.T) {
	t.Run("Empty board has no result", func(t *testing.T) {
		// Given: an empty board
		board := entity.NewBoard()

		// When: evaluating it
		outcome := Evaluate(board)

		// Then: the game continues
		assert.Equal(t, entity.NoResult(), outcome)
		assert.False(t, outcome.IsDecided())
	})

	t.Run("Partial board without a line has no result", func(t *testing.T) {
		// Given: a board where nobody has three in a row
		board := entity.Board{
			x, o, e,
			e, x, e,
			e, e, o,
		}

		// When: evaluating it
		outcome := Evaluate(board)

		// Then: the game continues
		assert.Equal(t, entity.ResultNone, outcome.Result)
		assert.Nil(t, outcome.Line)
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a filled board with no winner
		board := entity.Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		// When: evaluating it
		outcome := Evaluate(board)

		// Then: the round is a draw
		assert.Equal(t, entity.Draw(), outcome)
	})

	t.Run("Full board with a line is a win, not a draw", func(t *testing.T) {
		// Given: the last placement both fills the board and completes a diagonal
		board := entity.Board{
			x, o, x,
			o, x, o,
			o, x, x,
		}

		// When: evaluating it
		outcome := Evaluate(board)

		// Then: the win takes precedence
		assert.Equal(t, entity.Win(x, entity.Line{0, 4, 8}), outcome)
	})

	t.Run("First line in enumeration order wins ties", func(t *testing.T) {
		// Given: the top row is all X and the middle row is all O
		board := entity.Board{
			x, x, x,
			o, o, o,
			e, e, e,
		}

		// When: evaluating it
		outcome := Evaluate(board)

		// Then: the top row is reported
		assert.Equal(t, entity.Win(x, entity.Line{0, 1, 2}), outcome)
	})

	t.Run("Column checked before diagonal", func(t *testing.T) {
		// Given: X completes column 0 and the anti-diagonal at once
		board := entity.Board{
			x, o, x,
			x, x, o,
			x, o, o,
		}

		// When: evaluating it
		outcome := Evaluate(board)

		// Then: the column, earlier in the table, is reported
		assert.Equal(t, entity.Win(x, entity.Line{0, 3, 6}), outcome)
	})

	t.Run("Symbols are opaque", func(t *testing.T) {
		// Given: a board using marks other than X and O
		a, b := entity.Mark("cat"), entity.Mark("dog")
		board := entity.Board{
			b, a, e,
			e, a, b,
			e, a, e,
		}

		// When: evaluating it
		outcome := Evaluate(board)

		// Then: the middle column wins for the first mark
		assert.Equal(t, entity.Win(a, entity.Line{1, 4, 7}), outcome)
	})

	t.Run("Repeated evaluation is identical", func(t *testing.T) {
		// Given: any board
		board := entity.Board{
			o, e, x,
			e, o, x,
			e, e, o,
		}

		// When: evaluating it twice
		first := Evaluate(board)
		second := Evaluate(board)

		// Then: both results are equal
		require.Equal(t, first, second)
		assert.Equal(t, entity.Win(o, entity.Line{0, 4, 8}), first)
	})
}

func TestEvaluate_EveryLine(t *testing.T) {
	for _, line := range entity.WinLines {
		// Given: a board holding only this line
		board := entity.NewBoard()
		for _, cell := range line {
			board[cell] = o
		}

		// When: evaluating it
		outcome := Evaluate(board)

		// Then: exactly this line is reported
		require.True(t, outcome.IsWin(), "line %v", line)
		assert.Equal(t, o, outcome.Winner)
		assert.Equal(t, line, *outcome.Line)
	}
}
