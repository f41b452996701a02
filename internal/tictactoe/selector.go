package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg/random"
)

const (
	RuleWin      = "win"
	RuleBlock    = "block"
	RuleCenter   = "center"
	RuleCorner   = "corner"
	RuleSide     = "side"
	RuleFallback = "fallback"
)

// Decision is a chosen cell together with the rule that produced it.
type Decision struct {
	Cell int    `json:"cell"`
	Rule string `json:"rule"`
}

// rule returns a cell when it applies. Each rule is independent of the others.
type rule struct {
	name  string
	apply func(board entity.Board, self, opponent entity.Mark, rnd random.Random) (int, bool)
}

// rules are tried in order; the first that applies wins.
var rules = []rule{
	{name: RuleWin, apply: winNow},
	{name: RuleBlock, apply: block},
	{name: RuleCenter, apply: center},
	{name: RuleCorner, apply: corner},
	{name: RuleSide, apply: side},
	{name: RuleFallback, apply: fallback},
}

// MoveSelector is the computer opponent: win, block, center, corner, side, then any cell.
type MoveSelector struct {
	rnd random.Random
}

func NewMoveSelector(rnd random.Random) *MoveSelector {
	if rnd == nil {
		rnd = random.New()
	}

	return &MoveSelector{rnd: rnd}
}

// SelectMove returns the cell to play, or false when the board has no empty cell.
func (that *MoveSelector) SelectMove(board entity.Board, self, opponent entity.Mark) (int, bool) {
	decision, ok := that.Decide(board, self, opponent)
	return decision.Cell, ok
}

func (that *MoveSelector) Decide(board entity.Board, self, opponent entity.Mark) (Decision, bool) {
	if board.IsFull() {
		return Decision{}, false
	}

	for _, r := range rules {
		if cell, ok := r.apply(board, self, opponent, that.rnd); ok {
			return Decision{Cell: cell, Rule: r.name}, true
		}
	}

	return Decision{}, false
}

func winNow(board entity.Board, self, _ entity.Mark, _ random.Random) (int, bool) {
	return completingCell(board, self)
}

func block(board entity.Board, _, opponent entity.Mark, _ random.Random) (int, bool) {
	return completingCell(board, opponent)
}

// completingCell finds the lowest empty cell where mark would win outright.
func completingCell(board entity.Board, mark entity.Mark) (int, bool) {
	for _, cell := range board.EmptyCells() {
		if Evaluate(board.With(cell, mark)).WonBy(mark) {
			return cell, true
		}
	}

	return 0, false
}

func center(board entity.Board, _, _ entity.Mark, _ random.Random) (int, bool) {
	return entity.Center, board.IsEmptyAt(entity.Center)
}

func corner(board entity.Board, _, _ entity.Mark, rnd random.Random) (int, bool) {
	return pickEmpty(board, entity.Corners[:], rnd)
}

func side(board entity.Board, _, _ entity.Mark, rnd random.Random) (int, bool) {
	return pickEmpty(board, entity.Sides[:], rnd)
}

func fallback(board entity.Board, _, _ entity.Mark, _ random.Random) (int, bool) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return 0, false
	}

	return cells[0], true
}

// pickEmpty draws uniformly among the empty cells of pool.
func pickEmpty(board entity.Board, pool []int, rnd random.Random) (int, bool) {
	candidates := make([]int, 0, len(pool))
	for _, cell := range pool {
		if board.IsEmptyAt(cell) {
			candidates = append(candidates, cell)
		}
	}

	if len(candidates) == 0 {
		return 0, false
	}

	return candidates[rnd.Intn(len(candidates))], true
}
