package tictactoe

import "github.com/rocketscienceinc/tictactoe/internal/entity"

// Evaluate reports the first completed line in entity.WinLines order, a draw
// when the board is full, or no result otherwise.
func Evaluate(board entity.Board) entity.Outcome {
	for _, line := range entity.WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Win(a, line)
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return entity.NoResult()
	}

	return entity.Draw()
}
