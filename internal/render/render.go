// Package render draws a session for a terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	reset     = "\x1b[0m"
	rowDivide = "---+---+---"
)

type palette struct {
	x, o, empty, line string
}

var palettes = map[entity.Theme]palette{
	entity.ThemeLight: {x: "\x1b[34m", o: "\x1b[31m", empty: "\x1b[90m", line: "\x1b[1;30;42m"},
	entity.ThemeDark:  {x: "\x1b[96m", o: "\x1b[93m", empty: "\x1b[37m", line: "\x1b[1;97;45m"},
}

func paletteFor(theme entity.Theme) palette {
	if p, ok := palettes[theme]; ok {
		return p
	}

	return palettes[entity.ThemeLight]
}

// Board draws the 3x3 grid. Empty cells show their 1-based number and the
// cells of a winning line are highlighted.
func Board(board entity.Board, outcome entity.Outcome, theme entity.Theme) string {
	p := paletteFor(theme)

	var winning [entity.CellCount]bool
	if outcome.IsWin() && outcome.Line != nil {
		for _, cell := range outcome.Line {
			winning[cell] = true
		}
	}

	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString(rowDivide)
			sb.WriteByte('\n')
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}

			cell := row*3 + col
			sb.WriteString(drawCell(p, cell, board[cell], winning[cell]))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func drawCell(p palette, cell int, mark entity.Mark, highlight bool) string {
	var color, symbol string
	switch mark {
	case entity.PlayerX:
		color, symbol = p.x, string(mark)
	case entity.PlayerO:
		color, symbol = p.o, string(mark)
	default:
		color, symbol = p.empty, strconv.Itoa(cell+1)
	}

	if highlight {
		color = p.line
	}

	return color + " " + symbol + " " + reset
}

// Status describes whose turn it is or how the round ended.
func Status(session entity.Session) string {
	switch {
	case session.Outcome.IsWin():
		if session.IsWithComputer() && session.Outcome.Winner == session.ComputerMark {
			return "Computer wins!"
		}
		return fmt.Sprintf("%s wins!", session.Outcome.Winner)
	case session.Outcome.IsDraw():
		return "Draw!"
	case session.AwaitComputer:
		return "Computer is thinking..."
	default:
		return fmt.Sprintf("%s to move", session.Turn)
	}
}

func Score(score entity.Score) string {
	return fmt.Sprintf("X %d  O %d  Draws %d", score.X, score.O, score.Draws)
}

// Session writes the round header, board, status and tally.
func Session(w io.Writer, session entity.Session) error {
	_, err := fmt.Fprintf(w, "Round %d (%s)\n%s%s\n%s\n",
		session.Round,
		session.Mode,
		Board(session.Board, session.Outcome, session.Theme),
		Status(session),
		Score(session.Score),
	)
	if err != nil {
		return fmt.Errorf("failed to render session: %w", err)
	}

	return nil
}
