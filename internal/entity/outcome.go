package entity

type Result string

const (
	ResultNone Result = ""
	ResultWin  Result = "win"
	ResultDraw Result = "draw"
)

// Outcome is the result of evaluating a board. Winner and Line are set only for a win.
type Outcome struct {
	Result Result `json:"result"`
	Winner Mark   `json:"winner,omitempty"`
	Line   *Line  `json:"line,omitempty"`
}

func NoResult() Outcome {
	return Outcome{Result: ResultNone}
}

func Win(winner Mark, line Line) Outcome {
	return Outcome{Result: ResultWin, Winner: winner, Line: &line}
}

func Draw() Outcome {
	return Outcome{Result: ResultDraw}
}

func (that Outcome) IsWin() bool {
	return that.Result == ResultWin
}

func (that Outcome) IsDraw() bool {
	return that.Result == ResultDraw
}

// IsDecided reports whether the round is over.
func (that Outcome) IsDecided() bool {
	return that.IsWin() || that.IsDraw()
}

// WonBy reports whether the outcome is a win for mark.
func (that Outcome) WonBy(mark Mark) bool {
	return that.IsWin() && that.Winner == mark
}
