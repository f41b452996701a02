package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Mode string

const (
	ModeHuman    Mode = "pvp"
	ModeComputer Mode = "computer"
)

func (that Mode) IsValid() bool {
	return that == ModeHuman || that == ModeComputer
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (that Theme) IsValid() bool {
	return that == ThemeLight || that == ThemeDark
}

// Score is the running tally for one session.
type Score struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

// Record returns the tally with outcome counted. Undecided outcomes leave it unchanged.
func (that Score) Record(outcome Outcome) Score {
	switch {
	case outcome.WonBy(PlayerX):
		that.X++
	case outcome.WonBy(PlayerO):
		that.O++
	case outcome.IsDraw():
		that.Draws++
	}

	return that
}

func (that Score) Rounds() int {
	return that.X + that.O + that.Draws
}

// Session is an immutable snapshot handed to the presentation layer.
type Session struct {
	ID            string  `json:"id"`
	Board         Board   `json:"board"`
	Turn          Mark    `json:"player_turn"`
	Status        string  `json:"status"`
	Outcome       Outcome `json:"outcome"`
	Mode          Mode    `json:"mode"`
	HumanMark     Mark    `json:"human_mark,omitempty"`
	ComputerMark  Mark    `json:"computer_mark,omitempty"`
	Round         int     `json:"round"`
	Score         Score   `json:"score"`
	Theme         Theme   `json:"theme"`
	AwaitComputer bool    `json:"await_computer"`
}

func (that Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Session) IsWithComputer() bool {
	return that.Mode == ModeComputer
}

// IsComputerTurn reports whether the next placement belongs to the computer.
func (that Session) IsComputerTurn() bool {
	return that.IsWithComputer() && that.IsOngoing() && that.Turn == that.ComputerMark
}
