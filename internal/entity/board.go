package entity

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	CellCount = 9
	Center    = 4
)

var (
	Corners = [4]int{0, 2, 6, 8}
	Sides   = [4]int{1, 3, 5, 7}

	// WinLines is ordered: rows, columns, then the two diagonals.
	// Evaluation reports the first satisfied line in this order.
	WinLines = [8]Line{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Mark is a player's symbol. Any two distinct non-empty values work as a pair.
type Mark string

// Opponent returns the other standard mark. Non-standard marks have no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}

// Line is a triple of board indices that wins when all three hold the same mark.
type Line [3]int

// Board is a row-major 3x3 grid: index i is row i/3, column i%3.
type Board [CellCount]Mark

func NewBoard() Board {
	return Board{}
}

// IsValidCell reports whether cell addresses a position on the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < CellCount
}

func (that Board) IsEmptyAt(cell int) bool {
	return IsValidCell(cell) && that[cell] == EmptyCell
}

// EmptyCells lists empty positions in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, CellCount)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// With returns a copy of the board with mark placed on cell.
func (that Board) With(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

// Moves counts the non-empty cells.
func (that Board) Moves() int {
	return CellCount - len(that.EmptyCells())
}
