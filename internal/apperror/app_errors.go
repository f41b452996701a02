package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidMode       = errors.New("invalid game mode")
	ErrInvalidTheme      = errors.New("invalid theme")
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrUnknownGameStatus = errors.New("unknown game status")
)
