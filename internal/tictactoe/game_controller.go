package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// NewRound returns a snapshot with a fresh board, X to move.
func NewRound(session entity.Session) entity.Session {
	session.Board = entity.NewBoard()
	session.Turn = entity.PlayerX
	session.Status = entity.StatusOngoing
	session.Outcome = entity.NoResult()
	session.AwaitComputer = false
	session.Round++

	return session
}

// MakeTurn places mark on cell and returns the next snapshot. The input is left untouched.
func MakeTurn(session entity.Session, mark entity.Mark, cell int) (entity.Session, error) {
	if err := confirmOngoingState(session); err != nil {
		return session, err
	}

	if err := validateMove(session, mark, cell); err != nil {
		return session, fmt.Errorf("invalid turn: %w", err)
	}

	session.Board = session.Board.With(cell, mark)

	return updateGameStatus(session, mark), nil
}

func confirmOngoingState(session entity.Session) error {
	switch {
	case session.IsFinished():
		return apperror.ErrGameFinished
	case session.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, session.Status)
	}
}

// validateMove - checks if the move is valid.
func validateMove(session entity.Session, mark entity.Mark, cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if session.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if session.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(session entity.Session, mark entity.Mark) entity.Session {
	session.Outcome = Evaluate(session.Board)

	if session.Outcome.IsDecided() {
		session.Status = entity.StatusFinished
		session.Turn = entity.EmptyCell
		session.Score = session.Score.Record(session.Outcome)

		return session
	}

	session.Turn = toggleMark(mark)

	return session
}

func toggleMark(currentMark entity.Mark) entity.Mark {
	if currentMark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}
