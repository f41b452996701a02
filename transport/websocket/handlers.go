package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

var (
	errNotConnected     = errors.New("send session:connect first")
	errUnknownAction    = errors.New("unknown action")
	errMalformedMessage = errors.New("malformed message")
)

// handleConnect binds the connection to a session and starts pushing its snapshots.
func (that *Server) handleConnect(ctx context.Context, c *client, payload Payload) error {
	log := that.logger.With("method", "handleConnect")

	id := payload.SessionID
	if id == "" {
		id = c.cookieID
	}

	session, err := that.games.StartSession(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	updates, unsubscribe, err := that.games.Subscribe(session.ID)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.sessionID = session.ID
	c.unsubscribe = unsubscribe

	go that.push(c, updates)

	log.Info("client connected to session", "session", session.ID)

	return c.sendState(session)
}

func (that *Server) handleNewRound(ctx context.Context, c *client, _ Payload) error {
	if c.sessionID == "" {
		return errNotConnected
	}

	_, err := that.games.NewRound(ctx, c.sessionID)

	return err
}

func (that *Server) handleTurn(ctx context.Context, c *client, payload Payload) error {
	if c.sessionID == "" {
		return errNotConnected
	}

	if payload.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell)
	}

	_, err := that.games.MakeTurn(ctx, c.sessionID, *payload.Cell)

	return err
}

func (that *Server) handleMode(ctx context.Context, c *client, payload Payload) error {
	if c.sessionID == "" {
		return errNotConnected
	}

	_, err := that.games.SetMode(ctx, c.sessionID, payload.Mode)

	return err
}

func (that *Server) handleTheme(ctx context.Context, c *client, payload Payload) error {
	if c.sessionID == "" {
		return errNotConnected
	}

	_, err := that.games.SetTheme(ctx, c.sessionID, payload.Theme)

	return err
}

func (that *Server) handleScoreReset(ctx context.Context, c *client, _ Payload) error {
	if c.sessionID == "" {
		return errNotConnected
	}

	_, err := that.games.ResetScore(ctx, c.sessionID)

	return err
}

// push forwards snapshots until the subscription is closed.
func (that *Server) push(c *client, updates <-chan entity.Session) {
	for session := range updates {
		if err := c.sendState(session); err != nil {
			that.logger.Debug("failed to push state", "session", session.ID, "error", err)
		}
	}
}
