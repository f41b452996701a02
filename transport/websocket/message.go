package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	SessionID string          `json:"session_id,omitempty"`
	Cell      *int            `json:"cell,omitempty"`
	Mode      entity.Mode     `json:"mode,omitempty"`
	Theme     entity.Theme    `json:"theme,omitempty"`
	Session   *entity.Session `json:"session,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// client is one upgraded connection. gorilla allows a single concurrent writer,
// so every write goes through writeMu.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	cookieID    string
	sessionID   string
	unsubscribe func()
}

func (that *client) sendMessage(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendState(session entity.Session) error {
	return that.sendMessage(actionSessionState, Payload{Session: &session})
}

func (that *client) sendError(action, reason string) error {
	return that.sendMessage(action, Payload{Error: reason})
}

func (that *client) close() {
	if that.unsubscribe != nil {
		that.unsubscribe()
		that.unsubscribe = nil
	}

	_ = that.conn.Close()
}
