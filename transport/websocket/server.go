package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg"
)

const (
	actionSessionConnect = "session:connect"
	actionSessionState   = "session:state"
	actionRoundNew       = "round:new"
	actionRoundTurn      = "round:turn"
	actionSessionMode    = "session:mode"
	actionSessionTheme   = "session:theme"
	actionScoreReset     = "score:reset"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second

	// maxMessageSize bounds one client frame; every action fits in far less.
	maxMessageSize = 4096
)

type gameManager interface {
	StartSession(ctx context.Context, id string) (entity.Session, error)
	MakeTurn(ctx context.Context, id string, cell int) (entity.Session, error)
	NewRound(ctx context.Context, id string) (entity.Session, error)
	SetMode(ctx context.Context, id string, mode entity.Mode) (entity.Session, error)
	SetTheme(ctx context.Context, id string, theme entity.Theme) (entity.Session, error)
	ResetScore(ctx context.Context, id string) (entity.Session, error)
	Subscribe(id string) (<-chan entity.Session, func(), error)
}

type handler func(ctx context.Context, c *client, payload Payload) error

type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handler
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,

		handlers: make(map[string]handler),
	}

	server.handlers[actionSessionConnect] = server.handleConnect
	server.handlers[actionRoundNew] = server.handleNewRound
	server.handlers[actionRoundTurn] = server.handleTurn
	server.handlers[actionSessionMode] = server.handleMode
	server.handlers[actionSessionTheme] = server.handleTheme
	server.handlers[actionScoreReset] = server.handleScoreReset

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP upgrades the connection and serves it until the peer leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	cookieID, header := that.sessionCookie(req)

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn, cookieID: cookieID}
	defer c.close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), c); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.reply(c, "", errMalformedMessage)
			continue
		}

		var payload Payload
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &payload); err != nil {
				that.reply(c, message.Action, errMalformedMessage)
				continue
			}
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			that.reply(c, message.Action, fmt.Errorf("%w: %q", errUnknownAction, message.Action))
			continue
		}

		if err = handle(ctx, c, payload); err != nil {
			that.reply(c, message.Action, err)
		}
	}
}

// sessionCookie returns the session id from the cookie, issuing a new one when it is missing.
func (that *Server) sessionCookie(req *http.Request) (string, http.Header) {
	if id, ok := pkg.SessionIDFromCookie(req); ok {
		return id, nil
	}

	cookie := pkg.NewSessionCookie(pkg.GenerateSessionID())

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	that.logger.Debug("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value, header
}

func (that *Server) reply(c *client, action string, err error) {
	that.logger.Debug("action rejected", "action", action, "error", err)

	if sendErr := c.sendError(action, err.Error()); sendErr != nil {
		that.logger.Error("failed to send error", "error", sendErr)
	}
}
