package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/pkg/clock"
	"github.com/rocketscienceinc/tictactoe/internal/pkg/random"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/transport/rest"
	"github.com/rocketscienceinc/tictactoe/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis host is empty")

type repositories struct {
	score      repository.ScoreRepository
	preference repository.PreferenceRepository
	close      func() error
}

// RunApp - runs the application until ctx is cancelled or a server fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	repos, err := newRepositories(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = repos.close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(
		logger,
		repos.score,
		repos.preference,
		tictactoe.NewMoveSelector(random.New()),
		clock.New(),
		conf.Game.ComputerDelay,
	).WithSessionTTL(conf.Game.SessionTTL)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newRepositories(ctx context.Context, conf *config.Config) (*repositories, error) {
	if conf.Storage == config.StorageMemory {
		memory := repository.NewMemory()

		return &repositories{
			score:      memory,
			preference: memory,
			close:      func() error { return nil },
		}, nil
	}

	if conf.Redis.Host == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return &repositories{
		score:      repository.NewScoreRepository(redisStorage, conf.Redis.ScoreTTL),
		preference: repository.NewPreferenceRepository(redisStorage, conf.Redis.ScoreTTL),
		close:      redisStorage.Close,
	}, nil
}
