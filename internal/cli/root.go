package cli

import (
	"context"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe/internal/config"
)

type options struct {
	configPath string
	logLevel   string
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic tac toe server and terminal game",
		Long: `tictactoe serves games over a JSON API and a WebSocket channel,
or runs a single game in the terminal against a friend or the computer.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.yml", "YAML config file; the environment is used when it is missing")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "overrides log-level from config: debug, info, warn, error")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newPlayCmd(opts))

	return rootCmd
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// initialize config.
func (that *options) initConfig() *config.Config {
	conf := config.MustLoad(that.configPath)
	if that.logLevel != "" {
		conf.LogLevel = that.logLevel
	}

	return conf
}

// initialize logger.
func initLogger(w io.Writer, logLevel string) *slog.Logger {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
