package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg/clock"
	"github.com/rocketscienceinc/tictactoe/internal/pkg/random"
	"github.com/rocketscienceinc/tictactoe/internal/render"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const playHelp = `Commands: 1-9 place a mark, n new round, m switch mode, t switch theme, r reset score, q quit`

type playManager interface {
	StartSession(ctx context.Context, id string) (entity.Session, error)
	MakeTurn(ctx context.Context, id string, cell int) (entity.Session, error)
	NewRound(ctx context.Context, id string) (entity.Session, error)
	SetMode(ctx context.Context, id string, mode entity.Mode) (entity.Session, error)
	SetTheme(ctx context.Context, id string, theme entity.Theme) (entity.Session, error)
	ResetScore(ctx context.Context, id string) (entity.Session, error)
	Subscribe(id string) (<-chan entity.Session, func(), error)
	EndSession(id string) error
}

type playOptions struct {
	mode  string
	theme string
	seed  uint64
}

func newPlayCmd(opts *options) *cobra.Command {
	play := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := opts.initConfig()
			if opts.logLevel == "" {
				conf.LogLevel = "warn"
			}
			logger := initLogger(cmd.ErrOrStderr(), conf.LogLevel)

			rnd := random.New()
			if cmd.Flags().Changed("seed") {
				rnd = random.NewSeeded(play.seed)
			}

			store := repository.NewMemory()
			games := usecase.NewGameManager(logger, store, store, tictactoe.NewMoveSelector(rnd), clock.New(), conf.Game.ComputerDelay)

			return runPlay(cmd.Context(), games, cmd.InOrStdin(), cmd.OutOrStdout(), play)
		},
	}

	cmd.Flags().StringVar(&play.mode, "mode", string(entity.ModeComputer), "pvp or computer")
	cmd.Flags().StringVar(&play.theme, "theme", string(entity.ThemeLight), "light or dark")
	cmd.Flags().Uint64Var(&play.seed, "seed", 0, "seed for the computer's tie-breaks")

	return cmd
}

// runPlay drives one terminal session until q or end of input.
func runPlay(ctx context.Context, games playManager, in io.Reader, out io.Writer, opts *playOptions) error {
	session, err := games.StartSession(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer func() { _ = games.EndSession(session.ID) }()

	updates, unsubscribe, err := games.Subscribe(session.ID)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	defer unsubscribe()

	if mode := entity.Mode(opts.mode); mode != session.Mode {
		if session, err = games.SetMode(ctx, session.ID, mode); err != nil {
			return err
		}
	}

	if theme := entity.Theme(opts.theme); theme != session.Theme {
		if session, err = games.SetTheme(ctx, session.ID, theme); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, playHelp)
	if err = render.Session(out, session); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "q" {
			return nil
		}

		next, err := command(ctx, games, session, input)
		if err != nil {
			fmt.Fprintf(out, "Error: %s\n", err)
			continue
		}
		session = next

		if session.AwaitComputer {
			if err = render.Session(out, session); err != nil {
				return err
			}

			if session, err = awaitComputer(ctx, updates, session); err != nil {
				return err
			}
		}

		if err = render.Session(out, session); err != nil {
			return err
		}
	}
}

func command(ctx context.Context, games playManager, session entity.Session, input string) (entity.Session, error) {
	switch input {
	case "n":
		return games.NewRound(ctx, session.ID)
	case "m":
		mode := entity.ModeComputer
		if session.IsWithComputer() {
			mode = entity.ModeHuman
		}
		return games.SetMode(ctx, session.ID, mode)
	case "t":
		theme := entity.ThemeDark
		if session.Theme == entity.ThemeDark {
			theme = entity.ThemeLight
		}
		return games.SetTheme(ctx, session.ID, theme)
	case "r":
		return games.ResetScore(ctx, session.ID)
	}

	cell, err := strconv.Atoi(input)
	if err != nil {
		return session, fmt.Errorf("unknown command %q", input)
	}

	return games.MakeTurn(ctx, session.ID, cell-1)
}

// awaitComputer blocks until the computer's reply is published.
func awaitComputer(ctx context.Context, updates <-chan entity.Session, session entity.Session) (entity.Session, error) {
	for session.AwaitComputer {
		select {
		case <-ctx.Done():
			return session, ctx.Err()
		case next, ok := <-updates:
			if !ok {
				return session, nil
			}
			session = next
		}
	}

	return session, nil
}
