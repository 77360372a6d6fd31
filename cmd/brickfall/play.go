package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/games/breakout"
	"github.com/vovakirdan/brickfall/internal/platform/tui"
	"github.com/vovakirdan/brickfall/internal/platform/window"
	"github.com/vovakirdan/brickfall/internal/registry"
	"github.com/vovakirdan/brickfall/internal/spectate"
	"github.com/vovakirdan/brickfall/internal/storage"
)

var (
	flagWindow   bool
	flagSpectate string
	flagPlayer   string
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Play a layout",
	Long: `Start playing the specified layout (classic when omitted).

Controls:
  Left/Right, A/D  - Move the paddle
  Space            - Launch the ball
  P/Esc            - Pause
  R                - Restart (after the layout is cleared)
  B                - Back (while paused or after clearing)
  Q/Ctrl+C         - Quit

The session is saved as a replay when it ends.

Examples:
  brickfall play
  brickfall play pyramid
  brickfall play checker --window
  brickfall play --spectate :8080
  brickfall play --config ./fast.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Open a desktop window instead of the terminal UI")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve live frames to spectators on this address (e.g. :8080)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with replays (default: current user)")
	menuCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve live frames to spectators on this address (e.g. :8080)")
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with replays (default: current user)")
}

func runPlay(cmd *cobra.Command, args []string) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, ok := resolveGameID(arg)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown layout %q\n", arg)
		fmt.Fprintln(os.Stderr, "Run 'brickfall list' to see available layouts.")
		os.Exit(1)
	}

	logger, closeLog := newLogger(false)
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	hub, stopSpectate := startSpectator(flagSpectate, logger)

	var runErr error
	if flagWindow {
		bg, ok := game.(*breakout.Game)
		if !ok {
			runErr = fmt.Errorf("game %q cannot run in a window", gameID)
		} else {
			runErr = window.Run(bg, window.Options{
				Store:  store,
				Player: playerName(),
				Hub:    hub,
				Logger: logger,
			})
		}
	} else {
		runErr = tui.Run(game, runtimeConfig(), tui.Options{
			Store:  store,
			Player: playerName(),
			Hub:    hub,
			Logger: logger,
		})
	}

	stopSpectate()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openStore opens the replay database. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		logger.Warn("replays disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// startSpectator serves the spectator endpoints on addr. An empty address
// disables spectating and returns a nil hub.
func startSpectator(addr string, logger *log.Logger) (*spectate.Hub, func()) {
	if addr == "" {
		return nil, func() {}
	}

	hub := spectate.NewHub(logger)
	srv, err := spectate.Listen(addr, hub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: spectating disabled: %v\n", err)
		return nil, func() {}
	}
	logger.Info("spectator server listening", "addr", srv.Addr())

	return hub, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("spectator shutdown", "err", err)
		}
	}
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
