package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/platform/tui"
	"github.com/vovakirdan/brickfall/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a layout picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a layout.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select layout
  Tab          - Browse replays
  Q            - Quit

Examples:
  brickfall menu
  brickfall menu --fps 30
  brickfall menu --db ./replays.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	store := openStore(logger)
	hub, stopSpectate := startSpectator(flagSpectate, logger)

	opts := tui.Options{
		Store:  store,
		Player: playerName(),
		Hub:    hub,
		Logger: logger,
	}
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsReplays {
			goBack, rErr := tui.RunReplays(store, cfg, opts)
			if rErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		model, err := tui.NewGameModel(game, cfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
			continue
		}
		quit, err := tui.RunModel(model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if quit {
			break
		}
	}

	stopSpectate()
	if store != nil {
		store.Close()
	}
}
