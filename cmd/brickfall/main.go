// brickfall is a brick-breaking game for the terminal, a desktop window and
// SSH, with deterministic replays and live spectating.
//
// Usage:
//
//	brickfall list              - List available layouts
//	brickfall play [layout]     - Play a layout
//	brickfall menu              - Start menu to pick layouts interactively
//	brickfall serve             - Start SSH server for remote play
//	brickfall replays           - List recorded replays
//	brickfall replay <id>       - Verify or watch a replay
//	brickfall config            - Print or initialize the configuration
//
// Global flags:
//
//	--fps <rate>        - Render rate (default: 60)
//	--db <path>         - Replay database (default: ~/.brickfall/replays.db)
//	--config <path>     - Simulation config YAML
//	--log-file <path>   - Log destination (default: ~/.brickfall/brickfall.log)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
	"github.com/vovakirdan/brickfall/internal/games/breakout"
	"github.com/vovakirdan/brickfall/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickfall",
	Short: "Brickfall - break blocks in your terminal",
	Long: `Brickfall is a brick-breaking game with a fixed-timestep simulation.
Every session is recorded as a replay that re-simulates bit for bit.

Available commands:
  list     - Show all available layouts
  play     - Play a layout directly
  menu     - Interactive layout picker
  serve    - Start SSH server for remote play
  replays  - List recorded replays
  replay   - Verify or watch a replay
  config   - Print or initialize the configuration

Examples:
  brickfall list
  brickfall play pyramid
  brickfall play --window
  brickfall menu --spectate :8080
  brickfall serve --ssh :2222
  brickfall replay 12 --watch`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		breakout.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", filepath.Join("~", config.AppDir, "replays.db"), "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.brickfall/brickfall.log)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the process logger. Interactive commands own the
// terminal, so they log to a file; toStderr is for the server.
func newLogger(toStderr bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	if toStderr && flagLogFile == "" {
		return log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           level,
			Prefix:          "brickfall",
		}), func() {}
	}

	path := flagLogFile
	if path == "" {
		path = config.UserPath("brickfall.log")
	}
	if path != "" {
		//nolint:errcheck // A failure surfaces when opening the file
		os.MkdirAll(filepath.Dir(path), 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel}), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, func() { f.Close() }
}

// runtimeConfig sizes the runtime to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.FPS = flagFPS
	return cfg
}

// resolveGameID accepts a registry ID or a bare layout ID.
func resolveGameID(arg string) (string, bool) {
	switch {
	case arg == "" || arg == "classic":
		return "breakout", true
	case registry.Exists(arg):
		return arg, true
	case registry.Exists("breakout_" + arg):
		return "breakout_" + arg, true
	}
	return "", false
}
