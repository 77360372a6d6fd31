package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/config"
)

var flagInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or initialize the simulation configuration",
	Long: `Print the effective simulation configuration as YAML.

With --init the defaults are written to ~/.brickfall/configs/breakout.yaml,
where every later run picks them up.

Examples:
  brickfall config
  brickfall config --config ./fast.yaml
  brickfall config --init`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagInit, "init", false, "Write the default config to the user config directory")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagInit {
		path := config.UserPath("configs", "breakout.yaml")
		if path == "" {
			fmt.Fprintln(os.Stderr, "Error: cannot locate home directory")
			os.Exit(1)
		}
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "Error: %s already exists\n", path)
			os.Exit(1)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
	fmt.Printf("# %.0f ticks per second\n", cfg.TicksPerSecond())
}
