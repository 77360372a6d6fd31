package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/platform/tui"
	"github.com/vovakirdan/brickfall/internal/replay"
	"github.com/vovakirdan/brickfall/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
	flagWatch  bool
	flagDelete bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded replays",
	Long: `Display the most recent replays, newest first.

Examples:
  brickfall replays
  brickfall replays --limit 50
  brickfall replays --browse`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify or watch a replay",
	Long: `Re-simulate a stored replay and check that it reproduces the
recorded final state. With --watch the replay is played back in the terminal.

Examples:
  brickfall replay 12
  brickfall replay 12 --watch
  brickfall replay 12 --delete`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to show")
	replaysCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive replay browser")
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the replay back in the terminal")
	replayCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the replay")
}

func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runReplays(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if flagBrowse {
		logger, closeLog := newLogger(false)
		defer closeLog()
		if _, err := tui.RunReplays(store, runtimeConfig(), tui.Options{Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	replays, err := store.ListReplays(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		return
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'brickfall play' to record the first one!")
		return
	}

	fmt.Printf("  %-5s  %-8s  %-12s  %-8s  %-4s  %s\n", "ID", "Layout", "Player", "Ticks", "Left", "Date")
	fmt.Printf("  %-5s  %-8s  %-12s  %-8s  %-4s  %s\n", "--", "------", "------", "-----", "----", "----")
	for _, r := range replays {
		fmt.Printf("  %-5d  %-8s  %-12s  %-8d  %-4d  %s\n",
			r.ID, r.Layout, r.Player, r.Ticks, r.BlocksLeft, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if counts, err := store.CountReplays(); err == nil {
		fmt.Println()
		for layout, n := range counts {
			fmt.Printf("%s: %d\n", layout, n)
		}
	}
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", args[0])
		os.Exit(1)
	}

	store := mustOpenStore()
	defer store.Close()

	if flagDelete {
		if err := store.DeleteReplay(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Replay #%d deleted.\n", id)
		return
	}

	entry, err := store.Replay(id)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no replay #%d\n", id)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		return
	}

	if flagWatch {
		logger, closeLog := newLogger(false)
		defer closeLog()
		if err := tui.Watch(entry.Journal, runtimeConfig(), tui.Options{Player: entry.Player, Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	tick := entry.Journal.Config.Timing.Tick
	fmt.Printf("Replay #%d - %s by %s\n", entry.ID, entry.Layout, entry.Player)
	fmt.Printf("  %d ticks (%s simulated), %d blocks left\n", entry.Ticks, entry.Duration(tick), entry.BlocksLeft)
	fmt.Printf("  final hash %016x\n", entry.FinalHash)

	switch err := replay.Verify(entry.Journal); {
	case err == nil:
		fmt.Println("  verified: re-simulation matches")
	case errors.Is(err, replay.ErrMismatch):
		fmt.Printf("  DIVERGED: %v\n", err)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error verifying replay: %v\n", err)
		os.Exit(1)
	}
}
