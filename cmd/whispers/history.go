package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/whispers/internal/storage"
	"github.com/vovakirdan/whispers/internal/story"
)

var (
	flagHistoryLimit int
	flagHistoryMine  bool
	flagHistoryClear bool
)

var (
	colorHeader  = color.Style{color.FgLightWhite, color.OpBold}
	colorEscaped = color.Style{color.FgGreen}
	colorLost    = color.Style{color.FgRed}
	colorSubtle  = color.Style{color.FgGray}
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished runs",
	Long: `Display recent finished runs and overall statistics.

Examples:
  whispers history
  whispers history --mine --player amy
  whispers history --limit 50
  whispers history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryMine, "mine", false, "Only show runs of --player")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every recorded run")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(rt.settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			closeAndExit(store)
		}
		fmt.Println("Run history cleared.")
		return
	}

	var runs []storage.RunEntry
	if flagHistoryMine {
		runs, err = store.RunsByPlayer(playerName(), flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		closeAndExit(store)
	}

	colorHeader.Println("Run History - " + rt.cat.T(story.Title))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'whispers play' and reach an ending to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-12s  %-8s  %4s  %5s  %s\n", "Date", "Player", "Ending", "Fear", "Moves", "Time")
	fmt.Printf("  %-16s  %-12s  %-8s  %4s  %5s  %s\n", "----", "------", "------", "----", "-----", "----")

	for _, r := range runs {
		ending := colorLost.Sprintf("%-8s", "lost")
		if r.Escaped() {
			ending = colorEscaped.Sprintf("%-8s", "escaped")
		}
		fmt.Printf("  %-16s  %-12s  %s  %4d  %5d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Player,
			ending,
			r.Fear,
			r.Moves,
			r.Duration.Round(time.Second),
		)
	}

	// Show totals
	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	colorSubtle.Printf("%d runs, %d escaped (%.0f%%), %d lost, %d died, average fear %.0f\n",
		stats.Runs, stats.GoodEndings, stats.EscapeRate()*100, stats.BadEndings, stats.Deaths, stats.AvgFear)
	if stats.FastestEscape > 0 {
		colorSubtle.Printf("Fastest escape: %d moves\n", stats.FastestEscape)
	}
}
