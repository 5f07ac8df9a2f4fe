package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/whispers/internal/platform/tui"
	"github.com/vovakirdan/whispers/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a story ends or is saved, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab/H        - Run history
  Q            - Quit

Examples:
  whispers menu
  whispers menu --lang ko
  whispers menu --db ./whispers.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	player := playerName()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(rt.cat, cfg, hasSave(store, player))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.MenuNewGame, tui.MenuContinue:
			sess, err := startSession(store, menuResult.Choice == tui.MenuContinue)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if _, err := tui.Run(sess, progressStore(store), rt.cat, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error running story: %v\n", err)
			}
			// Loop back to menu

		case tui.MenuHistory:
			goBack, err := tui.RunHistory(historySource(store), player, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return // User quit from history
			}

		default:
			return
		}
	}
}

func hasSave(store *storage.Store, player string) bool {
	if store == nil {
		return false
	}
	ok, err := store.HasProgress(player)
	if err != nil {
		rt.logger.Warn("could not check saved progress", "error", err)
	}
	return ok
}

func historySource(store *storage.Store) tui.HistorySource {
	if store == nil {
		return nil
	}
	return store
}
