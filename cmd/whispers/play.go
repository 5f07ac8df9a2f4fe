package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/whispers/internal/core"
	"github.com/vovakirdan/whispers/internal/platform/tui"
	"github.com/vovakirdan/whispers/internal/session"
	"github.com/vovakirdan/whispers/internal/storage"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the story",
	Long: `Start the story in a full-screen terminal UI.

Controls:
  Up/Down/j/k  - Move between choices
  Enter/Space  - Take the highlighted choice
  1-9          - Take a choice by number
  Tab          - Show or hide the journey log
  R            - Start over (after an ending)
  Ctrl+S       - Save progress and quit
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Lower death chance, higher death threshold
  normal - Default tuning
  hard   - Higher death chance, the hidden door needs calmer nerves

Examples:
  whispers play
  whispers play --resume
  whispers play --difficulty hard
  whispers play --seed 42
  whispers play --config ./my-story.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved story of --player")
}

func runPlay(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sess, err := startSession(store, flagResume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeAndExit(store)
	}

	saved, err := tui.Run(sess, progressStore(store), rt.cat, runtimeConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running story: %v\n", err)
		closeAndExit(store)
	}
	if saved {
		fmt.Printf("Progress saved for %s. Continue with 'whispers play --resume'.\n", sess.Player())
	}
}

// runtimeConfig sizes the UI to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// startSession starts a new story, or resumes the player's saved one.
func startSession(store *storage.Store, resume bool) (*session.Session, error) {
	opts := session.Options{
		Player: playerName(),
		Seed:   flagSeed,
		Logger: rt.logger,
	}
	if store != nil {
		opts.Recorder = store
	}

	if !resume {
		return session.New(rt.engine, opts)
	}

	if store == nil {
		return nil, fmt.Errorf("cannot resume without a database")
	}
	snap, err := store.LoadProgress(opts.Player)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("no saved story for %s", opts.Player)
	}
	return session.Resume(rt.engine, *snap, opts)
}

// progressStore keeps a nil store from becoming a non-nil interface.
func progressStore(store *storage.Store) tui.ProgressStore {
	if store == nil {
		return nil
	}
	return store
}

func closeAndExit(store *storage.Store) {
	if store != nil {
		store.Close()
	}
	os.Exit(1)
}
