package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/whispers/internal/platform/cli"
)

var flagTextResume bool

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Play line by line over stdin/stdout",
	Long: `Play the story in line mode. Type a choice number, its name, or a
short word like "torch", "up" or "door". Typos are forgiven when only
one choice is close.

Commands:
  look   - Describe the scene again
  log    - Show the journey log
  save   - Save progress and leave
  help   - List commands
  quit   - Leave without saving

Colors are disabled when stdout is not a terminal, so transcripts stay clean.

Examples:
  whispers text
  whispers text --lang ko
  printf '1\n1\n2\n' | whispers text --seed 7`,
	Args: cobra.NoArgs,
	Run:  runText,
}

func init() {
	textCmd.Flags().BoolVar(&flagTextResume, "resume", false, "Continue the saved story of --player")
}

func runText(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sess, err := startSession(store, flagTextResume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeAndExit(store)
	}

	opts := cli.Options{Plain: !term.IsTerminal(int(os.Stdout.Fd()))}
	if store != nil {
		opts.Progress = store
	}

	if _, err := cli.New(os.Stdin, os.Stdout, sess, rt.cat, opts).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeAndExit(store)
	}
}
