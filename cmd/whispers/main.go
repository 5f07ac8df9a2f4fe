// whispers is a terminal horror text adventure.
//
// Usage:
//
//	whispers play            - Play the story in a full-screen terminal UI
//	whispers menu            - Title menu: new game, continue, history
//	whispers text            - Play line by line over stdin/stdout
//	whispers serve           - Start SSH server for remote play
//	whispers history         - Show finished runs and statistics
//	whispers scenes          - Print the scene graph
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for a reproducible run
//	--db <path>           - Set database path (default: ~/.whispers/whispers.db)
//	--lang <code>         - Story language: en, ko
//	--config <path>       - Story tuning YAML
//	--difficulty <name>   - easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/whispers/internal/config"
	"github.com/vovakirdan/whispers/internal/locale"
	"github.com/vovakirdan/whispers/internal/storage"
	"github.com/vovakirdan/whispers/internal/story"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagLang       string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagPlayer     string
)

// app holds what every command needs once flags and environment are resolved.
type app struct {
	settings config.AppConfig
	logger   *log.Logger
	engine   *story.Engine
	cat      *locale.Catalog
}

var rt app

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "whispers",
	Short: "Whispers in the Dark - a horror text adventure for your terminal",
	Long: `Whispers in the Dark is a short branching horror story played in the terminal.
Every choice raises your fear. Find the torch and the note, and a hidden
door may show you the way out.

Available commands:
  play     - Play in a full-screen terminal UI
  menu     - Title menu with continue and history
  text     - Line mode over stdin/stdout
  serve    - Start SSH server for remote play
  history  - View finished runs
  scenes   - Print the scene graph

Settings are read from WHISPERS_* environment variables first;
flags override them.

Examples:
  whispers play
  whispers play --resume
  whispers text --lang ko
  whispers serve --ssh :2222
  whispers history --player amy`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = fresh random seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (default $WHISPERS_DB or ~/.whispers/whispers.db)")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "Story language: en, ko")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom story tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for saves and history (default $USER)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scenesCmd)
}

// setup resolves environment and flags into rt.
func setup(cmd *cobra.Command, _ []string) error {
	appCfg, err := config.ParseEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		appCfg.DBPath = flagDBPath
	}
	if flags.Changed("lang") {
		appCfg.Lang = flagLang
	}
	if flags.Changed("difficulty") {
		appCfg.Difficulty = flagDifficulty
	}
	if flags.Changed("log-level") {
		appCfg.LogLevel = flagLogLevel
	}

	level, err := log.ParseLevel(appCfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", appCfg.LogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "whispers",
		Level:           level,
	})

	cat, err := locale.New(appCfg.Lang)
	if err != nil {
		return err
	}

	storyCfg, err := config.LoadStory(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParseDifficulty(appCfg.Difficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(&storyCfg, preset)

	rt = app{
		settings: appCfg,
		logger:   logger,
		engine:   story.NewEngine(storyCfg),
		cat:      cat,
	}
	logger.Debug("configured", "lang", cat.Lang(), "difficulty", preset, "db", appCfg.DBPath)
	return nil
}

// openStore opens the database, or returns nil and logs a warning.
// The story still works without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(rt.settings.DBPath)
	if err != nil {
		rt.logger.Warn("could not open runs database, progress will not be saved", "error", err)
		return nil
	}
	return store
}

// playerName picks the save slot owner.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
