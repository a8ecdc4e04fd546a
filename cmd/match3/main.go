// match3 is a terminal match-3 puzzle game.
//
// Usage:
//
//	match3 list              - List game variants
//	match3 play [game]       - Play a variant, or pick one from the menu
//	match3 serve             - Start SSH server for remote play
//	match3 scores <game>     - Show high scores for a variant
//	match3 autoplay          - Play a headless game with hints
//	match3 bench             - Play many headless games in parallel
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.match3/scores.db)
//	--config <path>     - Use a custom board config
//	--difficulty <name> - easy, normal, hard or fixed
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// logger is ready once the root command's PersistentPreRunE has run.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "match3",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap pieces, clear runs, chase cascades",
	Long: `Match-3 is a terminal puzzle game. Swap two neighbouring pieces to
line up three or more of the same kind; cleared pieces fall and new ones
drop in from the top, sometimes setting off cascades.

Available commands:
  list      - Show the game variants
  play      - Play a variant directly or from the menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  autoplay  - Let the hint finder play one game
  bench     - Play many headless games and record the scores

Examples:
  match3 play
  match3 play match3_endless --difficulty easy
  match3 serve --ssh :2222
  match3 autoplay --seed 42`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", string(config.DifficultyNormal), "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(benchCmd)
}

// setup applies the global flags: log level, then the game config.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	match3.SetLogger(logger)

	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	match3.Configure(cfg)
	logger.Debug("config loaded", "preset", preset, "size", cfg.Board.Size, "palette", cfg.Board.Palette)
	return nil
}

// loadConfig reads the board config and applies the difficulty preset.
func loadConfig() (config.Match3Config, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Match3Config{}, "", err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Match3Config{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	if _, err := cfg.Engine(); err != nil {
		return config.Match3Config{}, "", err
	}
	return cfg, preset, nil
}

// baseConfig returns the config without a preset applied, for callers
// that apply their own.
func baseConfig() (config.Match3Config, error) {
	return config.Load(flagConfig)
}
