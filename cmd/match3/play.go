package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without a game id the menu opens, where the variant
and difficulty can be picked and scores browsed.

Controls:
  Arrows/WASD   - Move the cursor
  Enter/Space   - Select a piece, then a neighbour to swap with
  X/Backspace   - Drop the selection
  H             - Show a hint
  P/Esc         - Pause
  R             - Restart (after game over)
  Q/Ctrl+C      - Quit

Examples:
  match3 play
  match3 play match3
  match3 play match3_endless --difficulty hard
  match3 play match3 --config ./my-board.yaml --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg := runtimeConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	if len(args) == 0 {
		return runMenuLoop(store, cfg)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'match3 list' to see the variants)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if err := tui.Run(game, store, cfg, tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// runMenuLoop alternates between the menu and the chosen screen until the
// player quits.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig) error {
	base, err := baseConfig()
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	for {
		res, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			return err
		}
		cfg = res.Config
		preset = res.Preset

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		default:
			game, err := registry.Create(res.GameID)
			if err != nil {
				return err
			}
			tui.ConfigureGame(game, base, preset)
			logger.Info("game started", "game", res.GameID, "preset", preset)
			if err := tui.Run(game, store, cfg, tui.WithLogger(logger)); err != nil {
				return fmt.Errorf("running game: %w", err)
			}
		}
	}
}
