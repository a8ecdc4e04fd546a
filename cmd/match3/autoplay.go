package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// benchGameID keeps headless scores apart from the players' boards.
const benchGameID = "autoplay"

var (
	flagTurns    int
	flagGames    int
	flagParallel int
	flagSave     bool
	flagPaced    bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Play one headless game by always taking the hint",
	Long: `Play a game without a terminal UI. Every turn swaps the first move the
hint finder reports; the game ends when the move budget runs out or the
board has no moves left. The final board is printed.

Examples:
  match3 autoplay --seed 42
  match3 autoplay --difficulty hard --turns 20`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Play many headless games in parallel",
	Long: `Play -n headless games with consecutive seeds and summarise the
scores. With --save every game is stored under the "autoplay" id.

Examples:
  match3 bench -n 200
  match3 bench -n 50 --difficulty easy --save`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagTurns, "turns", 0, "Stop after this many turns (0 = until the budget runs out)")
	autoplayCmd.Flags().BoolVar(&flagPaced, "paced", false, "Play at animation speed (use with --log-level debug to follow along)")

	benchCmd.Flags().IntVarP(&flagGames, "games", "n", 100, "Number of games to play")
	benchCmd.Flags().IntVar(&flagParallel, "parallel", runtime.NumCPU(), "Games played at once")
	benchCmd.Flags().IntVar(&flagTurns, "turns", 0, "Turn limit per game (0 = until the budget runs out)")
	benchCmd.Flags().BoolVar(&flagSave, "save", false, "Store every score in the database")
}

func seedOrNow() uint64 {
	if flagSeed != 0 {
		return uint64(flagSeed)
	}
	return uint64(time.Now().UnixNano())
}

func runAutoplay(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var opts []match3.AutoplayOption
	if flagPaced {
		opts = append(opts, match3.WithPacing())
	}
	res, err := match3.Autoplay(ctx, cfg, seedOrNow(), flagTurns, logger, opts...)
	if err != nil {
		return err
	}

	fmt.Print(formatBoard(res.Final))
	fmt.Println()
	fmt.Printf("seed      %d\n", res.Seed)
	fmt.Printf("score     %d\n", res.Score)
	fmt.Printf("moves     %d\n", res.Moves)
	fmt.Printf("removed   %d\n", res.Removed)
	fmt.Printf("cascades  %d\n", res.Cascades)
	fmt.Printf("reshuffle %d\n", res.Reshuffle)
	fmt.Printf("moves left on board: %d\n", len(res.Final.Available))
	return nil
}

// formatBoard prints one digit per piece, top row first.
func formatBoard(s core.Snapshot) string {
	var b strings.Builder
	for _, row := range s.Values {
		for x, v := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if v < 0 {
				b.WriteByte('.')
				continue
			}
			fmt.Fprintf(&b, "%d", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func runBench(cmd *cobra.Command, _ []string) error {
	if flagGames <= 0 {
		return fmt.Errorf("-n must be positive")
	}
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results := make([]match3.AutoplayResult, flagGames)
	first := seedOrNow()
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(flagParallel, 1))
	for i := range flagGames {
		g.Go(func() error {
			res, err := match3.Autoplay(ctx, cfg, first+uint64(i), flagTurns, nil)
			if err != nil {
				return fmt.Errorf("seed %d: %w", first+uint64(i), err)
			}
			results[i] = res
			if store == nil {
				return nil
			}
			_, err = store.SaveScore(storage.ScoreEntry{
				GameID: benchGameID,
				Score:  res.Score,
				Moves:  res.Moves,
				Seed:   res.Seed,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printBench(results, preset, time.Since(start))
	return nil
}

func printBench(results []match3.AutoplayResult, preset config.DifficultyPreset, elapsed time.Duration) {
	scores := make([]int, len(results))
	total, cascades, reshuffles := 0, 0, 0
	for i, r := range results {
		scores[i] = r.Score
		total += r.Score
		cascades += r.Cascades
		reshuffles += r.Reshuffle
	}
	sort.Ints(scores)

	fmt.Printf("games      %d (%s) in %s\n", len(results), preset, elapsed.Round(time.Millisecond))
	fmt.Printf("score      min %d  median %d  max %d  mean %.1f\n",
		scores[0], scores[len(scores)/2], scores[len(scores)-1], float64(total)/float64(len(scores)))
	fmt.Printf("cascades   %d\n", cascades)
	fmt.Printf("reshuffles %d\n", reshuffles)
}
