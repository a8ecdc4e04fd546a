package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagClearScores bool
	flagStats       bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top scores for a game variant.

Examples:
  match3 scores match3
  match3 scores match3_endless --limit 25
  match3 scores match3 --clear
  match3 scores --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every stored score for the game")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-game statistics instead of the table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagStats && len(args) == 0 {
		return printAllStats(store)
	}

	gameID := "match3"
	if len(args) == 1 {
		gameID = args[0]
	}
	info, ok := findGame(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q (run 'match3 list' to see the variants)", gameID)
	}

	switch {
	case flagClearScores:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return nil

	case flagStats:
		stats, err := store.GetGameStats(gameID)
		if err != nil {
			return err
		}
		printStats(info.Title, stats)
		return nil
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", info.Title)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %s\n", "Rank", "Score", "Moves", "Run", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %s\n", "----", "-----", "-----", "---", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-8s  %s\n",
			i+1, e.Score, e.Moves, e.RunID.String()[:8], e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func findGame(id string) (registry.GameInfo, bool) {
	if id == benchGameID {
		return registry.GameInfo{ID: benchGameID, Title: "Autoplay"}, true
	}
	for _, g := range registry.List() {
		if g.ID == id {
			return g, true
		}
	}
	return registry.GameInfo{}, false
}

func printStats(title string, s *storage.GameStats) {
	fmt.Printf("%s\n", title)
	if s == nil || s.GamesCount == 0 {
		fmt.Println("  no games played")
		return
	}
	fmt.Printf("  games played: %d\n", s.GamesCount)
	fmt.Printf("  high score:   %d\n", s.HighScore)
	fmt.Printf("  average:      %.1f\n", s.AvgScore)
	fmt.Printf("  total:        %d\n", s.TotalScore)
	fmt.Printf("  last played:  %s\n", s.LastPlayed.Format("2006-01-02 15:04"))
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		title := id
		if info, ok := findGame(id); ok {
			title = info.Title
		}
		printStats(title, all[id])
	}
	return nil
}
