package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mlplay/internal/content"
	"github.com/abhisek/mlplay/internal/progress"
	"github.com/abhisek/mlplay/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics without launching the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := loadConfig()

		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		registry := content.New()
		progStore := progress.NewStore(st.ProgressDocs(), registry, zap.NewNop())
		state := progStore.Load(ctx)

		today := time.Now().Format(progress.DateLayout)
		fmt.Printf("Streak: %d day(s) (longest %d)\n",
			state.Streak.EffectiveCurrent(today), state.Streak.Longest)

		fmt.Println("\nLast 7 days:")
		for _, dc := range progStore.ActivityCounts(7) {
			bar := strings.Repeat("█", dc.Count)
			fmt.Printf("  %s  %3d  %s\n", dc.Date, dc.Count, bar)
		}

		fmt.Println("\nTiers:")
		for _, tierID := range registry.TierIDs() {
			if !progStore.TierUnlocked(tierID) {
				fmt.Printf("  %-16s locked\n", tierID)
				continue
			}
			fmt.Printf("  %-16s %3.0f%%\n", tierID, progStore.CompletionFraction(tierID)*100)
		}

		if len(state.Badges) > 0 {
			fmt.Println("\nBadges:")
			for _, id := range []string{progress.BadgeFirstModule, progress.BadgeFirstChallenge, progress.BadgeStreakWeek} {
				if state.Badges[id] {
					fmt.Printf("  %s\n", id)
				}
			}
			for _, tierID := range registry.TierIDs() {
				if state.Badges[progress.BadgeTierPrefix+tierID] {
					fmt.Printf("  %s%s\n", progress.BadgeTierPrefix, tierID)
				}
			}
		}

		return nil
	},
}
