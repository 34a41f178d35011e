package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mlplay/internal/content"
	"github.com/abhisek/mlplay/internal/progress"
	"github.com/abhisek/mlplay/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress (a backup is kept in the database)",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This resets all progress. Re-run with --yes to confirm.")
			return nil
		}

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
		progStore.Load(ctx)
		progStore.Reset(ctx)

		fmt.Println("Progress reset. Previous state was backed up.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
