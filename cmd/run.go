package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mlplay/internal/app"
	"github.com/abhisek/mlplay/internal/content"
	"github.com/abhisek/mlplay/internal/logging"
	"github.com/abhisek/mlplay/internal/progress"
	"github.com/abhisek/mlplay/internal/store"
	"github.com/abhisek/mlplay/internal/ui/theme"
)

// backupsToKeep bounds how many progress backups accumulate in the DB.
const backupsToKeep = 10

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := loadConfig()
	theme.Use(cfg.Theme)

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, closeLog, err := logging.New(verbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.PruneBackups(ctx, backupsToKeep); err != nil {
		logger.Warn("prune backups failed", zap.Error(err))
	}

	registry := content.New()
	progStore := progress.NewStore(st.ProgressDocs(), registry, logger)
	state := progStore.Load(ctx)

	// Persisted learner settings win over the config file.
	if state.Settings.Theme != "" {
		theme.Use(state.Settings.Theme)
	}

	return app.Run(app.Options{
		Progress: progStore,
		Registry: registry,
		Logger:   logger,
	})
}
