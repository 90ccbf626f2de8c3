package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/whatsapp-notebooklm/internal/config"
	"github.com/whatsapp-notebooklm/internal/models"
	"github.com/whatsapp-notebooklm/internal/storage"
	"github.com/whatsapp-notebooklm/internal/ui"
)

// ErrHistoryDisabled is returned when no run history backend is configured
var ErrHistoryDisabled = errors.New("run history requires SUPABASE_URL and SUPABASE_KEY")

// ErrInvalidLimit is returned for a non-positive --limit
var ErrInvalidLimit = errors.New("limit must be positive")

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "show recent conversion runs",
		Long: `Show the most recent conversion runs recorded in Supabase.

Runs are recorded only when SUPABASE_URL and SUPABASE_KEY are set.`,
		Example: `  # Show the last 10 runs
  $ whatsapp2notebook history

  # Show the last 50 runs
  $ whatsapp2notebook history -n 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				err := fmt.Errorf("%w, got %d", ErrInvalidLimit, limit)
				ui.PrintError("%v", err)
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}
			if !cfg.HistoryEnabled() {
				ui.PrintError("%v", ErrHistoryDisabled)
				return ErrHistoryDisabled
			}

			logger := setupLogger(cfg.LogLevel, cfg.Environment, cmd.ErrOrStderr())
			client, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseTimeout, logger)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}

			runs, err := client.RecentRuns(cmd.Context(), limit)
			if err != nil {
				ui.PrintError("failed to load history: %v", err)
				return err
			}

			printHistory(cmd.OutOrStdout(), runs)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	return cmd
}

func printHistory(w io.Writer, runs []*models.ConversionRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No conversion runs recorded yet.")
		return
	}

	for _, run := range runs {
		status := "ok"
		if !run.Succeeded() {
			status = "failed: " + run.ErrorMessage
		}
		fmt.Fprintf(w, "%s  %-28s  %3d files  %6d lines  %s\n",
			run.CreatedAt.Local().Format(time.DateTime),
			run.ChatFile,
			len(run.Files),
			run.LineCount,
			status,
		)
	}
}
