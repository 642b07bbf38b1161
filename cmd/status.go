package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjornpagen/qtiforge/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status <run-id>",
	Short: "Show the state of a pipeline run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		run, err := st.RunRepo().GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no run with ID %q", args[0])
		}

		fmt.Printf("run:     %s\n", run.RunID)
		fmt.Printf("course:  %s\n", run.CourseID)
		fmt.Printf("state:   %s\n", run.State)
		fmt.Printf("started: %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("updated: %s\n", run.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}
