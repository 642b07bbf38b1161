package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjornpagen/qtiforge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "qtiforge",
	Short: "Generate, validate and assemble QTI assessment content",
	Long: "Qtiforge expands a course's canonical question bank into AI-generated " +
		"variants, validates each one against the content service, and assembles " +
		"the surviving items into QTI test documents.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite run database (overrides QTIFORGE_DB env var)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QTIFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newLogger builds the process logger. Debug level with --verbose,
// production JSON otherwise.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
