package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjornpagen/qtiforge/internal/catalog"
	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/contentsvc"
	"github.com/bjornpagen/qtiforge/internal/llm"
	"github.com/bjornpagen/qtiforge/internal/pipeline"
	"github.com/bjornpagen/qtiforge/internal/probe"
	"github.com/bjornpagen/qtiforge/internal/retry"
	"github.com/bjornpagen/qtiforge/internal/store"
	"github.com/bjornpagen/qtiforge/internal/variantgen"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute or resume a pipeline run for a course",
	Long: "Runs the full pipeline: discover the course catalog, generate question " +
		"variants, validate them against the content service, paraphrase passages " +
		"and assemble test documents. Pass --run-id to resume an interrupted run; " +
		"completed work is replayed from the run database, not re-executed.",
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().String("course", "", "Course ID to process (required for new runs)")
	runCmd.Flags().String("run-id", "", "Resume the run with this ID")
	runCmd.Flags().String("config", "", "Path to YAML config file")
	runCmd.Flags().String("output", "", "Output directory for artifacts (overrides config)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	courseID, _ := cmd.Flags().GetString("course")
	runID, _ := cmd.Flags().GetString("run-id")
	if courseID == "" && runID == "" {
		return fmt.Errorf("either --course or --run-id is required")
	}

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		return err
	}
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
	if err != nil {
		return err
	}

	runner := retry.NewRunner(retry.DefaultConfig(), log)
	content := contentsvc.NewClient(cfg.ContentService, log)

	orch := pipeline.New(
		cfg,
		catalog.NewClient(cfg.Catalog, log),
		variantgen.New(provider, cfg.Generation),
		probe.New(content, runner, cfg.ItemProbe, log),
		probe.New(content, runner, cfg.DocumentProbe, log),
		st.RunRepo(),
		runner,
		log,
	)

	summary, err := orch.Run(ctx, runID, courseID)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d items validated (%d skipped), %d paraphrases, %d tests assembled (%d skipped)\n",
		summary.RunID,
		summary.ValidatedItems, summary.SkippedItems,
		summary.Paraphrases,
		summary.Tests, summary.SkippedTests)

	if n := summary.ErrorCount(); n > 0 {
		return fmt.Errorf("%d failures recorded, see %s/report.json", n, cfg.OutputDir)
	}
	return nil
}
