package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

var (
	compareFormat string
	compareImpact bool
	compareOut    string
	compareAPIKey string
	compareWatch  bool
)

var compareCmd = &cobra.Command{
	Use:   "compare OLD.xsd NEW.xsd",
	Short: "Compare two XSD schema versions",
	Long: `Flattens both schemas starting at the top-level Document element and
prints every element path that was added, removed, changed type or gained
the annotation marker.

With --impact a language model also writes an impact summary and a test
scenario for each change into an Excel workbook. Without an API key the
diff is still printed and the workbook is skipped.

Examples:
  schemadiff compare v1.xsd v2.xsd
  schemadiff compare v1.xsd v2.xsd --format json
  schemadiff compare v1.xsd v2.xsd --impact --out report.xlsx
  schemadiff compare v1.xsd v2.xsd --watch`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "", "output format: table, json or yaml (default from settings)")
	compareCmd.Flags().BoolVar(&compareImpact, "impact", false, "generate the impact workbook")
	compareCmd.Flags().StringVarP(&compareOut, "out", "o", "", "impact workbook path (default "+defaultImpactReport+")")
	compareCmd.Flags().StringVar(&compareAPIKey, "api-key", "", "LLM API key (overrides environment and settings)")
	compareCmd.Flags().BoolVarP(&compareWatch, "watch", "w", false, "re-run the comparison whenever either file changes")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if compareService == nil {
		return errors.New("compare service not configured")
	}

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	format := settings.Report.Format
	if compareFormat != "" {
		format = domain.ReportFormat(compareFormat)
	}
	if !format.IsValid() {
		return fmt.Errorf("%w: unknown format %q (use table, json or yaml)", domain.ErrInvalidInput, compareFormat)
	}

	oldPath, newPath := args[0], args[1]
	if err := compareOnce(cmd, settings, oldPath, newPath, format); err != nil {
		return err
	}

	if !compareWatch {
		return nil
	}
	if schemaWatcher == nil {
		return errors.New("schema watcher not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.Printf("\nWatching %s and %s for changes (Ctrl+C to stop)...\n", oldPath, newPath)
	return schemaWatcher.Watch(ctx, []string{oldPath, newPath}, func(changed string) {
		cmd.Printf("\n%s changed, comparing again\n", changed)
		if err := compareOnce(cmd, settings, oldPath, newPath, format); err != nil {
			// Keep watching; the file may be mid-save.
			cmd.PrintErrf("Error: %v\n", err)
		}
	})
}

// compareOnce prints the diff and, when requested, writes the impact workbook.
func compareOnce(cmd *cobra.Command, settings *domain.AppSettings, oldPath, newPath string, format domain.ReportFormat) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := compareService.CompareFiles(ctx, oldPath, newPath)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	logger.Debug("Run %s: %d change(s)", report.RunID, len(report.Changes))

	if err := writeReport(cmd.OutOrStdout(), report, format); err != nil {
		return err
	}

	if !compareImpact {
		return nil
	}
	return generateImpact(ctx, cmd, settings, report, compareOut, compareAPIKey)
}
