package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

// defaultImpactReport is where the workbook goes when --out is not given.
const defaultImpactReport = "impact_analysis_report_with_tests.xlsx"

var (
	impactOut    string
	impactAPIKey string
)

var impactCmd = &cobra.Command{
	Use:   "impact OLD.xsd NEW.xsd",
	Short: "Compare two schemas and write the impact workbook",
	Long: `Compares two XSD schema versions, prints the change table and asks the
configured language model for an impact summary and a test scenario per
change. The results are written to an Excel workbook with an
"Impact Analysis" sheet and a "Changes" sheet.

The API key is taken from --api-key, then SCHEMADIFF_LLM_API_KEY, then
GEMINI_API_KEY (Gemini only, .env files are honoured), then settings.`,
	Args: cobra.ExactArgs(2),
	RunE: runImpact,
}

func init() {
	impactCmd.Flags().StringVarP(&impactOut, "out", "o", defaultImpactReport, "impact workbook path")
	impactCmd.Flags().StringVar(&impactAPIKey, "api-key", "", "LLM API key (overrides environment and settings)")
	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, args []string) error {
	if compareService == nil {
		return errors.New("compare service not configured")
	}

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := compareService.CompareFiles(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	if err := writeReport(cmd.OutOrStdout(), report, domain.ReportFormatTable); err != nil {
		return err
	}

	return generateImpact(ctx, cmd, settings, report, impactOut, impactAPIKey)
}

// generateImpact assesses every change and writes the workbook.
// A missing model only skips the workbook; the diff has already been printed.
func generateImpact(
	ctx context.Context,
	cmd *cobra.Command,
	settings *domain.AppSettings,
	report *domain.ComparisonReport,
	outPath, apiKey string,
) error {
	if impactFactory == nil {
		return errors.New("impact service not configured")
	}
	if reportWriter == nil {
		return errors.New("report writer not configured")
	}
	if outPath == "" {
		outPath = defaultImpactReport
	}

	llm := resolveLLMSettings(settings.LLM, apiKey)
	svc, warnings, closeFn := impactFactory(llm, settings.Impact)
	if closeFn != nil {
		defer closeFn()
	}
	for _, w := range warnings {
		cmd.Printf("Note: %s\n", w)
	}
	if svc == nil {
		cmd.Println("Impact workbook skipped: no language model available.")
		return nil
	}

	cmd.Printf("\nGenerating impact summaries for %d change(s)...\n", len(report.Changes))
	assessments, assessErr := svc.Assess(ctx, report.Changes)
	if errors.Is(assessErr, domain.ErrLLMUnavailable) {
		cmd.Printf("Impact workbook skipped: %v\n", assessErr)
		return nil
	}

	// Cancellation still leaves the assessments produced so far.
	if err := reportWriter.WriteImpactReport(outPath, report, assessments); err != nil {
		return fmt.Errorf("failed to write impact report: %w", err)
	}

	failed := 0
	for i := range assessments {
		if assessments[i].Failed() {
			failed++
		}
	}
	cmd.Printf("Impact report written to %s (%d assessed, %d failed)\n", outPath, len(assessments), failed)

	if assessErr != nil {
		return fmt.Errorf("impact assessment interrupted: %w", assessErr)
	}
	return nil
}
