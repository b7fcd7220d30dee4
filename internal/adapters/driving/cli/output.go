package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

var changeHeaders = []string{"Change Type", "Element Path", "Old Type", "New Type", "Annotation"}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// writeReport renders the change table in the requested format.
func writeReport(w io.Writer, report *domain.ComparisonReport, format domain.ReportFormat) error {
	if report != nil && report.Changes == nil {
		normalised := *report
		normalised.Changes = []domain.ChangeRecord{}
		report = &normalised
	}

	switch format {
	case domain.ReportFormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case domain.ReportFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return enc.Close()

	case domain.ReportFormatTable, "":
		_, err := fmt.Fprint(w, renderTable(report))
		return err

	default:
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
	}
}

// renderTable returns the change table followed by a one-line summary.
func renderTable(report *domain.ComparisonReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comparing %s -> %s\n", report.OldSource, report.NewSource)

	if !report.HasChanges() {
		b.WriteString("No differences found.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(report.Changes))
	for i := range report.Changes {
		c := report.Changes[i]
		rows = append(rows, []string{c.Kind.Label(), c.Path, c.OldType, c.NewType, c.Annotation})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(changeHeaders...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(summaryLine(report))
	b.WriteString("\n")
	return b.String()
}

// summaryLine counts the changes per kind, in report order.
func summaryLine(report *domain.ComparisonReport) string {
	counts := report.Counts()
	parts := make([]string, 0, len(domain.AllChangeKinds()))
	for _, kind := range domain.AllChangeKinds() {
		parts = append(parts, fmt.Sprintf("%s: %d", strings.ToLower(kind.Label()), counts[kind]))
	}
	return fmt.Sprintf("%d change(s) (%s)", len(report.Changes), strings.Join(parts, ", "))
}
