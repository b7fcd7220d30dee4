package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

// Ensure XLSXWriter implements the interface.
var _ driven.ReportWriter = (*XLSXWriter)(nil)

// DefaultFilename is used when no output path is given.
const DefaultFilename = "impact_analysis_report_with_tests.xlsx"

// Sheet names.
const (
	SheetImpact  = "Impact Analysis"
	SheetChanges = "Changes"
)

var (
	impactHeader  = []any{"Change Type", "Element Path", "Impact Summary", "Test Scenario"}
	changesHeader = []any{"Change Type", "Element Path", "Old Type", "New Type", "Annotation"}
)

// XLSXWriter writes the impact report as an Excel workbook.
type XLSXWriter struct{}

// NewXLSXWriter creates a new spreadsheet writer.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// WriteImpactReport writes the assessments and the change table to path.
func (w *XLSXWriter) WriteImpactReport(
	path string,
	report *domain.ComparisonReport,
	assessments []domain.ImpactAssessment,
) (err error) {
	if path == "" {
		path = DefaultFilename
	}
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("%w: report path %q must end in .xlsx", domain.ErrInvalidInput, path)
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetImpact); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetChanges); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("create wrap style: %w", err)
	}

	impactRows := make([][]any, 0, len(assessments))
	for _, a := range assessments {
		impactRows = append(impactRows, []any{
			a.Change.Kind.Label(), a.Change.Path, a.ImpactSummary, a.TestScenario,
		})
	}
	if err := writeSheet(f, SheetImpact, impactHeader, impactRows, header); err != nil {
		return err
	}

	var changes []domain.ChangeRecord
	if report != nil {
		changes = report.Changes
	}
	changeRows := make([][]any, 0, len(changes))
	for _, c := range changes {
		changeRows = append(changeRows, []any{
			c.Kind.Label(), c.Path, c.OldType, c.NewType, c.Annotation,
		})
	}
	if err := writeSheet(f, SheetChanges, changesHeader, changeRows, header); err != nil {
		return err
	}

	if err := layout(f, wrap, len(impactRows)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	logger.Info("Wrote %d assessments to %s", len(assessments), path)
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// layout sets column widths and wraps the narrative columns.
func layout(f *excelize.File, wrap, impactRows int) error {
	widths := []struct {
		sheet    string
		from, to string
		width    float64
	}{
		{SheetImpact, "A", "A", 20},
		{SheetImpact, "B", "B", 45},
		{SheetImpact, "C", "D", 80},
		{SheetChanges, "A", "A", 20},
		{SheetChanges, "B", "B", 45},
		{SheetChanges, "C", "E", 20},
	}
	for _, w := range widths {
		if err := f.SetColWidth(w.sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if impactRows > 0 {
		last, err := excelize.CoordinatesToCellName(4, impactRows+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetImpact, "C2", last, wrap); err != nil {
			return fmt.Errorf("wrap narrative: %w", err)
		}
	}
	return nil
}
