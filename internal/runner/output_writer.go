package runner

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rubrica/internal/report"
	"rubrica/internal/score"
)

// WriteEvaluation writes one student's artifacts: the raw evaluation as
// pretty JSON plus rendered HTML and Markdown reports.
func WriteEvaluation(paths StudentPaths, result score.EvaluationResult) error {
	if err := os.MkdirAll(paths.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(paths.ResultJSON, result); err != nil {
		return err
	}
	html, err := report.RenderHTML(result)
	if err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	if err := os.WriteFile(paths.ReportHTML, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(paths.ReportHTML), err)
	}
	md := report.RenderMarkdown(result)
	if err := os.WriteFile(paths.ReportMD, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(paths.ReportMD), err)
	}
	return nil
}

// WriteBatchOutputs writes the batch grade sheet in CSV and XLSX form
// plus the aggregate statistics as pretty JSON.
func WriteBatchOutputs(paths BatchPaths, results []score.EvaluationResult, summary BatchSummary) error {
	rows := gradeRows(results)
	if err := writeGradesCSV(paths.GradesCSV, rows); err != nil {
		return err
	}
	if err := writeGradesXLSX(paths.GradesXLSX, rows); err != nil {
		return err
	}
	return writeJSON(paths.StatsJSON, summary)
}

// writeJSON writes a payload as pretty JSON.
func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeGradesCSV(path string, rows []gradeRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(gradeHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Student, row.Partner, row.Repo, row.Grade, row.Status, row.Failure}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return file.Close()
}

func writeGradesXLSX(path string, rows []gradeRow) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	const sheet = "Grades"
	if err := workbook.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(gradeHeader))
	for i, col := range gradeHeader {
		header[i] = col
	}
	if err := workbook.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell name: %w", err)
		}
		values := []any{row.Student, row.Partner, row.Repo, row.Grade, row.Status, row.Failure}
		if err := workbook.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write xlsx row: %w", err)
		}
	}
	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}
