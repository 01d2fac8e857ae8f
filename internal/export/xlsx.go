package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/kidscreen/internal/questionnaire"
	"github.com/abhisek/kidscreen/internal/store"
)

// SheetName is the worksheet submissions are written to.
const SheetName = "Submissions"

var leadingColumns = []string{"submission_id", "timestamp", "status", "prediction", "latency_ms"}

// Header returns the column titles: submission metadata followed by one
// column per questionnaire field in canonical order.
func Header() []string {
	cols := append([]string{}, leadingColumns...)
	return append(cols, questionnaire.FieldNames()...)
}

// Workbook builds an xlsx workbook holding one row per submission.
func Workbook(subs []store.Submission) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", SheetName); err != nil {
		wb.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := Header()
	if err := writeRow(wb, 1, toAny(header)); err != nil {
		wb.Close()
		return nil, err
	}

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		wb.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := wb.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		wb.Close()
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, sub := range subs {
		if err := writeRow(wb, i+2, submissionRow(sub)); err != nil {
			wb.Close()
			return nil, err
		}
	}

	if err := wb.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		wb.Close()
		return nil, fmt.Errorf("freeze header: %w", err)
	}
	return wb, nil
}

// Write streams the workbook for subs to w.
func Write(w io.Writer, subs []store.Submission) error {
	wb, err := Workbook(subs)
	if err != nil {
		return err
	}
	defer wb.Close()
	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// Save writes the workbook for subs to path.
func Save(path string, subs []store.Submission) error {
	if path == "" {
		return errors.New("xlsx path is empty")
	}
	wb, err := Workbook(subs)
	if err != nil {
		return err
	}
	defer wb.Close()
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %s: %w", path, err)
	}
	return nil
}

func submissionRow(sub store.Submission) []any {
	status := "ok"
	if !sub.Success {
		status = "error"
	}
	row := []any{
		sub.SubmissionID,
		sub.Timestamp.UTC().Format(time.RFC3339),
		status,
		sub.Prediction,
		sub.LatencyMs,
	}
	for _, name := range questionnaire.FieldNames() {
		row = append(row, sub.Answers[name])
	}
	return row
}

func writeRow(wb *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := wb.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
