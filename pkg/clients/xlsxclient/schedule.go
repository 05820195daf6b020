package xlsxclient

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dateFormat  = "Mon Jan 02 2006"
	defaultTab  = "Sheet1"
	headerColor = "#E6F3FF"
)

var scheduleHeader = []string{"Date", "Shift", "Lead", "Staff", "Required"}

// PublishedScheduleRow represents a single row in the published schedule
type PublishedScheduleRow struct {
	Date     time.Time
	Start    string   // HH:MM, empty for all-day rows
	End      string   // HH:MM, empty for all-day rows
	Leads    []string // Display names of lead-capable staff
	Staff    []string // Display names of the remaining staff
	Required int
}

// PublishedSchedule represents one published week
type PublishedSchedule struct {
	WeekStart time.Time
	Rows      []PublishedScheduleRow
}

// PublishSchedule writes a week's schedule to a tab of the workbook at path.
// The tab is titled with the week's date range, e.g. "Mon Jan 01 2024 - Sun Jan 07 2024".
// An existing workbook keeps its other tabs; an existing tab for the same week is replaced.
// Returns the tab title.
func PublishSchedule(path string, schedule *PublishedSchedule) (string, error) {
	f, created, err := openOrCreate(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	title := TabTitle(schedule.WeekStart)

	index, err := f.GetSheetIndex(title)
	if err != nil {
		return "", fmt.Errorf("failed to look up tab: %w", err)
	}
	if index >= 0 {
		if err := clearSheet(f, title); err != nil {
			return "", err
		}
	} else {
		if _, err := f.NewSheet(title); err != nil {
			return "", fmt.Errorf("failed to create tab: %w", err)
		}
	}
	if created {
		// Drop the blank default sheet of a brand new workbook
		if err := f.DeleteSheet(defaultTab); err != nil {
			return "", fmt.Errorf("failed to remove default tab: %w", err)
		}
	}
	if index, err = f.GetSheetIndex(title); err != nil {
		return "", fmt.Errorf("failed to look up tab: %w", err)
	}
	f.SetActiveSheet(index)

	if err := writeHeader(f, title); err != nil {
		return "", err
	}

	for i, row := range schedule.Rows {
		values := []any{
			row.Date.Format(dateFormat),
			shiftLabel(row.Start, row.End),
			strings.Join(row.Leads, ", "),
			strings.Join(row.Staff, ", "),
			row.Required,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(title, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(title, "A", "B", 18); err != nil {
		return "", err
	}
	if err := f.SetColWidth(title, "C", "D", 40); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	return title, nil
}

// TabTitle formats the tab name for a week
func TabTitle(weekStart time.Time) string {
	end := weekStart.AddDate(0, 0, 6)
	return fmt.Sprintf("%s - %s", weekStart.Format(dateFormat), end.Format(dateFormat))
}

func openOrCreate(path string) (*excelize.File, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), true, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open workbook: %w", err)
	}
	return f, false, nil
}

// clearSheet removes every row of an existing tab so it can be rewritten in place
func clearSheet(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read existing tab: %w", err)
	}
	for i := len(rows); i >= 1; i-- {
		if err := f.RemoveRow(sheet, i); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string) error {
	header := make([]any, len(scheduleHeader))
	for i, h := range scheduleHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(scheduleHeader), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func shiftLabel(start, end string) string {
	if start == "" && end == "" {
		return "All day"
	}
	return start + "-" + end
}
