package attendance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Attendance"

var reportHeader = []string{"Name", "Email", "Total Present", "Total Absent", "Average Work Hours"}

// ExportFormat: desteklenen rapor formatları
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
)

func (f ExportFormat) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func ExportFileName(r *HistoryReport, f ExportFormat) string {
	return fmt.Sprintf("attendance-report-%s.%s", r.Period, f)
}

func WriteHistory(w io.Writer, r *HistoryReport, f ExportFormat) error {
	switch f {
	case FormatCSV:
		return WriteHistoryCSV(w, r)
	case FormatXLSX:
		return WriteHistoryXLSX(w, r)
	default:
		return fmt.Errorf("desteklenmeyen format: %q", f)
	}
}

func WriteHistoryCSV(w io.Writer, r *HistoryReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, row := range r.History {
		if err := cw.Write([]string{
			row.Name,
			row.Email,
			strconv.Itoa(row.TotalPresent),
			strconv.Itoa(row.TotalAbsent),
			row.AvgWorkHours,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistoryXLSX: başlık bloğu (dönem, gün sayısı) + tablo
func WriteHistoryXLSX(w io.Writer, r *HistoryReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return err
	}

	_ = f.SetCellValue(reportSheet, "A1", "Attendance Report")
	_ = f.SetCellValue(reportSheet, "A2", "Period: "+r.Month)
	_ = f.SetCellValue(reportSheet, "A3", fmt.Sprintf("Total Working Days: %d", r.TotalDays))

	header := make([]interface{}, len(reportHeader))
	for i, h := range reportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A5", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(reportSheet, "A1", "A1", bold)
	_ = f.SetCellStyle(reportSheet, "A5", "E5", bold)

	for i, row := range r.History {
		cell, err := excelize.CoordinatesToCellName(1, 6+i)
		if err != nil {
			return err
		}
		values := []interface{}{row.Name, row.Email, row.TotalPresent, row.TotalAbsent, row.AvgWorkHours}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(reportSheet, "A", "B", 28)
	_ = f.SetColWidth(reportSheet, "C", "E", 18)

	return f.Write(w)
}
