package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "summary"
	readingSheet = "readings"
)

// BuildXLSX renders a workbook with a summary sheet and a readings sheet.
func BuildXLSX(s Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(readingSheet); err != nil {
		return nil, err
	}

	summary := [][]any{
		{"IoT Dashboard Snapshot"},
		{},
		{"Snapshot", s.ID},
		{"Generated", s.Generated.UTC().Format(time.RFC3339)},
		{"Filter", s.Filter},
		{"Total Devices", s.Summary.TotalDevices},
		{"Active Sensors", s.Summary.ActiveSensors},
		{"Alerts", s.Summary.Alerts},
		{"Rows Exported", len(s.Rows)},
	}
	for _, sc := range s.Statuses {
		summary = append(summary, []any{sc.Status.String(), sc.Count})
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(readingSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, r := range s.Rows {
		row := []any{r.DeviceID, r.SensorType.String(), r.Location.String(), r.Value, nil, r.TimestampString(), r.Status.String()}
		if r.HasRaw {
			row[4] = r.RawValue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(readingSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPDF renders a one-document report: headline figures, status
// distribution and the exported rows as a table.
func BuildPDF(s Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "IoT Dashboard Snapshot")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Snapshot: %s", s.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", s.Generated.UTC().Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Filter: %s", s.Filter))
	pdf.Ln(8)

	pdf.Cell(0, 6, fmt.Sprintf("Total Devices: %d", s.Summary.TotalDevices))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Active Sensors: %d", s.Summary.ActiveSensors))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Alerts: %d", s.Summary.Alerts))
	pdf.Ln(5)
	for _, sc := range s.Statuses {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", sc.Status, sc.Count))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	widths := []float64{22, 28, 34, 26, 40, 22}
	cols := []string{"Device ID", "Sensor Type", "Location", "Value", "Timestamp", "Status"}
	pdf.SetFont("Arial", "B", 9)
	for i, c := range cols {
		pdf.CellFormat(widths[i], 6, c, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	// The core fonts are cp1252; translate so "°C" survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 9)
	for _, r := range s.Rows {
		cells := []string{r.DeviceID, r.SensorType.String(), r.Location.String(), tr(r.Value), r.TimestampString(), r.Status.String()}
		for i, c := range cells {
			align := "L"
			if i == 3 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
