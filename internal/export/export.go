// Package export writes a snapshot of the dashboard's filtered rows to
// CSV, XLSX or a PDF summary report.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/luki/iotdash/internal/aggregate"
	"github.com/luki/iotdash/internal/reading"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

const fileLayout = "20060102-150405"

// Format is an export file type.
type Format int

const (
	CSV Format = iota
	XLSX
	PDF
)

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	switch f {
	case XLSX:
		return "xlsx"
	case PDF:
		return "pdf"
	default:
		return "csv"
	}
}

func (f Format) String() string { return f.Ext() }

// ParseFormat resolves a format name such as "csv" or "XLSX".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return CSV, nil
	case "xlsx", "excel":
		return XLSX, nil
	case "pdf":
		return PDF, nil
	}
	return CSV, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Snapshot is the data written by an export.
type Snapshot struct {
	ID        string // dataset identifier
	Generated time.Time
	Filter    string // human-readable description of the active query
	Summary   aggregate.Summary
	Statuses  []aggregate.StatusCount
	Rows      []reading.Reading
}

// Header is the column row shared by CSV and XLSX output.
var Header = []string{"device_id", "sensor_type", "location", "value", "raw_value", "timestamp", "status"}

func record(r reading.Reading) []string {
	raw := ""
	if r.HasRaw {
		raw = strconv.FormatFloat(r.RawValue, 'f', -1, 64)
	}
	return []string{
		r.DeviceID,
		r.SensorType.String(),
		r.Location.String(),
		r.Value,
		raw,
		r.TimestampString(),
		r.Status.String(),
	}
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []reading.Reading) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Build renders the snapshot in format f.
func Build(s Snapshot, f Format) ([]byte, error) {
	switch f {
	case XLSX:
		return BuildXLSX(s)
	case PDF:
		return BuildPDF(s)
	default:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, s.Rows); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// FileName returns the default export name for a snapshot taken at t.
func FileName(f Format, t time.Time) string {
	return "iotdash-" + t.Format(fileLayout) + "." + f.Ext()
}

// Write renders the snapshot and stores it in dir under FileName,
// creating dir if needed. It returns the written path.
func Write(dir string, s Snapshot, f Format, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(f, now))
	return path, WriteFile(path, s, f)
}

// WriteFile renders the snapshot to an explicit path.
func WriteFile(path string, s Snapshot, f Format) error {
	data, err := Build(s, f)
	if err != nil {
		return fmt.Errorf("build %s: %w", f, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
