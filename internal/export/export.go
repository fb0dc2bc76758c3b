// Package export renders recorded marks as CSV, JSON, plain text or YAML.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"lapwatch/internal/core/model"
	"lapwatch/internal/core/timefmt"
)

// Format names an export representation.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatText Format = "txt"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{FormatCSV, FormatJSON, FormatText, FormatYAML}

// ParseFormat resolves a format name, defaulting to CSV.
func ParseFormat(value string) Format {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Formats {
		if format == known {
			return format
		}
	}
	return FormatCSV
}

// FileName returns the default file name for the format.
func (format Format) FileName() string {
	return "stopwatch_results." + string(format)
}

// Row is one exported mark with preformatted times.
type Row struct {
	Number  int
	Time    string
	Diff    string
	HasDiff bool
}

type documentRow struct {
	Number int     `json:"number" yaml:"number"`
	Time   string  `json:"time" yaml:"time"`
	Diff   *string `json:"diff" yaml:"diff"`
}

// Rows formats marks at the given precision.
func Rows(marks []model.Mark, precision model.Precision) []Row {
	rows := make([]Row, 0, len(marks))
	for _, mark := range marks {
		row := Row{
			Number: mark.Number,
			Time:   timefmt.Format(mark.Value, precision),
		}
		if mark.HasDiff {
			row.Diff = timefmt.FormatSigned(mark.Diff, precision)
			row.HasDiff = true
		}
		rows = append(rows, row)
	}
	return rows
}

// Write renders marks in format to w.
func Write(w io.Writer, format Format, marks []model.Mark, precision model.Precision) error {
	rows := Rows(marks, precision)
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatText:
		return writeText(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	default:
		return writeCSV(w, rows)
	}
}

// WriteFile renders marks into dir under the format's default file name
// and returns the written path.
func WriteFile(dir string, format Format, marks []model.Mark, precision model.Precision) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, format, marks, precision); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, format.FileName())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

func writeCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Number", "Time", "Difference"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{strconv.Itoa(row.Number), row.Time, row.Diff}); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.Number, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, rows []Row) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(documentRows(rows)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, rows []Row) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(documentRows(rows)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}

func writeText(w io.Writer, rows []Row) error {
	for _, row := range rows {
		line := fmt.Sprintf("%d. %s", row.Number, row.Time)
		if row.HasDiff {
			line += " (" + row.Diff + ")"
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write text row %d: %w", row.Number, err)
		}
	}
	return nil
}

func documentRows(rows []Row) []documentRow {
	out := make([]documentRow, 0, len(rows))
	for _, row := range rows {
		doc := documentRow{Number: row.Number, Time: row.Time}
		if row.HasDiff {
			diff := row.Diff
			doc.Diff = &diff
		}
		out = append(out, doc)
	}
	return out
}
