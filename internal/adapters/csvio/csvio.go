// Package csvio reads the hotel and date input files and writes the price table.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// dateLayouts are tried in order for each date row.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006/1/2", "20060102"}

// ReadHotelNos returns the first column of every row after the header.
func ReadHotelNos(path string) ([]string, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for i, row := range rows {
		if i == 0 {
			continue
		}
		out = append(out, strings.TrimSpace(row[0]))
	}
	return out, nil
}

// ReadStayDates returns one date per row. Rows that do not parse, including
// a header if present, are skipped.
func ReadStayDates(path string) ([]time.Time, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for _, row := range rows {
		if d, ok := ParseDate(row[0]); ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// ParseDate parses s with the accepted date layouts, in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	for _, l := range dateLayouts {
		if d, err := time.Parse(l, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// WriteTable writes rows as header-less CSV, creating parent directories.
func WriteTable(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	if err := Write(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Write encodes rows to w.
func Write(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}
	return nil
}

// readAll returns every well-formed row of path. Rows the csv reader rejects
// are logged and dropped.
func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			// the reader has consumed the bad line; keep going
			log.Warn().Err(err).Str("path", path).Int("line", pe.Line).Msg("skipping malformed csv row")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read %q: %w", path, err)
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
