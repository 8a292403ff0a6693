// internal/infra/refdata/refdata.go
package refdata

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nice_day_bot/internal/domain/organclock"
)

//go:embed organ_rhythm.csv
var organRhythmCSV []byte

var ErrEmptyCSV = errors.New("csv has no header row")

// ParseCSV reads a header-first CSV document and returns one map per data row keyed by the
// trimmed header names. Quoted fields may contain commas. Blank lines are skipped and rows
// whose field count differs from the header are rejected.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]map[string]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, key := range header {
			row[key] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadOrganSchedule parses the embedded organ rhythm table.
func LoadOrganSchedule() (*organclock.Schedule, error) {
	return ParseOrganSchedule(bytes.NewReader(organRhythmCSV))
}

// ParseOrganSchedule builds a schedule from a CSV with the columns
// timeRange, organ, description, activities, tips.
func ParseOrganSchedule(r io.Reader) (*organclock.Schedule, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}

	windows := make([]organclock.Window, 0, len(rows))
	for i, row := range rows {
		start, end, err := parseTimeRange(row["timeRange"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		windows = append(windows, organclock.Window{
			Start:       start,
			End:         end,
			Organ:       row["organ"],
			Description: row["description"],
			Activities:  row["activities"],
			Tips:        row["tips"],
		})
	}
	return organclock.NewSchedule(windows)
}

// parseTimeRange accepts "5:00 - 7:00" and "05:00-07:00".
func parseTimeRange(s string) (int, int, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time range %q", s)
	}
	start, err := parseHour(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time range %q: %w", s, err)
	}
	end, err := parseHour(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time range %q: %w", s, err)
	}
	return start, end, nil
}

func parseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	hourPart, _, _ := strings.Cut(s, ":")
	h, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 24 {
		return 0, fmt.Errorf("hour %d out of range", h)
	}
	return h % 24, nil
}
