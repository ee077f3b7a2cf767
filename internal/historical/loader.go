package historical

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Required CSV columns.
const (
	colDate  = "Date"
	colYear  = "Year"
	colMonth = "Month"
	colMean  = "Mean Temperature (C)"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"1/2/2006",
	"2006-01",
}

// LoadFile reads the dataset at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open historical data: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Load parses a CSV with a header row containing at least Date, Year, Month
// and "Mean Temperature (C)". Columns are located by name, extra columns are
// ignored. Any unparseable row fails the whole load.
func Load(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range []string{colDate, colYear, colMonth, colMean} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, col)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	field := func(col string) string { return strings.TrimSpace(row[idx[col]]) }

	date, err := parseDate(field(colDate))
	if err != nil {
		return Record{}, err
	}
	year, err := strconv.Atoi(field(colYear))
	if err != nil {
		return Record{}, fmt.Errorf("year: %w", err)
	}
	month, err := strconv.Atoi(field(colMonth))
	if err != nil {
		return Record{}, fmt.Errorf("month: %w", err)
	}
	if month < 1 || month > 12 {
		return Record{}, fmt.Errorf("month %d out of range", month)
	}
	mean, err := strconv.ParseFloat(field(colMean), 64)
	if err != nil {
		return Record{}, fmt.Errorf("mean temperature: %w", err)
	}

	return Record{Date: date, MeanTemperature: mean, Year: year, Month: month}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: unrecognised format", s)
}
