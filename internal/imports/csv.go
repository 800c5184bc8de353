package imports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// AllergenSeparator splits multiple allergens inside one CSV cell.
const AllergenSeparator = ";"

// ReadCSV turns a CSV document with a header row into rows. Empty cells are left out
// and lines with more cells than the header are reported together.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var (
		rows    = []Row{}
		readErr error
		line    = 1
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, multierr.Append(readErr, fmt.Errorf("read csv line %d: %w", line, err))
		}
		if len(record) > len(header) {
			readErr = multierr.Append(readErr, fmt.Errorf("csv line %d has %d cells, header has %d", line, len(record), len(header)))
			continue
		}

		row := make(Row, len(record))
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" || header[i] == "" {
				continue
			}
			if header[i] == "allergens" && strings.Contains(cell, AllergenSeparator) {
				parts := strings.Split(cell, AllergenSeparator)
				list := make([]any, 0, len(parts))
				for _, p := range parts {
					list = append(list, p)
				}
				row[header[i]] = list
				continue
			}
			row[header[i]] = cell
		}
		rows = append(rows, row)
	}

	if readErr != nil {
		return nil, readErr
	}
	return rows, nil
}
