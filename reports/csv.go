package reports

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVWriter writes the whole report as one flat CSV file with untruncated values.
type CSVWriter struct{}

func (CSVWriter) ContentType() string {
	return "text/csv"
}

func (CSVWriter) Write(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	header := [][]string{{r.Title}, {r.Generated()}}
	if caption := r.DateRange(); caption != "" {
		header = append(header, []string{caption})
	}
	header = append(header, []string{})
	if err := cw.WriteAll(header); err != nil {
		return fmt.Errorf("error writing report header: %w", err)
	}

	for i := range r.Sections {
		s := &r.Sections[i]
		records := make([][]string, 0, len(s.Rows)+3)
		records = append(records, []string{s.CSVLabel()})

		headers := make([]string, len(s.Columns))
		for j, col := range s.Columns {
			headers[j] = col.Header
		}
		records = append(records, headers)

		for _, row := range s.Rows {
			record := make([]string, len(row))
			for j, cell := range row {
				record[j] = cell.Raw
			}
			records = append(records, record)
		}
		records = append(records, []string{})

		if err := cw.WriteAll(records); err != nil {
			return fmt.Errorf("error writing %s section: %w", s.Title, err)
		}
	}
	return nil
}
