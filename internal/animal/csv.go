package animal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadCSV decodes an AAC outcomes export into records. Columns are matched
// by header name, so column order and extra columns do not matter. Rows
// that decode to an entirely empty record are dropped.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}

		doc := make(map[string]any, len(columns))
		for i, value := range row {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			doc[columns[i]] = value
		}
		record := FromDocument(doc)
		if record.IsZero() {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
