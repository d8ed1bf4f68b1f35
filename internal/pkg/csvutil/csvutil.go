// Package csvutil writes in-memory CSV exports returned as file downloads.
package csvutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Write renders a header row plus data rows as CSV bytes. Field escaping
// follows RFC 4180 via encoding/csv.
func Write(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
