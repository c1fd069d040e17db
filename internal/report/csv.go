package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// WriteGapsCSV exports the report's gap entries as a CSV file for
// spreadsheet follow-up.
func WriteGapsCSV(rep *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create gap export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "counterpart", "missing", "priority"}); err != nil {
		return fmt.Errorf("failed to write gap export header: %w", err)
	}

	for _, gap := range rep.Gaps {
		row := []string{
			gap.Date,
			gap.Counterpart,
			strings.Join(gap.Missing, ";"),
			strconv.FormatFloat(gap.Priority, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write gap export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush gap export: %w", err)
	}
	return nil
}
