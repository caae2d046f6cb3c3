package chart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSV writes aligned columns under a header row, one column per
// header entry, creating parent directories as needed.
func WriteCSV(path string, header []string, cols [][]float64) error {
	if len(cols) == 0 {
		return errors.New("chart: no columns to write")
	}
	if len(header) != len(cols) {
		return fmt.Errorf("chart: %v header entries for %v columns", len(header), len(cols))
	}
	n := len(cols[0])
	for _, col := range cols {
		if len(col) != n {
			return errors.New("chart: column lengths differ")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("chart: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: cannot create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return fmt.Errorf("chart: cannot write header: %w", err)
	}
	row := make([]string, len(cols))
	for r := 0; r < n; r++ {
		for c := range cols {
			row[c] = fmt.Sprintf("%.15g", cols[c][r])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("chart: cannot write row %v: %w", r, err)
		}
	}
	return nil
}
