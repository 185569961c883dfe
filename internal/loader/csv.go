// Package loader reads CSV inputs into datasets and writes the summary
// and issue tables back out as CSV.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/probelens-labs/probelens/pkg/dataset"
)

// ReadOptions control CSV parsing.
type ReadOptions struct {
	Delimiter   rune
	NullMarkers []string
	Logger      *slog.Logger
}

// ReadCSV loads a headered CSV file into a dataset. Cells matching a
// null marker become null; cells that parse as a number are stored
// numerically; everything else stays text. Ragged records are an error.
func ReadCSV(path string, opts ReadOptions) (*dataset.Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("reading csv", "path", path)

	file, err := os.Open(path) //nolint:gosec // path comes from the user invocation
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nulls := make(map[string]struct{}, len(opts.NullMarkers))
	for _, marker := range opts.NullMarkers {
		nulls[marker] = struct{}{}
	}

	columns := make([]dataset.Column, len(header))
	for i, name := range header {
		columns[i].Name = strings.TrimSpace(name)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		for i := range columns {
			columns[i].Cells = append(columns[i].Cells, parseCell(record[i], nulls))
		}
	}

	ds, err := dataset.New(columns)
	if err != nil {
		return nil, fmt.Errorf("invalid CSV input: %w", err)
	}
	logger.Info("loaded dataset", "rows", ds.NumRows(), "columns", ds.NumCols())
	return ds, nil
}

// parseCell maps a raw CSV field to a value: null markers first, then a
// numeric reading, then text.
func parseCell(raw string, nulls map[string]struct{}) dataset.Value {
	if _, ok := nulls[strings.TrimSpace(raw)]; ok {
		return dataset.Null()
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return dataset.Number(n)
	}
	return dataset.Text(raw)
}
