// Package ingest reads uploaded transaction files (CSV, OFX/QFX) into raw
// records for the normalizer. Column names are passed through untouched so
// the normalizer's alias tables can resolve whatever the source called them.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/verocta-ai/spendscore/internal/common"
	"github.com/verocta-ai/spendscore/internal/model"
)

// CSVReader parses header-driven CSV exports.
type CSVReader struct{}

// NewCSVReader creates a new CSV reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Read parses CSV content into raw records. Every data row produces exactly
// one record; rows with too few fields keep whatever columns they have so
// the record count is preserved for the engine.
func (r *CSVReader) Read(reader io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, common.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Strip a UTF-8 BOM from exports that carry one.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []model.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(records)+2, err)
		}

		rec := make(model.RawRecord, len(header))
		for i, value := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			rec[header[i]] = value
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, common.ErrEmptyFile
	}

	slog.Debug("parsed CSV file", "columns", len(header), "records", len(records))

	return records, nil
}
