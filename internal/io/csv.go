package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/dataframe"
	dferrors "github.com/paveg/tabula/internal/errors"
)

// Read reads CSV data and returns a DataFrame.
//
// Records shorter than the header are padded with Missing cells; longer
// records are rejected. Without a header, columns are named column_0,
// column_1, ... after the width of the first record.
func (r *CSVReader) Read() (*dataframe.DataFrame, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.FieldsPerRecord = -1

	var headers []string
	var columns [][]cell.Cell
	records := 0

	for r.options.MaxRecords == 0 || records < r.options.MaxRecords {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}

		if headers == nil {
			headers = r.headers(record)
			columns = make([][]cell.Cell, len(headers))
			if r.options.Header {
				continue
			}
		}

		if len(record) > len(headers) {
			line, _ := csvReader.FieldPos(0)
			return nil, dferrors.NewInvalidInputError("ReadCSV",
				fmt.Sprintf("line %d has %d fields, want at most %d", line, len(record), len(headers)))
		}

		for i := range headers {
			c := cell.NA()
			if i < len(record) {
				c = parseField(record[i], r.options.NullValues, r.options.TrimSpace)
			}
			columns[i] = append(columns[i], c)
		}
		records++
	}

	// Handle empty CSV
	if headers == nil {
		headers = []string{}
	}

	res := newResolver("ReadCSV", r.options.MixedPolicy, r.options.Kinds, r.options.Logger)
	df, err := res.frame(headers, columns)
	if err != nil {
		return nil, err
	}

	res.logger.Debug("read CSV", "rows", df.Len(), "columns", df.Width())
	return df, nil
}

// headers names the columns from the first record
func (r *CSVReader) headers(first []string) []string {
	headers := make([]string, len(first))
	for i, field := range first {
		switch {
		case !r.options.Header:
			headers[i] = fmt.Sprintf("column_%d", i)
		case r.options.TrimSpace:
			headers[i] = strings.TrimSpace(field)
		default:
			headers[i] = field
		}
	}
	return headers
}

// Write writes the DataFrame to CSV format. Missing cells are written as the
// NA token.
func (w *CSVWriter) Write(df *dataframe.DataFrame) error {
	csvWriter := csv.NewWriter(w.writer)
	csvWriter.Comma = w.options.Delimiter

	// Write headers if required
	if w.options.Header {
		if err := csvWriter.Write(df.Columns()); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	fields := make([]string, df.Width())
	for i := range df.Len() {
		row, err := df.Row(i)
		if err != nil {
			return err
		}
		for j, c := range row {
			fields[j] = formatField(c, w.options.NAToken)
		}
		if err := csvWriter.Write(fields); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
