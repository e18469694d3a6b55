package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/dataframe"
	dferrors "github.com/paveg/tabula/internal/errors"
)

// jsonField is one key/value pair of a record, in document order.
type jsonField struct {
	name  string
	value cell.Cell
}

// jsonTable gathers records into columns. Columns are ordered by first
// appearance; keys missing from a record read as Missing.
type jsonTable struct {
	names   []string
	index   map[string]int
	columns [][]cell.Cell
	rows    int
}

func newJSONTable() *jsonTable {
	return &jsonTable{names: []string{}, index: make(map[string]int)}
}

func (t *jsonTable) add(fields []jsonField) {
	row := make(map[int]cell.Cell, len(fields))
	for _, f := range fields {
		idx, ok := t.index[f.name]
		if !ok {
			idx = len(t.names)
			t.index[f.name] = idx
			t.names = append(t.names, f.name)
			t.columns = append(t.columns, slices.Repeat([]cell.Cell{cell.NA()}, t.rows))
		}
		// a repeated key keeps its last value
		row[idx] = f.value
	}

	for i := range t.columns {
		c, ok := row[i]
		if !ok {
			c = cell.NA()
		}
		t.columns[i] = append(t.columns[i], c)
	}
	t.rows++
}

// Read reads JSON data and returns a DataFrame.
func (r *JSONReader) Read() (*dataframe.DataFrame, error) {
	dec := json.NewDecoder(r.reader)
	dec.UseNumber()

	table := newJSONTable()
	var err error
	switch r.options.Format {
	case JSONArray:
		err = r.readJSONArray(dec, table)
	case JSONLines:
		err = r.readJSONLines(dec, table)
	default:
		return nil, fmt.Errorf("unsupported JSON format: %d", r.options.Format)
	}
	if err != nil {
		return nil, err
	}

	res := newResolver("ReadJSON", r.options.MixedPolicy, r.options.Kinds, r.options.Logger)
	df, err := res.frame(table.names, table.columns)
	if err != nil {
		return nil, err
	}

	res.logger.Debug("read JSON", "rows", df.Len(), "columns", df.Width())
	return df, nil
}

func (r *JSONReader) limitReached(table *jsonTable) bool {
	return r.options.MaxRecords > 0 && table.rows >= r.options.MaxRecords
}

// readJSONArray reads JSON array format. Empty input reads as an empty
// DataFrame.
func (r *JSONReader) readJSONArray(dec *json.Decoder, table *jsonTable) error {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading JSON array: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return dferrors.NewInvalidInputError("ReadJSON", "JSON document is not an array")
	}

	for dec.More() {
		if r.limitReached(table) {
			return nil
		}
		fields, err := r.readRecord(dec, table.rows)
		if err != nil {
			return err
		}
		table.add(fields)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading end of JSON array: %w", err)
	}
	return nil
}

// readJSONLines reads JSON Lines format. Blank lines are skipped.
func (r *JSONReader) readJSONLines(dec *json.Decoder, table *jsonTable) error {
	for !r.limitReached(table) {
		fields, err := r.readRecord(dec, table.rows)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		table.add(fields)
	}
	return nil
}

// readRecord reads one object, keeping its keys in document order.
func (r *JSONReader) readRecord(dec *json.Decoder, n int) ([]jsonField, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, fmt.Errorf("reading JSON record %d: %w", n, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, dferrors.NewInvalidInputError("ReadJSON", fmt.Sprintf("record %d is not an object", n))
	}

	var fields []jsonField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading JSON record %d: %w", n, err)
		}
		key, _ := keyTok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading JSON record %d field %s: %w", n, key, err)
		}
		c, err := r.toCell(key, raw)
		if err != nil {
			return nil, err
		}
		fields = append(fields, jsonField{name: key, value: c})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading JSON record %d: %w", n, err)
	}
	return fields, nil
}

// toCell converts a decoded JSON value. Numbers go through the text parser
// so they land in the same kinds as CSV fields.
func (r *JSONReader) toCell(key string, v any) (cell.Cell, error) {
	switch v := v.(type) {
	case nil:
		return cell.NA(), nil
	case bool:
		return cell.OfBool(v), nil
	case json.Number:
		return cell.FromText(v.String()), nil
	case string:
		if slices.Contains(r.options.NullValues, v) {
			return cell.NA(), nil
		}
		if r.options.ParseStrings {
			return cell.FromText(v), nil
		}
		return cell.OfText(v), nil
	default:
		return cell.NA(), dferrors.NewUnsupportedTypeError("ReadJSON", fmt.Sprintf("%T", v)).
			WithHint(fmt.Sprintf("field %s holds a nested value", key))
	}
}

// Write writes the DataFrame to JSON format. Keys follow column order;
// Missing cells and non-finite floats are written as null.
func (w *JSONWriter) Write(df *dataframe.DataFrame) error {
	switch w.options.Format {
	case JSONArray:
		return w.writeJSONArray(df)
	case JSONLines:
		return w.writeJSONLines(df)
	default:
		return fmt.Errorf("unsupported JSON format: %d", w.options.Format)
	}
}

// writeJSONArray writes DataFrame as JSON array.
func (w *JSONWriter) writeJSONArray(df *dataframe.DataFrame) error {
	records := make([]json.RawMessage, df.Len())
	for i := range df.Len() {
		record, err := w.record(df, i)
		if err != nil {
			return err
		}
		records[i] = record
	}

	var data []byte
	var err error
	if w.options.Indent != "" {
		data, err = json.MarshalIndent(records, "", w.options.Indent)
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return fmt.Errorf("marshaling JSON array: %w", err)
	}

	_, err = w.writer.Write(data)
	return err
}

// writeJSONLines writes DataFrame as JSON Lines.
func (w *JSONWriter) writeJSONLines(df *dataframe.DataFrame) error {
	bw := bufio.NewWriter(w.writer)
	for i := range df.Len() {
		record, err := w.record(df, i)
		if err != nil {
			return err
		}
		if _, err := bw.Write(record); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// record encodes row i as an object with keys in column order.
func (w *JSONWriter) record(df *dataframe.DataFrame, i int) (json.RawMessage, error) {
	row, err := df.Row(i)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for j, name := range df.Columns() {
		if j > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("marshaling column name %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(jsonValue(row[j]))
		if err != nil {
			return nil, fmt.Errorf("marshaling row %d column %s: %w", i, name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonValue maps a cell onto the value json.Marshal should encode.
func jsonValue(c cell.Cell) any {
	switch c.Kind() {
	case cell.Int:
		v, _ := c.AsInt()
		return v
	case cell.UInt:
		v, _ := c.AsUInt()
		return v
	case cell.Float:
		v, _ := c.AsFloat()
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil
		}
		return json.Number(formatFloat(v))
	case cell.Bool:
		v, _ := c.AsBool()
		return v
	case cell.Char, cell.Text:
		return c.String()
	default:
		return nil
	}
}
