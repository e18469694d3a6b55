// Package io provides readers and writers that move DataFrames in and out of
// CSV, JSON and Parquet.
//
// Textual input is parsed one field at a time with cell.FromText, so a CSV
// field and a JSON number go through the same parsing cascade. A column
// whose fields parse to more than one kind is resolved by the configured
// MixedPolicy:
//   - text turns it into a Text column
//   - infer picks the tightest kind that keeps every value
//   - error rejects the input with a MixedTypeError
//
// Columns listed in the Kinds option skip the policy and are converted to
// the declared kind instead. Parquet goes through the Arrow boundary of the
// series package and keeps kinds exactly.
package io

import (
	"io"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/config"
	"github.com/paveg/tabula/internal/dataframe"
)

const (
	// DefaultBatchSize is the default batch size for Parquet operations
	DefaultBatchSize = 1000
)

// DataReader defines the interface for reading data from various sources
type DataReader interface {
	// Read reads data from the source and returns a DataFrame
	Read() (*dataframe.DataFrame, error)
}

// DataWriter defines the interface for writing data to various destinations
type DataWriter interface {
	// Write writes the DataFrame to the destination
	Write(df *dataframe.DataFrame) error
}

// CSVOptions contains configuration options for CSV operations
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Comment is the comment character (default: 0 = disabled)
	Comment rune
	// Header indicates whether the first row contains headers
	Header bool
	// TrimSpace trims surrounding white space from fields before parsing
	TrimSpace bool
	// NullValues are the field values read as Missing
	NullValues []string
	// NAToken is written for Missing cells
	NAToken string
	// MixedPolicy resolves columns whose fields parse to several kinds
	MixedPolicy config.MixedPolicy
	// Kinds declares the kind of some columns by name
	Kinds map[string]cell.Kind
	// MaxRecords limits the number of data records read (0 = unlimited)
	MaxRecords int
	// Logger receives debug records about column resolution (nil = discard)
	Logger *slog.Logger
}

// DefaultCSVOptions returns default CSV options
func DefaultCSVOptions() CSVOptions {
	return CSVOptionsFromConfig(config.NewConfig())
}

// CSVOptionsFromConfig maps a configuration onto CSV options.
func CSVOptionsFromConfig(cfg config.Config) CSVOptions {
	return CSVOptions{
		Delimiter:   cfg.DelimiterRune(),
		Comment:     0,
		Header:      cfg.Header,
		TrimSpace:   cfg.TrimSpace,
		NullValues:  append([]string(nil), cfg.NullValues...),
		NAToken:     cfg.NAToken,
		MixedPolicy: cfg.MixedPolicy,
		MaxRecords:  cfg.MaxRecords,
	}
}

// CSVReader reads CSV data and converts it to DataFrames
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
}

// NewCSVReader creates a new CSV reader with the specified options
func NewCSVReader(reader io.Reader, options CSVOptions) *CSVReader {
	return &CSVReader{
		reader:  reader,
		options: options,
	}
}

// CSVWriter writes DataFrames to CSV format
type CSVWriter struct {
	writer  io.Writer
	options CSVOptions
}

// NewCSVWriter creates a new CSV writer with the specified options
func NewCSVWriter(writer io.Writer, options CSVOptions) *CSVWriter {
	return &CSVWriter{
		writer:  writer,
		options: options,
	}
}

// JSONFormat selects between a JSON array of objects and JSON Lines.
type JSONFormat int

const (
	// JSONArray is a single array of objects
	JSONArray JSONFormat = iota
	// JSONLines is one object per line
	JSONLines
)

// JSONOptions contains configuration options for JSON operations
type JSONOptions struct {
	// Format is the document layout
	Format JSONFormat
	// ParseStrings passes string values through the text parser; otherwise
	// strings are read as Text
	ParseStrings bool
	// NullValues are the string values read as Missing
	NullValues []string
	// MixedPolicy resolves columns whose values parse to several kinds
	MixedPolicy config.MixedPolicy
	// Kinds declares the kind of some columns by name
	Kinds map[string]cell.Kind
	// MaxRecords limits the number of records read (0 = unlimited)
	MaxRecords int
	// Indent pretty-prints JSON arrays when not empty
	Indent string
	// Logger receives debug records about column resolution (nil = discard)
	Logger *slog.Logger
}

// DefaultJSONOptions returns default JSON options
func DefaultJSONOptions() JSONOptions {
	return JSONOptionsFromConfig(config.NewConfig())
}

// JSONOptionsFromConfig maps a configuration onto JSON options.
func JSONOptionsFromConfig(cfg config.Config) JSONOptions {
	return JSONOptions{
		Format:      JSONArray,
		NullValues:  append([]string(nil), cfg.NullValues...),
		MixedPolicy: cfg.MixedPolicy,
		MaxRecords:  cfg.MaxRecords,
	}
}

// JSONReader reads JSON data and converts it to DataFrames
type JSONReader struct {
	reader  io.Reader
	options JSONOptions
}

// NewJSONReader creates a new JSON reader with the specified options
func NewJSONReader(reader io.Reader, options JSONOptions) *JSONReader {
	return &JSONReader{
		reader:  reader,
		options: options,
	}
}

// JSONWriter writes DataFrames to JSON format
type JSONWriter struct {
	writer  io.Writer
	options JSONOptions
}

// NewJSONWriter creates a new JSON writer with the specified options
func NewJSONWriter(writer io.Writer, options JSONOptions) *JSONWriter {
	return &JSONWriter{
		writer:  writer,
		options: options,
	}
}

// ParquetOptions contains configuration options for Parquet operations
type ParquetOptions struct {
	// Compression type for Parquet files
	Compression string
	// BatchSize for reading/writing operations
	BatchSize int
}

// DefaultParquetOptions returns default Parquet options
func DefaultParquetOptions() ParquetOptions {
	return ParquetOptionsFromConfig(config.NewConfig())
}

// ParquetOptionsFromConfig maps a configuration onto Parquet options.
func ParquetOptionsFromConfig(cfg config.Config) ParquetOptions {
	return ParquetOptions{
		Compression: cfg.ParquetCompression,
		BatchSize:   DefaultBatchSize,
	}
}

// ParquetReader reads Parquet data and converts it to DataFrames
type ParquetReader struct {
	reader  io.Reader
	options ParquetOptions
	mem     memory.Allocator
}

// NewParquetReader creates a new Parquet reader with the specified options.
// A nil allocator means the Go allocator.
func NewParquetReader(reader io.Reader, options ParquetOptions, mem memory.Allocator) *ParquetReader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &ParquetReader{
		reader:  reader,
		options: options,
		mem:     mem,
	}
}

// ParquetWriter writes DataFrames to Parquet format
type ParquetWriter struct {
	writer  io.Writer
	options ParquetOptions
	mem     memory.Allocator
}

// NewParquetWriter creates a new Parquet writer with the specified options.
// A nil allocator means the Go allocator.
func NewParquetWriter(writer io.Writer, options ParquetOptions, mem memory.Allocator) *ParquetWriter {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &ParquetWriter{
		writer:  writer,
		options: options,
		mem:     mem,
	}
}
