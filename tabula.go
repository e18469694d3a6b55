// Package tabula provides dynamically typed cells and the columns built from
// them: strict single-kind Series, permissive MixedSeries, and a thin
// DataFrame of named columns with CSV, JSON and Parquet adapters.
// This package is the sole public API for the library.
package tabula

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/tabula/internal/cell"
	"github.com/paveg/tabula/internal/config"
	"github.com/paveg/tabula/internal/dataframe"
	dferrors "github.com/paveg/tabula/internal/errors"
	tio "github.com/paveg/tabula/internal/io"
	"github.com/paveg/tabula/internal/series"
)

// Kind identifies the type of a Cell.
type Kind = cell.Kind

// The kinds a Cell may carry. Mixed only describes a collection.
const (
	Int     = cell.Int
	UInt    = cell.UInt
	Float   = cell.Float
	Char    = cell.Char
	Bool    = cell.Bool
	Text    = cell.Text
	Missing = cell.Missing
	Mixed   = cell.Mixed
)

// Cell is a single dynamically typed value.
type Cell = cell.Cell

// Op is an arithmetic operator applied with Cell.Apply.
type Op = cell.Op

// Arithmetic operators.
const (
	OpAdd = cell.OpAdd
	OpSub = cell.OpSub
	OpMul = cell.OpMul
	OpDiv = cell.OpDiv
)

// Primitive lists the Go types a Cell can be built from directly.
type Primitive = cell.Primitive

// Series is a column whose cells share one kind, Missing aside.
type Series = series.Series

// MixedSeries is a column that accepts cells of any kind.
type MixedSeries = series.MixedSeries

// SeriesLike is the read side shared by Series and MixedSeries.
type SeriesLike = series.SeriesLike

// DataFrame is an ordered set of equal-length named Series.
type DataFrame = dataframe.DataFrame

// Error is the structured error returned by every fallible operation.
type Error = dferrors.Error

// Error kinds, for use with errors.Is.
var (
	ErrInvalidType     = dferrors.ErrInvalidType
	ErrConversion      = dferrors.ErrConversion
	ErrMixedType       = dferrors.ErrMixedType
	ErrColumnNotFound  = dferrors.ErrColumnNotFound
	ErrDuplicateColumn = dferrors.ErrDuplicateColumn
	ErrLengthMismatch  = dferrors.ErrLengthMismatch
	ErrIndexOutOfRange = dferrors.ErrIndexOutOfRange
	ErrUnsupportedType = dferrors.ErrUnsupportedType
	ErrInvalidInput    = dferrors.ErrInvalidInput
)

// Cell constructors

// Of builds a Cell from a Go primitive. A rune is an int32 and becomes Int;
// use OfChar for characters.
func Of[T Primitive](v T) Cell { return cell.Of(v) }

// OfInt returns an Int cell.
func OfInt(v int64) Cell { return cell.OfInt(v) }

// OfUInt returns a UInt cell.
func OfUInt(v uint64) Cell { return cell.OfUInt(v) }

// OfFloat returns a Float cell.
func OfFloat(v float64) Cell { return cell.OfFloat(v) }

// OfChar returns a Char cell.
func OfChar(v rune) Cell { return cell.OfChar(v) }

// OfBool returns a Bool cell.
func OfBool(v bool) Cell { return cell.OfBool(v) }

// OfText returns a Text cell.
func OfText(v string) Cell { return cell.OfText(v) }

// NA returns the Missing cell.
func NA() Cell { return cell.NA() }

// FromText classifies s as the narrowest kind that parses it.
func FromText(s string) Cell { return cell.FromText(s) }

// FromAny builds a Cell from an arbitrary Go value.
func FromAny(v any) (Cell, error) { return cell.FromAny(v) }

// ParseKind parses a kind name such as "int" or "text".
func ParseKind(name string) (Kind, error) { return cell.ParseKind(name) }

// Series constructors

// NewSeries returns an empty Series of the given kind.
func NewSeries(name string, kind Kind) *Series { return series.New(name, kind) }

// SeriesFrom builds a Series from cells, failing when they mix kinds.
func SeriesFrom(name string, cells []Cell) (*Series, error) { return series.From(name, cells) }

// SeriesOf builds a Series from Go primitives.
func SeriesOf[T Primitive](name string, values []T) *Series {
	return series.FromValues(name, values)
}

// NewMixedSeries returns a MixedSeries holding cells.
func NewMixedSeries(name string, cells []Cell) *MixedSeries { return series.NewMixed(name, cells) }

// SeriesFromMixed converts every cell of m to kind.
func SeriesFromMixed(m *MixedSeries, kind Kind) (*Series, error) { return series.FromMixed(m, kind) }

// KindOf reports the common kind of cells, Mixed when they disagree.
func KindOf(cells []Cell) Kind { return series.KindOf(cells) }

// NewDataFrame builds a DataFrame from columns of equal length.
func NewDataFrame(cols ...*Series) (*DataFrame, error) { return dataframe.New(cols...) }

// DataFrameFromRecord converts an Arrow record into a DataFrame.
func DataFrameFromRecord(rec arrow.Record) (*DataFrame, error) { return dataframe.FromRecord(rec) }

// I/O

// Config carries the reader and writer settings.
type Config = config.Config

// MixedPolicy selects how readers settle columns whose cells disagree.
type MixedPolicy = config.MixedPolicy

// Mixed column policies.
const (
	MixedAsText = config.MixedAsText
	MixedInfer  = config.MixedInfer
	MixedFail   = config.MixedFail
)

type (
	// CSVOptions configures CSV reading and writing.
	CSVOptions = tio.CSVOptions
	// JSONOptions configures JSON reading and writing.
	JSONOptions = tio.JSONOptions
	// ParquetOptions configures Parquet reading and writing.
	ParquetOptions = tio.ParquetOptions
)

// JSON layouts.
const (
	JSONArray = tio.JSONArray
	JSONLines = tio.JSONLines
)

// NewConfig returns the default configuration.
func NewConfig() Config { return config.NewConfig() }

// LoadConfig reads a JSON or YAML configuration file.
func LoadConfig(path string) (Config, error) { return config.LoadFromFile(path) }

// DefaultCSVOptions returns the CSV options of the default configuration.
func DefaultCSVOptions() CSVOptions { return tio.DefaultCSVOptions() }

// DefaultJSONOptions returns the JSON options of the default configuration.
func DefaultJSONOptions() JSONOptions { return tio.DefaultJSONOptions() }

// DefaultParquetOptions returns the Parquet options of the default configuration.
func DefaultParquetOptions() ParquetOptions { return tio.DefaultParquetOptions() }

// ReadCSV reads a DataFrame from CSV.
func ReadCSV(r io.Reader, opts CSVOptions) (*DataFrame, error) {
	return tio.NewCSVReader(r, opts).Read()
}

// WriteCSV writes df as CSV.
func WriteCSV(w io.Writer, df *DataFrame, opts CSVOptions) error {
	return tio.NewCSVWriter(w, opts).Write(df)
}

// ReadJSON reads a DataFrame from a JSON array or JSON Lines.
func ReadJSON(r io.Reader, opts JSONOptions) (*DataFrame, error) {
	return tio.NewJSONReader(r, opts).Read()
}

// WriteJSON writes df as a JSON array or JSON Lines.
func WriteJSON(w io.Writer, df *DataFrame, opts JSONOptions) error {
	return tio.NewJSONWriter(w, opts).Write(df)
}

// ReadParquet reads a DataFrame from Parquet. A nil allocator uses the Go heap.
func ReadParquet(r io.Reader, opts ParquetOptions, mem memory.Allocator) (*DataFrame, error) {
	return tio.NewParquetReader(r, opts, mem).Read()
}

// WriteParquet writes df as Parquet. A nil allocator uses the Go heap.
func WriteParquet(w io.Writer, df *DataFrame, opts ParquetOptions, mem memory.Allocator) error {
	return tio.NewParquetWriter(w, opts, mem).Write(df)
}
