package io

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/paveg/tabula/internal/dataframe"
	dferrors "github.com/paveg/tabula/internal/errors"
	"github.com/paveg/tabula/internal/series"
)

// Read reads Parquet data and returns a DataFrame. Files written by
// ParquetWriter carry the Arrow schema, so column kinds come back exactly.
func (r *ParquetReader) Read() (*dataframe.DataFrame, error) {
	// Read all data into memory for Parquet reading
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	readerAt := bytes.NewReader(data)

	// Create a Parquet file reader
	pqReader, err := file.NewParquetReader(readerAt)
	if err != nil {
		return nil, fmt.Errorf("creating parquet file reader: %w", err)
	}
	defer pqReader.Close()

	// Create an Arrow file reader
	props := pqarrow.ArrowReadProperties{BatchSize: int64(r.options.BatchSize)}
	arrowReader, err := pqarrow.NewFileReader(pqReader, props, r.mem)
	if err != nil {
		return nil, fmt.Errorf("creating arrow file reader: %w", err)
	}

	// Read the entire table
	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	defer table.Release()

	return r.tableToDataFrame(table)
}

// tableToDataFrame converts every chunk of every column of an Arrow table.
func (r *ParquetReader) tableToDataFrame(table arrow.Table) (*dataframe.DataFrame, error) {
	schema := table.Schema()
	cols := make([]*series.Series, 0, table.NumCols())

	for i := range int(table.NumCols()) {
		field := schema.Field(i)
		s, err := r.columnToSeries(field, table.Column(i))
		if err != nil {
			return nil, fmt.Errorf("converting column %s: %w", field.Name, err)
		}
		cols = append(cols, s)
	}

	return dataframe.New(cols...)
}

func (r *ParquetReader) columnToSeries(field arrow.Field, column *arrow.Column) (*series.Series, error) {
	chunks := column.Data().Chunks()
	if len(chunks) == 0 {
		empty := array.MakeArrayOfNull(r.mem, field.Type, 0)
		defer empty.Release()
		return series.FromArrow(field, empty)
	}

	var out *series.Series
	for _, chunk := range chunks {
		part, err := series.FromArrow(field, chunk)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = part
			continue
		}
		if err := out.PushBatch(part.Cells()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Write writes the DataFrame to Parquet format. The Arrow schema is stored
// in the file so that kinds Parquet cannot express, such as Char, survive.
func (w *ParquetWriter) Write(df *dataframe.DataFrame) error {
	compression, err := parquetCodec(w.options.Compression)
	if err != nil {
		return err
	}

	rec := df.Record(w.mem)
	defer rec.Release()

	// Create writer properties
	props := parquet.NewWriterProperties(
		parquet.WithCompression(compression),
		parquet.WithBatchSize(int64(max(w.options.BatchSize, 1))),
		parquet.WithAllocator(w.mem),
	)

	// Create Arrow writer properties
	arrowProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithAllocator(w.mem),
		pqarrow.WithStoreSchema(),
	)

	// Create file writer
	writer, err := pqarrow.NewFileWriter(rec.Schema(), w.writer, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}

	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing record: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing file writer: %w", err)
	}
	return nil
}

// parquetCodec maps a compression name onto its codec
func parquetCodec(name string) (compress.Compression, error) {
	switch name {
	case "snappy", "":
		return compress.Codecs.Snappy, nil
	case "gzip":
		return compress.Codecs.Gzip, nil
	case "lz4":
		return compress.Codecs.Lz4Raw, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	case "uncompressed":
		return compress.Codecs.Uncompressed, nil
	default:
		return compress.Codecs.Uncompressed, dferrors.NewInvalidInputError("WriteParquet",
			fmt.Sprintf("unknown compression %q", name))
	}
}
