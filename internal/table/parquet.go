package table

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// Pool is the Arrow memory allocator shared by parquet I/O.
var Pool = memory.NewGoAllocator()

// ArrowSchema returns the Arrow schema equivalent of the table's columns.
func (t *Table) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(t.Columns))
	for i, col := range t.Columns {
		var dt arrow.DataType
		switch col.Type {
		case String:
			dt = arrow.BinaryTypes.String
		case Int:
			dt = arrow.PrimitiveTypes.Int64
		case Float:
			dt = arrow.PrimitiveTypes.Float64
		case Bool:
			dt = arrow.FixedWidthTypes.Boolean
		case Time:
			dt = arrow.FixedWidthTypes.Timestamp_us
		}
		fields[i] = arrow.Field{Name: col.Name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// WriteParquet writes the table to path as a single-row-group parquet file.
func (t *Table) WriteParquet(path string) error {
	schema := t.ArrowSchema()

	bld := array.NewRecordBuilder(Pool, schema)
	defer bld.Release()

	for _, row := range t.Rows {
		for i, cell := range row {
			appendCell(bld.Field(i), t.Columns[i].Type, cell)
		}
	}

	rec := bld.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	w, err := pqarrow.NewFileWriter(schema, f, props, pqarrow.DefaultWriterProps())
	if err != nil {
		f.Close()
		return fmt.Errorf("open parquet writer for %s: %w", path, err)
	}

	if err := w.Write(rec); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadParquet reads a parquet file written by WriteParquet back into a Table.
func ReadParquet(ctx context.Context, path, name string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rdr, err := file.NewParquetReader(f)
	if err != nil {
		return nil, fmt.Errorf("open parquet reader for %s: %w", path, err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, Pool)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	arrTable, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer arrTable.Release()

	columns := make([]Column, arrTable.NumCols())
	for i, field := range arrTable.Schema().Fields() {
		typ, err := columnType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("read %s: column %s: %w", path, field.Name, err)
		}
		columns[i] = Column{Name: field.Name, Type: typ}
	}

	t := New(name, columns)
	t.Rows = make([][]any, arrTable.NumRows())
	for i := range t.Rows {
		t.Rows[i] = make([]any, len(columns))
	}

	for c := 0; c < int(arrTable.NumCols()); c++ {
		rowOffset := 0
		for _, chunk := range arrTable.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					rowOffset++
					continue
				}
				t.Rows[rowOffset][c] = arrowValue(chunk, i)
				rowOffset++
			}
		}
	}
	return t, nil
}

func appendCell(b array.Builder, typ Type, cell any) {
	if cell == nil {
		b.AppendNull()
		return
	}
	switch typ {
	case String:
		b.(*array.StringBuilder).Append(cell.(string))
	case Int:
		b.(*array.Int64Builder).Append(cell.(int64))
	case Float:
		b.(*array.Float64Builder).Append(cell.(float64))
	case Bool:
		b.(*array.BooleanBuilder).Append(cell.(bool))
	case Time:
		ts := cell.(time.Time).UTC().UnixMicro()
		b.(*array.TimestampBuilder).Append(arrow.Timestamp(ts))
	}
}

func columnType(dt arrow.DataType) (Type, error) {
	switch dt.ID() {
	case arrow.STRING:
		return String, nil
	case arrow.INT64:
		return Int, nil
	case arrow.FLOAT64:
		return Float, nil
	case arrow.BOOL:
		return Bool, nil
	case arrow.TIMESTAMP:
		return Time, nil
	default:
		return String, fmt.Errorf("unsupported arrow type %s", dt)
	}
}

func arrowValue(arr arrow.Array, i int) any {
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.Timestamp:
		return a.Value(i).ToTime(arrow.Microsecond).UTC()
	default:
		return nil
	}
}
