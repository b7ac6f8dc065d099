package gtfs

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const defaultComma = ','

type options struct {
	comma rune
}

// Option adjusts how a table stream is parsed.
type Option func(*options)

// WithComma sets the field delimiter, for feeds using semicolons instead of commas.
func WithComma(comma rune) Option {
	return func(o *options) {
		o.comma = comma
	}
}

func newOptions(opts []Option) options {
	o := options{comma: defaultComma}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newCSVReader strips a leading byte-order mark and builds a reader tolerant of GTFS optional fields:
// a record may have fewer columns than the header row.
func newCSVReader(in io.Reader, o options) gocsv.CSVReader {
	csvReader := csv.NewReader(transform.NewReader(in, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	csvReader.FieldsPerRecord = -1
	csvReader.Comma = o.comma
	return csvReader
}

// streamRows reads the header and then hands every subsequent record to fn as a Row.
// It stops at the first record lacking primaryKey.
func streamRows(ctx context.Context, in io.Reader, tableName, primaryKey string, o options, onHeader func([]string), fn func(key string, row Row)) error {
	reader := newCSVReader(in, o)

	header, err := reader.Read()
	if err == io.EOF {
		onHeader(nil)
		return nil
	} else if err != nil {
		return err
	}
	onHeader(header)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		row := make(Row, len(header))
		for i, column := range header {
			if i >= len(record) {
				break
			}
			row[column] = record[i]
		}

		key, ok := row[primaryKey]
		if !ok {
			return &MissingPrimaryColumnError{Table: tableName, Column: primaryKey}
		}
		fn(key, row)
	}
}

// ProcessToRow parses a table where each primary key maps to a single row.
// A repeated key overwrites the row stored before it.
func ProcessToRow(ctx context.Context, in io.Reader, tableName, primaryKey string, opts ...Option) (*RowTable, error) {
	var table *RowTable
	err := streamRows(ctx, in, tableName, primaryKey, newOptions(opts),
		func(header []string) { table = newRowTable(header) },
		func(key string, row Row) { table.set(key, row) },
	)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// ProcessToList parses a table where a key maps to every row carrying it, in stream order.
func ProcessToList(ctx context.Context, in io.Reader, tableName, primaryKey string, opts ...Option) (*ListTable, error) {
	var table *ListTable
	err := streamRows(ctx, in, tableName, primaryKey, newOptions(opts),
		func(header []string) { table = newListTable(header) },
		func(key string, row Row) { table.add(key, row) },
	)
	if err != nil {
		return nil, err
	}
	return table, nil
}
