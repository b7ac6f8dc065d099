package gtfs

import (
	"io"

	"github.com/gocarina/gocsv"
)

// Row is a single CSV record, mapping a column name to its raw value.
// No type conversion is performed; the owning table reports the column order.
type Row map[string]string

// Get returns the value of the specified column and whether the row has it at all.
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// RowTable maps a primary key to a single row, remembering the order keys were first seen in.
type RowTable struct {
	columns []string
	keys    []string
	rows    map[string]Row
}

func newRowTable(columns []string) *RowTable {
	return &RowTable{
		columns: columns,
		rows:    map[string]Row{},
	}
}

// set stores the row under key. A duplicate key overwrites the previous row but keeps its position.
func (t *RowTable) set(key string, row Row) {
	if _, ok := t.rows[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.rows[key] = row
}

// Get returns the row stored under key.
func (t *RowTable) Get(key string) (Row, bool) {
	row, ok := t.rows[key]
	return row, ok
}

// Len returns the number of distinct keys in the table.
func (t *RowTable) Len() int {
	return len(t.keys)
}

// Keys returns the primary keys in insertion order.
func (t *RowTable) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Columns returns the header of the source file.
func (t *RowTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Range calls fn for every row in insertion order until fn returns false.
func (t *RowTable) Range(fn func(key string, row Row) bool) {
	for _, key := range t.keys {
		if !fn(key, t.rows[key]) {
			return
		}
	}
}

// Decode unmarshals every row of the table, in insertion order, into out,
// which must be a pointer to a slice of csv-tagged structs (see Agency, Stop, ...).
func (t *RowTable) Decode(out interface{}) error {
	rows := make([]Row, 0, len(t.keys))
	for _, key := range t.keys {
		rows = append(rows, t.rows[key])
	}
	return gocsv.UnmarshalCSV(newRowsReader(t.columns, rows), out)
}

// ListTable maps a non-unique key to every row carrying it, in stream order.
type ListTable struct {
	columns []string
	keys    []string
	rows    map[string][]Row
}

func newListTable(columns []string) *ListTable {
	return &ListTable{
		columns: columns,
		rows:    map[string][]Row{},
	}
}

func (t *ListTable) add(key string, row Row) {
	existing, ok := t.rows[key]
	if !ok {
		t.keys = append(t.keys, key)
	}
	t.rows[key] = append(existing, row)
}

// Get returns the rows stored under key.
func (t *ListTable) Get(key string) ([]Row, bool) {
	rows, ok := t.rows[key]
	return rows, ok
}

// Len returns the number of distinct keys in the table.
func (t *ListTable) Len() int {
	return len(t.keys)
}

// Keys returns the keys in the order they were first seen.
func (t *ListTable) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Columns returns the header of the source file.
func (t *ListTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Range calls fn for every key and its rows in first-seen order until fn returns false.
func (t *ListTable) Range(fn func(key string, rows []Row) bool) {
	for _, key := range t.keys {
		if !fn(key, t.rows[key]) {
			return
		}
	}
}

// Decode unmarshals the rows stored under key into out, a pointer to a slice of csv-tagged structs.
func (t *ListTable) Decode(key string, out interface{}) error {
	return gocsv.UnmarshalCSV(newRowsReader(t.columns, t.rows[key]), out)
}

// Point is a (latitude, longitude) pair. Invalid coordinates are stored as NaN.
type Point [2]float64

// Lat returns the latitude of the point.
func (p Point) Lat() float64 { return p[0] }

// Lon returns the longitude of the point.
func (p Point) Lon() float64 { return p[1] }

// ShapeTable maps a shape_id to its points, ordered by shape_pt_sequence.
type ShapeTable map[string][]Point

// StopChildren maps a station's stop_id to the stop_ids of its children.
type StopChildren map[string][]string

// rowsReader replays a set of rows as CSV records so gocsv can decode them.
type rowsReader struct {
	records [][]string
	pos     int
}

func newRowsReader(columns []string, rows []Row) *rowsReader {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, columns)
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, column := range columns {
			record[i] = row[column]
		}
		records = append(records, record)
	}
	return &rowsReader{records: records}
}

func (r *rowsReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	record := r.records[r.pos]
	r.pos++
	return record, nil
}

func (r *rowsReader) ReadAll() ([][]string, error) {
	records := r.records[r.pos:]
	r.pos = len(r.records)
	return records, nil
}
