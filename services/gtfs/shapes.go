package gtfs

import (
	"context"
	"io"
	"math"
	"sort"
)

const (
	shapesFileName   = "shapes.txt"
	shapesPrimaryKey = "shape_id"
)

type sequencedRow struct {
	row   Row
	seq   int
	valid bool
}

// ProcessShapes parses shapes.txt into points grouped by shape_id.
// Points are sorted by the integer leading shape_pt_sequence; rows with a non-numeric
// sequence are kept and placed after the numbered ones, in stream order.
// Coordinates failing ValidLat/ValidLon are stored as NaN rather than dropped.
func ProcessShapes(ctx context.Context, in io.Reader, opts ...Option) (ShapeTable, error) {
	rows, err := ProcessToList(ctx, in, shapesFileName, shapesPrimaryKey, opts...)
	if err != nil {
		return nil, err
	}

	shapes := make(ShapeTable, rows.Len())
	rows.Range(func(shapeID string, shapeRows []Row) bool {
		shapes[shapeID] = shapePoints(shapeRows)
		return true
	})
	return shapes, nil
}

func shapePoints(rows []Row) []Point {
	ordered := make([]sequencedRow, len(rows))
	for i, row := range rows {
		seq, ok := parseIntPrefix(row["shape_pt_sequence"])
		ordered[i] = sequencedRow{row: row, seq: seq, valid: ok}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].valid {
			return false
		} else if !ordered[j].valid {
			return true
		}
		return ordered[i].seq < ordered[j].seq
	})

	points := make([]Point, len(ordered))
	for i, r := range ordered {
		points[i] = Point{coordinate(r.row, "shape_pt_lat", ValidLat), coordinate(r.row, "shape_pt_lon", ValidLon)}
	}
	return points
}

func coordinate(row Row, column string, valid func(string) (float64, bool)) float64 {
	raw, ok := row[column]
	if !ok {
		return math.NaN()
	}
	if v, ok := valid(raw); ok {
		return v
	}
	return math.NaN()
}
