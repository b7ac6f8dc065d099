package gtfs

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessShapes(t *testing.T) {
	in := "shape_id,shape_pt_sequence,shape_pt_lat,shape_pt_lon\r\n" +
		"a,1,11.0,11.0\r\n" +
		"a,2,13.0,9.0\r\n" +
		"a,3,15.0,7.0\r\n" +
		"b,1,7.0,-15\r\n" +
		"b,2,9.12,-17.12\r\n"

	shapes, err := ProcessShapes(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Len(t, shapes, 2)
	assert.Equal(t, []Point{{11, 11}, {13, 9}, {15, 7}}, shapes["a"])
	assert.Equal(t, []Point{{7, -15}, {9.12, -17.12}}, shapes["b"])
}

func TestProcessShapesSortsBySequence(t *testing.T) {
	in := "shape_id,shape_pt_sequence,shape_pt_lat,shape_pt_lon\r\n" +
		"b,2,7.0,-15\r\n" +
		"b,1,9.12,-17.12\r\n" +
		"b,10,1,1\r\n"

	shapes, err := ProcessShapes(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []Point{{9.12, -17.12}, {7, -15}, {1, 1}}, shapes["b"])
}

func TestProcessShapesInvalidSequenceLast(t *testing.T) {
	in := "shape_id,shape_pt_sequence,shape_pt_lat,shape_pt_lon\n" +
		"a,x,1,1\n" +
		"a,2,2,2\n" +
		"a,,3,3\n" +
		"a,1,4,4\n"

	shapes, err := ProcessShapes(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []Point{{4, 4}, {2, 2}, {1, 1}, {3, 3}}, shapes["a"])
}

func TestProcessShapesInvalidCoordinates(t *testing.T) {
	in := "shape_id,shape_pt_sequence,shape_pt_lat,shape_pt_lon\r\n" +
		"a,1,,\r\n" +
		"a,2,null,null\r\n" +
		"a,3,120,-420\r\n" +
		"a,4,45\r\n"

	shapes, err := ProcessShapes(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	points := shapes["a"]
	require.Len(t, points, 4)
	for i, p := range points[:3] {
		assert.True(t, math.IsNaN(p.Lat()), "point %d lat", i)
		assert.True(t, math.IsNaN(p.Lon()), "point %d lon", i)
	}
	assert.Equal(t, 45.0, points[3].Lat())
	assert.True(t, math.IsNaN(points[3].Lon()))
}

func TestProcessShapesMissingShapeID(t *testing.T) {
	in := "id,shape_pt_sequence,shape_pt_lat,shape_pt_lon\r\n" +
		"a,1,11.0,11.0\r\n"

	_, err := ProcessShapes(context.Background(), strings.NewReader(in))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPrimaryColumn))
	assert.Equal(t, "Table shapes.txt is missing its primary column: shape_id", err.Error())
}

func TestProcessShapesLenientNumbers(t *testing.T) {
	in := "shape_id,shape_pt_sequence,shape_pt_lat,shape_pt_lon\n" +
		"a,3.5,12abc,1\n" +
		"a,2abc,2,2\n" +
		"a,10,3,3\n"

	shapes, err := ProcessShapes(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []Point{{2, 2}, {12, 1}, {3, 3}}, shapes["a"])
}
