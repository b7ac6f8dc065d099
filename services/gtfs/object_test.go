package gtfs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObject(t *testing.T) *Object {
	t.Helper()

	o := &Object{}
	o.Stops = loadStations(t)
	o.StopChildren = PostProcessStops(o.Stops)

	var err error
	o.StopTimes, err = ProcessToList(context.Background(), strings.NewReader(stopTimesCSV), "stop_times.txt", "trip")
	require.NoError(t, err)

	o.Shapes = ShapeTable{"s": {{1, 2}}}
	return o
}

func stopIDs(rows []Row) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row["stop_id"])
	}
	return ids
}

func TestParseTableName(t *testing.T) {
	name, ok := ParseTableName("stop_times.txt")
	assert.True(t, ok)
	assert.Equal(t, TableStopTimes, name)

	name, ok = ParseTableName("stopChildren")
	assert.True(t, ok)
	assert.Equal(t, TableStopChildren, name)

	_, ok = ParseTableName("fares.txt")
	assert.False(t, ok)
}

func TestObjectExists(t *testing.T) {
	o := testObject(t)

	assert.True(t, o.Exists(TableStops))
	assert.True(t, o.Exists(TableStopChildren))
	assert.True(t, o.Exists(TableStopTimes))
	assert.True(t, o.Exists(TableShapes))
	assert.False(t, o.Exists(TableAgency))
	assert.False(t, o.Exists(TableCalendarDates))
	assert.False(t, o.Exists(TableName("fares")))
}

func TestObjectFind(t *testing.T) {
	o := testObject(t)

	assert.Equal(t, "Central", o.Find(TableStops, "sta1").(Row)["stop_name"])
	assert.Len(t, o.Find(TableStopTimes, "1").([]Row), 3)
	assert.Equal(t, []Point{{1, 2}}, o.Find(TableShapes, "s"))
	assert.Equal(t, []string{"sta1-a", "sta1-b"}, o.Find(TableStopChildren, "sta1"))

	assert.Nil(t, o.Find(TableStops, "missing"))
	assert.Nil(t, o.Find(TableAgency, "1"))
	assert.Nil(t, o.Find(TableShapes, "missing"))
}

func TestObjectDumpAll(t *testing.T) {
	o := testObject(t)

	var stops []string
	require.NoError(t, o.DumpAll(TableStops, func(row Row) error {
		stops = append(stops, row["stop_id"])
		return nil
	}))
	assert.Equal(t, []string{"1", "2", "sta1", "sta1-a", "sta1-b", "sta2", "sta2-a", "sta2-b"}, stops)

	var times []string
	require.NoError(t, o.DumpAll(TableStopTimes, func(row Row) error {
		times = append(times, row["time"])
		return nil
	}))
	assert.Equal(t, []string{"10:00:00", "10:05:00", "10:10:00", "10:30:00", "10:36:30"}, times)

	stop := errors.New("stop")
	count := 0
	err := o.DumpAll(TableStopTimes, func(row Row) error {
		count++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, count)

	assert.NoError(t, o.DumpAll(TableAgency, func(Row) error { return stop }))
	assert.True(t, errors.Is(o.DumpAll(TableShapes, nil), ErrNotDumpable))
	assert.True(t, errors.Is(o.DumpAll(TableName("fares"), nil), ErrUnknownTable))
}

func TestObjectHeaderAndLen(t *testing.T) {
	o := testObject(t)

	header, err := o.Header(TableStops)
	require.NoError(t, err)
	assert.Equal(t, []string{"stop_id", "stop_name", "location_type", "parent_station"}, header)

	header, err = o.Header(TableAgency)
	assert.NoError(t, err)
	assert.Nil(t, header)

	_, err = o.Header(TableStopChildren)
	assert.True(t, errors.Is(err, ErrNotDumpable))

	assert.Equal(t, 8, o.Len(TableStops))
	assert.Equal(t, 2, o.Len(TableStopChildren))
	assert.Equal(t, 0, o.Len(TableAgency))
}

type stopsInGroupTest struct {
	name   string
	stopID string
	result []string
}

var stopsInGroupTests = []stopsInGroupTest{
	{"station", "sta1", []string{"sta1", "sta1-a", "sta1-b"}},
	{"child", "sta1-b", []string{"sta1-b", "sta1", "sta1-a"}},
	{"entrance", "sta2-b", []string{"sta2-b", "sta2", "sta2-a"}},
	{"standalone", "1", []string{"1"}},
	{"unknown", "missing", []string{}},
}

func TestObjectStopsInGroup(t *testing.T) {
	o := testObject(t)
	for _, tt := range stopsInGroupTests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.result, stopIDs(o.StopsInGroup(tt.stopID)))
		})
	}
}
