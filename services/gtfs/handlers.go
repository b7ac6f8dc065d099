package gtfs

import (
	"context"
	"io"
	"sort"
)

// loadFunc parses a table stream and returns a commit function storing the result into its slot.
type loadFunc func(ctx context.Context, in io.Reader, fileName, primaryKey string, opts []Option) (func(o *Object), error)

// fileHandler describes how a recognized file is parsed and where it is stored.
type fileHandler struct {
	table      TableName
	primaryKey string
	load       loadFunc
	// derive, if set, builds indexes from the table once it is stored and marked done.
	derive func(o *Object)
}

var fileHandlers = map[string]fileHandler{
	"agency.txt": {
		table:      TableAgency,
		primaryKey: "agency_id",
		load:       rowLoader(func(o *Object, t *RowTable) { o.Agency = t }),
	},
	"stops.txt": {
		table:      TableStops,
		primaryKey: "stop_id",
		load:       rowLoader(func(o *Object, t *RowTable) { o.Stops = t }),
		derive:     func(o *Object) { o.StopChildren = PostProcessStops(o.Stops) },
	},
	"routes.txt": {
		table:      TableRoutes,
		primaryKey: "route_id",
		load:       rowLoader(func(o *Object, t *RowTable) { o.Routes = t }),
	},
	"trips.txt": {
		table:      TableTrips,
		primaryKey: "trip_id",
		load:       rowLoader(func(o *Object, t *RowTable) { o.Trips = t }),
	},
	"calendar.txt": {
		table:      TableCalendar,
		primaryKey: "service_id",
		load:       rowLoader(func(o *Object, t *RowTable) { o.Calendar = t }),
	},
	"calendar_dates.txt": {
		table:      TableCalendarDates,
		primaryKey: "service_id",
		load:       listLoader(func(o *Object, t *ListTable) { o.CalendarDates = t }),
	},
	"frequencies.txt": {
		table:      TableFrequencies,
		primaryKey: "trip_id",
		load:       listLoader(func(o *Object, t *ListTable) { o.Frequencies = t }),
	},
	"stop_times.txt": {
		table:      TableStopTimes,
		primaryKey: "trip_id",
		load:       listLoader(func(o *Object, t *ListTable) { o.StopTimes = t }),
		derive:     func(o *Object) { o.StopTimesByStop = IndexStopTimesByStop(o.StopTimes) },
	},
	shapesFileName: {
		table:      TableShapes,
		primaryKey: shapesPrimaryKey,
		load:       loadShapes,
	},
}

func rowLoader(assign func(o *Object, t *RowTable)) loadFunc {
	return func(ctx context.Context, in io.Reader, fileName, primaryKey string, opts []Option) (func(o *Object), error) {
		table, err := ProcessToRow(ctx, in, fileName, primaryKey, opts...)
		if err != nil {
			return nil, err
		}
		return func(o *Object) { assign(o, table) }, nil
	}
}

func listLoader(assign func(o *Object, t *ListTable)) loadFunc {
	return func(ctx context.Context, in io.Reader, fileName, primaryKey string, opts []Option) (func(o *Object), error) {
		table, err := ProcessToList(ctx, in, fileName, primaryKey, opts...)
		if err != nil {
			return nil, err
		}
		return func(o *Object) { assign(o, table) }, nil
	}
}

func loadShapes(ctx context.Context, in io.Reader, _, _ string, opts []Option) (func(o *Object), error) {
	shapes, err := ProcessShapes(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	return func(o *Object) { o.Shapes = shapes }, nil
}

// IsKnownFile reports whether name is one of the GTFS tables this package loads.
// The match is exact: no case folding and no directory prefixes.
func IsKnownFile(name string) bool {
	_, ok := fileHandlers[name]
	return ok
}

// KnownFiles returns the recognized file names, sorted.
func KnownFiles() []string {
	names := make([]string, 0, len(fileHandlers))
	for name := range fileHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
