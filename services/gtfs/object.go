// Package gtfs loads a static GTFS feed, from a directory or a zip archive,
// into an in-memory set of tables keyed by each table's primary column.
package gtfs

import (
	"fmt"
)

// TableName identifies a slot of the Object.
type TableName string

// The table slots of an Object. The last two are indexes derived after loading.
const (
	TableAgency          TableName = "agency"
	TableStops           TableName = "stops"
	TableRoutes          TableName = "routes"
	TableTrips           TableName = "trips"
	TableCalendar        TableName = "calendar"
	TableCalendarDates   TableName = "calendarDates"
	TableFrequencies     TableName = "frequencies"
	TableStopTimes       TableName = "stopTimes"
	TableShapes          TableName = "shapes"
	TableStopChildren    TableName = "stopChildren"
	TableStopTimesByStop TableName = "stopTimesByStop"
)

// TableNames lists every slot in a stable order.
var TableNames = []TableName{
	TableAgency,
	TableStops,
	TableRoutes,
	TableTrips,
	TableCalendar,
	TableCalendarDates,
	TableFrequencies,
	TableStopTimes,
	TableShapes,
	TableStopChildren,
	TableStopTimesByStop,
}

// ParseTableName accepts either a slot name ("stopTimes") or the matching file name ("stop_times.txt").
func ParseTableName(name string) (TableName, bool) {
	if h, ok := fileHandlers[name]; ok {
		return h.table, true
	}
	for _, t := range TableNames {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// Object holds every table loaded from a feed. A nil slot means the file was not present.
// The object must only be consumed once its load reported StatusDone.
type Object struct {
	Agency        *RowTable
	Stops         *RowTable
	Routes        *RowTable
	Trips         *RowTable
	Calendar      *RowTable
	CalendarDates *ListTable
	Frequencies   *ListTable
	StopTimes     *ListTable
	Shapes        ShapeTable

	StopChildren    StopChildren
	StopTimesByStop *ListTable
}

func (o *Object) rowTable(t TableName) *RowTable {
	switch t {
	case TableAgency:
		return o.Agency
	case TableStops:
		return o.Stops
	case TableRoutes:
		return o.Routes
	case TableTrips:
		return o.Trips
	case TableCalendar:
		return o.Calendar
	}
	return nil
}

func (o *Object) listTable(t TableName) *ListTable {
	switch t {
	case TableCalendarDates:
		return o.CalendarDates
	case TableFrequencies:
		return o.Frequencies
	case TableStopTimes:
		return o.StopTimes
	case TableStopTimesByStop:
		return o.StopTimesByStop
	}
	return nil
}

func isRowTable(t TableName) bool {
	switch t {
	case TableAgency, TableStops, TableRoutes, TableTrips, TableCalendar:
		return true
	}
	return false
}

func isListTable(t TableName) bool {
	switch t {
	case TableCalendarDates, TableFrequencies, TableStopTimes, TableStopTimesByStop:
		return true
	}
	return false
}

// Exists reports whether the table's slot is populated.
func (o *Object) Exists(t TableName) bool {
	switch {
	case isRowTable(t):
		return o.rowTable(t) != nil
	case isListTable(t):
		return o.listTable(t) != nil
	case t == TableShapes:
		return o.Shapes != nil
	case t == TableStopChildren:
		return o.StopChildren != nil
	}
	return false
}

// Find looks up key in the table. Depending on the table it returns a Row, a []Row,
// a []Point (shapes) or a []string (stop children); nil if the table or key is absent.
func (o *Object) Find(t TableName, key string) interface{} {
	switch {
	case isRowTable(t):
		if table := o.rowTable(t); table != nil {
			if row, ok := table.Get(key); ok {
				return row
			}
		}
	case isListTable(t):
		if table := o.listTable(t); table != nil {
			if rows, ok := table.Get(key); ok {
				return rows
			}
		}
	case t == TableShapes:
		if points, ok := o.Shapes[key]; ok {
			return points
		}
	case t == TableStopChildren:
		if children, ok := o.StopChildren[key]; ok {
			return children
		}
	}
	return nil
}

// DumpAll hands every row of the table to fn in table order, stopping at the first error fn returns.
// Rows of list tables are flattened key by key. An absent table dumps nothing.
func (o *Object) DumpAll(t TableName, fn func(row Row) error) error {
	switch {
	case isRowTable(t):
		table := o.rowTable(t)
		if table == nil {
			return nil
		}
		var err error
		table.Range(func(_ string, row Row) bool {
			err = fn(row)
			return err == nil
		})
		return err

	case isListTable(t):
		table := o.listTable(t)
		if table == nil {
			return nil
		}
		var err error
		table.Range(func(_ string, rows []Row) bool {
			for _, row := range rows {
				if err = fn(row); err != nil {
					return false
				}
			}
			return true
		})
		return err

	case t == TableShapes, t == TableStopChildren:
		return fmt.Errorf("%w: %s", ErrNotDumpable, t)
	}
	return fmt.Errorf("%w: %s", ErrUnknownTable, t)
}

// Header returns the column names of a loaded row or list table.
func (o *Object) Header(t TableName) ([]string, error) {
	switch {
	case isRowTable(t):
		if table := o.rowTable(t); table != nil {
			return table.Columns(), nil
		}
		return nil, nil
	case isListTable(t):
		if table := o.listTable(t); table != nil {
			return table.Columns(), nil
		}
		return nil, nil
	case t == TableShapes, t == TableStopChildren:
		return nil, fmt.Errorf("%w: %s", ErrNotDumpable, t)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTable, t)
}

// Len returns the number of keys held by a populated slot, or 0.
func (o *Object) Len(t TableName) int {
	switch {
	case isRowTable(t):
		if table := o.rowTable(t); table != nil {
			return table.Len()
		}
	case isListTable(t):
		if table := o.listTable(t); table != nil {
			return table.Len()
		}
	case t == TableShapes:
		return len(o.Shapes)
	case t == TableStopChildren:
		return len(o.StopChildren)
	}
	return 0
}

// StopsInGroup returns every stop sharing a station with stopID. The requested stop comes first;
// for a child stop its station follows, then its siblings. A stop outside any station yields just itself,
// an unknown stop yields nothing.
func (o *Object) StopsInGroup(stopID string) []Row {
	if o.Stops == nil {
		return nil
	}
	stop, ok := o.Stops.Get(stopID)
	if !ok {
		return nil
	}

	group := []Row{stop}
	appendChildren := func(stationID string) {
		for _, childID := range o.StopChildren[stationID] {
			if childID == stopID {
				continue
			}
			if child, ok := o.Stops.Get(childID); ok {
				group = append(group, child)
			}
		}
	}

	if stop["location_type"] == locationTypeStation {
		appendChildren(stopID)
	} else if parentID := stop["parent_station"]; parentID != "" {
		if _, isParent := o.StopChildren[parentID]; isParent {
			if parent, ok := o.Stops.Get(parentID); ok {
				group = append(group, parent)
			}
			appendChildren(parentID)
		}
	}
	return group
}
