package gtfs

const locationTypeStation = "1"

// PostProcessStops builds the station to children index from a loaded stops table.
// Every stop which is not itself a station and names a parent_station is appended,
// in table order, to its parent's list. A nil table yields a nil index.
func PostProcessStops(stops *RowTable) StopChildren {
	if stops == nil {
		return nil
	}

	children := StopChildren{}
	stops.Range(func(stopID string, row Row) bool {
		parent := row["parent_station"]
		if row["location_type"] != locationTypeStation && parent != "" {
			children[parent] = append(children[parent], stopID)
		}
		return true
	})
	return children
}

// IndexStopTimesByStop regroups a loaded stop_times table by stop_id.
// Rows under one stop follow the trip order of the source table, then stream order within a trip.
// A nil table yields a nil index.
func IndexStopTimesByStop(stopTimes *ListTable) *ListTable {
	if stopTimes == nil {
		return nil
	}

	byStop := newListTable(stopTimes.columns)
	stopTimes.Range(func(_ string, rows []Row) bool {
		for _, row := range rows {
			byStop.add(row["stop_id"], row)
		}
		return true
	})
	return byStop
}
