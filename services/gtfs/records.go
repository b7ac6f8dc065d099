package gtfs

import (
	"strconv"
	"strings"
)

// The structs below are typed views of the raw tables. They are filled with
// RowTable.Decode or ListTable.Decode; ingestion itself never produces them.

// Agency represents the transit agency supplying service.
type Agency struct {
	ID            string `csv:"agency_id"`
	Name          string `csv:"agency_name"`
	URL           string `csv:"agency_url"`
	TZ            string `csv:"agency_timezone"`
	Language      string `csv:"agency_lang"`
	ContactNumber string `csv:"agency_phone"`
	FareURL       string `csv:"agency_fare_url"`
	ContactEmail  string `csv:"agency_email"`
}

// Stop is a location where vehicles pick up or drop off riders, or a station grouping such locations.
type Stop struct {
	ID                 string `csv:"stop_id"`
	Code               string `csv:"stop_code"`
	Name               string `csv:"stop_name"`
	Description        string `csv:"stop_desc"`
	Latitude           string `csv:"stop_lat"`
	Longitude          string `csv:"stop_lon"`
	ZoneID             string `csv:"zone_id"`
	URL                string `csv:"stop_url"`
	LocationType       CSVInt `csv:"location_type"`
	ParentStation      string `csv:"parent_station"`
	TZ                 string `csv:"stop_timezone"`
	WheelchairBoarding CSVInt `csv:"wheelchair_boarding"`
	PlatformCode       string `csv:"platform_code"`
}

// IsStation reports whether the stop groups other stops.
func (s *Stop) IsStation() bool {
	return s.LocationType == 1
}

// RouteType represents the possible set of route types
type RouteType int

const (
	// RouteTypeLRT is a route served by an LRT or streetcar
	RouteTypeLRT RouteType = 0
	// RouteTypeSubway is a route served by a subway
	RouteTypeSubway RouteType = 1
	// RouteTypeRail is a route served by a heavy rail system
	RouteTypeRail RouteType = 2
	// RouteTypeBus is a route served by a bus
	RouteTypeBus RouteType = 3
	// RouteTypeFerry is a route served by a ferry
	RouteTypeFerry RouteType = 4
	// RouteTypeCableTram is a route served by a cable-driven tram system
	RouteTypeCableTram RouteType = 5
	// RouteTypeAerialLift is a route served by an aerial lift system
	RouteTypeAerialLift RouteType = 6
	// RouteTypeFunicular is a route served by a funicular system
	RouteTypeFunicular RouteType = 7
	// RouteTypeTrolleybus is a route served by a trolleybus
	RouteTypeTrolleybus RouteType = 11
	// RouteTypeMonorail is a route served by a monorail
	RouteTypeMonorail RouteType = 12
)

// String presents the caller with a human readable version of this enum.
func (rt RouteType) String() string {
	switch rt {
	case RouteTypeLRT:
		return "LRT/Streetcar"
	case RouteTypeSubway:
		return "Subway"
	case RouteTypeRail:
		return "Rail"
	case RouteTypeBus:
		return "Bus"
	case RouteTypeFerry:
		return "Ferry"
	case RouteTypeCableTram:
		return "Cable Tram"
	case RouteTypeAerialLift:
		return "Aerial Lift"
	case RouteTypeFunicular:
		return "Funicular"
	case RouteTypeTrolleybus:
		return "Trolleybus"
	case RouteTypeMonorail:
		return "Monorail"
	default:
		return "Unknown"
	}
}

// MarshalCSV converts this enum into a string for CSV writing.
func (rt RouteType) MarshalCSV() (string, error) {
	return strconv.Itoa(int(rt)), nil
}

// UnmarshalCSV attempts to convert a string value from a CSV file into the enum value.
func (rt *RouteType) UnmarshalCSV(csv string) error {
	val, err := strconv.ParseInt(strings.TrimSpace(csv), 10, 32)
	if err != nil {
		return err
	}

	*rt = RouteType(val)
	return nil
}

// Route represents a logical run of a vehicle.
type Route struct {
	ID          string    `csv:"route_id"`
	AgencyID    string    `csv:"agency_id"`
	ShortName   string    `csv:"route_short_name"`
	LongName    string    `csv:"route_long_name"`
	Description string    `csv:"route_desc"`
	Type        RouteType `csv:"route_type"`
	URL         string    `csv:"route_url"`
	Color       string    `csv:"route_color"`
	TextColor   string    `csv:"route_text_color"`
	SortOrder   CSVInt    `csv:"route_sort_order"`
}

// Trip is a single run of a route on the days of its service.
type Trip struct {
	RouteID              string `csv:"route_id"`
	ServiceID            string `csv:"service_id"`
	ID                   string `csv:"trip_id"`
	Headsign             string `csv:"trip_headsign"`
	ShortName            string `csv:"trip_short_name"`
	DirectionID          string `csv:"direction_id"`
	BlockID              string `csv:"block_id"`
	ShapeID              string `csv:"shape_id"`
	WheelchairAccessible CSVInt `csv:"wheelchair_accessible"`
	BikesAllowed         CSVInt `csv:"bikes_allowed"`
}

// Calendar is a set of days that the specified service is available.
type Calendar struct {
	ServiceID string  `csv:"service_id"`
	Monday    CSVBool `csv:"monday"`
	Tuesday   CSVBool `csv:"tuesday"`
	Wednesday CSVBool `csv:"wednesday"`
	Thursday  CSVBool `csv:"thursday"`
	Friday    CSVBool `csv:"friday"`
	Saturday  CSVBool `csv:"saturday"`
	Sunday    CSVBool `csv:"sunday"`
	StartDate CSVDate `csv:"start_date"`
	EndDate   CSVDate `csv:"end_date"`
}

// CalendarDate represents a service override on the specified date.
type CalendarDate struct {
	ServiceID     string  `csv:"service_id"`
	Date          CSVDate `csv:"date"`
	ExceptionType string  `csv:"exception_type"`
}

// Frequency describes a headway-based service window of a trip.
type Frequency struct {
	TripID         string  `csv:"trip_id"`
	StartTime      CSVTime `csv:"start_time"`
	EndTime        CSVTime `csv:"end_time"`
	HeadwaySeconds CSVInt  `csv:"headway_secs"`
	ExactTimes     CSVBool `csv:"exact_times"`
}

// StopTime represents the time a specific stop is visited on a specific trip.
type StopTime struct {
	TripID                string   `csv:"trip_id"`
	ArrivalTime           string   `csv:"arrival_time"`
	DepartureTime         string   `csv:"departure_time"`
	StopID                string   `csv:"stop_id"`
	Sequence              CSVInt   `csv:"stop_sequence"`
	Headsign              string   `csv:"stop_headsign"`
	PickupType            string   `csv:"pickup_type"`
	DropOffType           string   `csv:"drop_off_type"`
	ShapeDistanceTraveled CSVFloat `csv:"shape_dist_traveled"`
	Timepoint             string   `csv:"timepoint"`
}
