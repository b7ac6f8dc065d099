package gtfs

import (
	"sort"
	"time"
)

const (
	exceptionAdded   = "1"
	exceptionRemoved = "2"
)

var weekdayColumns = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// ActiveDates returns, in ascending order, every day on which the service runs:
// the weekdays flagged in calendar.txt between start_date and end_date inclusive,
// plus calendar_dates.txt additions, minus its removals. Unparseable dates are ignored.
func (o *Object) ActiveDates(serviceID string) []time.Time {
	active := map[time.Time]struct{}{}

	if o.Calendar != nil {
		if row, ok := o.Calendar.Get(serviceID); ok {
			start, okStart := ParseDate(row["start_date"])
			end, okEnd := ParseDate(row["end_date"])
			if okStart && okEnd {
				for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
					if row[weekdayColumns[day.Weekday()]] == "1" {
						active[day] = struct{}{}
					}
				}
			}
		}
	}

	if o.CalendarDates != nil {
		exceptions, _ := o.CalendarDates.Get(serviceID)
		for _, row := range exceptions {
			day, ok := ParseDate(row["date"])
			if !ok {
				continue
			}
			switch row["exception_type"] {
			case exceptionAdded:
				active[day] = struct{}{}
			case exceptionRemoved:
				delete(active, day)
			}
		}
	}

	dates := make([]time.Time, 0, len(active))
	for day := range active {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}
