package seeder

import (
	"time"

	"github.com/Rana718/Roster/internal/types"
)

// Holiday is a named inclusive date range.
type Holiday struct {
	Name       string
	Start, End time.Time
}

func (h Holiday) Contains(day time.Time) bool {
	return !day.Before(h.Start) && !day.After(h.End)
}

// Holidays are checked in order; the first range containing a date names it.
var Holidays = []Holiday{
	{"Labor Day", date(2015, time.September, 7), date(2015, time.September, 7)},
	{"Fall PD Day", date(2015, time.October, 9), date(2015, time.October, 9)},
	{"Thanksgiving Break", date(2015, time.November, 26), date(2015, time.November, 27)},
	{"Winter Break", date(2015, time.December, 21), date(2016, time.January, 4)},
	{"Martin Luther King Jr Day", date(2016, time.January, 18), date(2016, time.January, 18)},
	{"Presidents' Day PD", date(2016, time.February, 15), date(2016, time.February, 15)},
	{"Spring Break", date(2016, time.March, 28), date(2016, time.April, 1)},
	{"Memorial Day", date(2016, time.May, 30), date(2016, time.May, 30)},
}

type CalendarDay struct {
	Date        time.Time
	IsSchoolDay bool
	IsHoliday   bool
	HolidayName string
	Comment     string
}

var calendarColumns = []string{"calendar_date", "is_school_day", "is_holiday", "holiday_name", "comment"}

// BuildCalendar classifies every date in [start, end].
func BuildCalendar(start, end time.Time, holidays []Holiday) []CalendarDay {
	var days []CalendarDay
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		weekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
		entry := CalendarDay{Date: day, IsSchoolDay: !weekend}

		for _, h := range holidays {
			if h.Contains(day) {
				entry.IsHoliday = true
				entry.IsSchoolDay = false
				entry.HolidayName = h.Name
				break
			}
		}
		if weekend {
			entry.Comment = "Weekend"
		}
		days = append(days, entry)
	}
	return days
}

func calendarTable(days []CalendarDay) *types.Table {
	return tableOf("school_calendar", calendarColumns, days, func(d CalendarDay) []string {
		return []string{formatDate(d.Date), formatBool(d.IsSchoolDay), formatBool(d.IsHoliday), d.HolidayName, d.Comment}
	})
}

func decodeCalendar(t *types.Table) ([]CalendarDay, error) {
	cols, err := indexColumns(t, "calendar_date", "is_school_day")
	if err != nil {
		return nil, err
	}
	days := make([]CalendarDay, 0, t.Len())
	for _, row := range t.Rows {
		d, err := cols.day(row, "calendar_date")
		if err != nil {
			return nil, err
		}
		days = append(days, CalendarDay{
			Date:        d,
			IsSchoolDay: cols.flag(row, "is_school_day"),
			IsHoliday:   cols.flag(row, "is_holiday"),
			HolidayName: cols.str(row, "holiday_name"),
			Comment:     cols.str(row, "comment"),
		})
	}
	return days, nil
}

// SchoolDays filters the calendar down to teaching days.
func SchoolDays(days []CalendarDay) []time.Time {
	var out []time.Time
	for _, d := range days {
		if d.IsSchoolDay {
			out = append(out, d.Date)
		}
	}
	return out
}

func calendarStage() *Stage {
	return &Stage{
		Name:     "calendar",
		Produces: []string{"school_calendar"},
		Run: func(env *Env) error {
			return env.Emit(calendarTable(BuildCalendar(SchoolYearStart, SchoolYearEnd, Holidays)))
		},
	}
}
