package seeder

import (
	"testing"
	"time"
)

func TestBuildCalendarContract(t *testing.T) {
	days := BuildCalendar(SchoolYearStart, SchoolYearEnd, Holidays)

	if len(days) != 291 {
		t.Fatalf("Expected 291 calendar days, got %d", len(days))
	}
	if !days[0].Date.Equal(SchoolYearStart) || !days[len(days)-1].Date.Equal(SchoolYearEnd) {
		t.Fatalf("Calendar spans %s..%s", formatDate(days[0].Date), formatDate(days[len(days)-1].Date))
	}

	for i, d := range days {
		if i > 0 && !d.Date.Equal(days[i-1].Date.AddDate(0, 0, 1)) {
			t.Fatalf("Gap or duplicate between %s and %s", formatDate(days[i-1].Date), formatDate(d.Date))
		}

		weekend := d.Date.Weekday() == time.Saturday || d.Date.Weekday() == time.Sunday
		holiday := false
		for _, h := range Holidays {
			if h.Contains(d.Date) {
				holiday = true
				break
			}
		}
		if d.IsSchoolDay == (weekend || holiday) {
			t.Errorf("%s: is_school_day=%v with weekend=%v holiday=%v", formatDate(d.Date), d.IsSchoolDay, weekend, holiday)
		}
		if weekend && d.Comment != "Weekend" {
			t.Errorf("%s: expected Weekend comment, got %q", formatDate(d.Date), d.Comment)
		}
	}
}

func TestCalendarHolidayNames(t *testing.T) {
	days := BuildCalendar(SchoolYearStart, SchoolYearEnd, Holidays)
	byDate := make(map[string]CalendarDay)
	for _, d := range days {
		byDate[formatDate(d.Date)] = d
	}

	cases := map[string]string{
		"2015-09-07": "Labor Day",
		"2015-11-27": "Thanksgiving Break",
		"2016-01-04": "Winter Break",
		"2016-04-01": "Spring Break",
		"2016-05-30": "Memorial Day",
	}
	for day, name := range cases {
		d := byDate[day]
		if !d.IsHoliday || d.HolidayName != name || d.IsSchoolDay {
			t.Errorf("%s: expected holiday %q, got %+v", day, name, d)
		}
	}
	if d := byDate["2015-09-08"]; !d.IsSchoolDay || d.IsHoliday {
		t.Errorf("2015-09-08 should be a school day, got %+v", d)
	}
}

func TestCalendarDecode(t *testing.T) {
	days := BuildCalendar(SchoolYearStart, SchoolYearEnd, Holidays)
	decoded, err := decodeCalendar(calendarTable(days))
	if err != nil {
		t.Fatalf("Failed to decode calendar: %v", err)
	}
	if len(SchoolDays(decoded)) != len(SchoolDays(days)) {
		t.Errorf("Expected %d school days after decoding, got %d", len(SchoolDays(days)), len(SchoolDays(decoded)))
	}
}

func TestLookups(t *testing.T) {
	tables := GenerateLookups()
	rows := make(map[string]int)
	for _, table := range tables {
		rows[table.Name] = table.Len()
	}
	want := map[string]int{
		"grade_levels":   12,
		"guardian_types": 10,
		"departments":    9,
		"periods":        7,
		"school_years":   1,
		"terms":          4,
	}
	for name, n := range want {
		if rows[name] != n {
			t.Errorf("Expected %d rows in %s, got %d", n, name, rows[name])
		}
	}

	grades := tables[0]
	if grades.Rows[0][1] != "1st Grade" || grades.Rows[11][1] != "12th Grade" {
		t.Errorf("Unexpected grade level names %q and %q", grades.Rows[0][1], grades.Rows[11][1])
	}
}
