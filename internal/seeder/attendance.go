package seeder

import (
	"time"

	"github.com/Rana718/Roster/internal/types"
)

const (
	StatusPresent = "Present"
	StatusTardy   = "Tardy"
	StatusAbsent  = "Absent"

	tardyBand = 0.03
)

type AttendanceRecord struct {
	ID        string
	StudentID int
	Date      time.Time
	Status    string
}

var attendanceColumns = []string{"attendance_id", "student_id", "date", "status"}

// GenerateAttendance writes one record per student per school day. Each
// student has a reliability in [0.85, 0.99); a day's draw below it is
// Present, within the next 0.03 Tardy, otherwise Absent.
func GenerateAttendance(g *DataGenerator, students []Student, schoolDays []time.Time) []AttendanceRecord {
	records := make([]AttendanceRecord, 0, len(students)*len(schoolDays))
	for _, s := range students {
		reliability := g.Uniform(0.85, 0.99)
		for _, day := range schoolDays {
			r := g.Float64()
			status := StatusAbsent
			switch {
			case r < reliability:
				status = StatusPresent
			case r < reliability+tardyBand:
				status = StatusTardy
			}
			records = append(records, AttendanceRecord{
				ID:        g.Token("A"),
				StudentID: s.ID,
				Date:      day,
				Status:    status,
			})
		}
	}
	return records
}

func attendanceTable(records []AttendanceRecord) *types.Table {
	return tableOf("attendance", attendanceColumns, records, func(r AttendanceRecord) []string {
		return []string{r.ID, itoa(r.StudentID), formatDate(r.Date), r.Status}
	})
}

// schoolDaysInput decodes the calendar input and keeps only teaching days.
func schoolDaysInput(env *Env) ([]time.Time, error) {
	days, err := decodeCalendar(env.Input("school_calendar"))
	if err != nil {
		return nil, err
	}
	return SchoolDays(days), nil
}

func attendanceStage() *Stage {
	return &Stage{
		Name:     "attendance",
		Requires: []string{"students", "school_calendar"},
		Produces: []string{"attendance"},
		Run: func(env *Env) error {
			students, err := decodeStudents(env.Input("students"))
			if err != nil {
				return err
			}
			days, err := schoolDaysInput(env)
			if err != nil {
				return err
			}
			return env.Emit(attendanceTable(GenerateAttendance(env.Gen, students, days)))
		},
	}
}
