package seeder

import (
	"time"

	"github.com/Rana718/Roster/internal/types"
)

type incident struct {
	kind, severity, action string
}

var incidents = []incident{
	{"Disruption", "Minor", "Verbal Warning"},
	{"Tardiness", "Minor", "Warning"},
	{"Dress Code Violation", "Minor", "Parent Contact"},
	{"Defiance", "Moderate", "Detention"},
	{"Inappropriate Language", "Moderate", "Detention"},
	{"Skipping Class", "Moderate", "Parent Meeting"},
	{"Fighting", "Severe", "Suspension"},
	{"Bullying", "Severe", "Suspension"},
	{"Physical Aggression", "Severe", "Suspension"},
}

var incidentDescriptions = map[string]string{
	"Disruption":             "Talked loudly or interrupted class repeatedly.",
	"Tardiness":              "Arrived late without a valid excuse.",
	"Dress Code Violation":   "Wore clothing not in line with dress policy.",
	"Defiance":               "Refused to follow teacher directions.",
	"Inappropriate Language": "Used offensive or inappropriate words.",
	"Skipping Class":         "Did not attend assigned class without excuse.",
	"Fighting":               "Engaged in a physical altercation with another student.",
	"Bullying":               "Repeated harassment or intimidation of a peer.",
	"Physical Aggression":    "Pushed, hit, or physically harmed another student.",
}

const disciplineProb = 0.2

type DisciplineReport struct {
	ID          string
	StudentID   int
	Date        time.Time
	Type        string
	Severity    string
	ActionTaken string
	Description string
}

var disciplineColumns = []string{"report_id", "student_id", "date", "type", "severity", "action_taken", "description"}

// GenerateDisciplineReports gives one student in five between one and five
// incidents, each on a random school day.
func GenerateDisciplineReports(g *DataGenerator, students []Student, schoolDays []time.Time) []DisciplineReport {
	var reports []DisciplineReport
	if len(schoolDays) == 0 {
		return reports
	}
	for _, s := range students {
		if !g.Chance(disciplineProb) {
			continue
		}
		n := g.IntRange(1, 5)
		for i := 0; i < n; i++ {
			inc := Choice(g, incidents)
			reports = append(reports, DisciplineReport{
				ID:          g.Token("D"),
				StudentID:   s.ID,
				Date:        Choice(g, schoolDays),
				Type:        inc.kind,
				Severity:    inc.severity,
				ActionTaken: inc.action,
				Description: incidentDescriptions[inc.kind],
			})
		}
	}
	return reports
}

func disciplineTable(reports []DisciplineReport) *types.Table {
	return tableOf("discipline_reports", disciplineColumns, reports, func(r DisciplineReport) []string {
		return []string{r.ID, itoa(r.StudentID), formatDate(r.Date), r.Type, r.Severity, r.ActionTaken, r.Description}
	})
}

func disciplineStage() *Stage {
	return &Stage{
		Name:     "discipline",
		Requires: []string{"students", "school_calendar"},
		Produces: []string{"discipline_reports"},
		Run: func(env *Env) error {
			students, err := decodeStudents(env.Input("students"))
			if err != nil {
				return err
			}
			days, err := schoolDaysInput(env)
			if err != nil {
				return err
			}
			return env.Emit(disciplineTable(GenerateDisciplineReports(env.Gen, students, days)))
		},
	}
}
