package seeder

import (
	"fmt"

	"github.com/Rana718/Roster/internal/types"
)

const (
	GuardianMother = iota + 1
	GuardianFather
	GuardianStepMother
	GuardianStepFather
	GuardianGrandmother
	GuardianGrandfather
	GuardianAunt
	GuardianUncle
	GuardianLegal
	GuardianOther
)

var guardianTypeNames = []string{
	"Mother", "Father", "Step-Mother", "Step-Father", "Grandmother",
	"Grandfather", "Aunt", "Uncle", "Legal Guardian", "Other",
}

var departmentNames = []string{
	"Mathematics", "Science", "English", "Social Studies", "Foreign Languages",
	"Physical Education", "Fine Arts", "Technology", "Electives",
}

type period struct {
	start, end string
}

var periods = []period{
	{"08:00:00", "08:50:00"},
	{"09:00:00", "09:50:00"},
	{"10:00:00", "10:50:00"},
	{"11:00:00", "11:50:00"},
	{"12:30:00", "13:20:00"},
	{"13:30:00", "14:20:00"},
	{"14:30:00", "15:20:00"},
}

type term struct {
	name       string
	start, end string
}

var terms = []term{
	{"Q1 2015", "2015-08-24", "2015-10-30"},
	{"Q2 2015", "2015-11-02", "2016-01-15"},
	{"Q3 2016", "2016-01-19", "2016-03-25"},
	{"Q4 2016", "2016-03-28", "2016-06-09"},
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// GenerateLookups returns the fixed catalogs every other table points into.
func GenerateLookups() []*types.Table {
	gradeLevels := types.NewTable("grade_levels", "grade_level_id", "name", "level_order")
	for g := 1; g <= 12; g++ {
		gradeLevels.Rows = append(gradeLevels.Rows, []string{itoa(g), ordinal(g) + " Grade", itoa(g)})
	}

	guardianTypes := types.NewTable("guardian_types", "guardian_type_id", "name")
	for i, name := range guardianTypeNames {
		guardianTypes.Rows = append(guardianTypes.Rows, []string{itoa(i + 1), name})
	}

	departments := types.NewTable("departments", "department_id", "name")
	for i, name := range departmentNames {
		departments.Rows = append(departments.Rows, []string{itoa(i + 1), name})
	}

	periodTable := types.NewTable("periods", "period_id", "name", "start_time", "end_time")
	for i, p := range periods {
		periodTable.Rows = append(periodTable.Rows, []string{itoa(i + 1), fmt.Sprintf("Period %d", i+1), p.start, p.end})
	}

	schoolYears := types.NewTable("school_years", "school_year_id", "year_label", "start_date", "end_date")
	schoolYears.Rows = append(schoolYears.Rows, []string{
		"1",
		fmt.Sprintf("%d–%d", SchoolYearStart.Year(), SchoolYearEnd.Year()),
		formatDate(SchoolYearStart),
		formatDate(SchoolYearEnd),
	})

	termTable := types.NewTable("terms", "term_id", "school_year_id", "name", "start_date", "end_date")
	for i, t := range terms {
		termTable.Rows = append(termTable.Rows, []string{itoa(i + 1), "1", t.name, t.start, t.end})
	}

	return []*types.Table{gradeLevels, guardianTypes, departments, periodTable, schoolYears, termTable}
}

func lookupsStage() *Stage {
	return &Stage{
		Name:     "lookups",
		Produces: []string{"grade_levels", "guardian_types", "departments", "periods", "school_years", "terms"},
		Run: func(env *Env) error {
			return env.Emit(GenerateLookups()...)
		},
	}
}
