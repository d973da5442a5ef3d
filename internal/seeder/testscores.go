package seeder

import (
	"time"

	"github.com/Rana718/Roster/internal/types"
)

type StandardizedTest struct {
	ID         string
	StudentID  int
	TestName   string
	TestDate   time.Time
	Subject    string
	Score      int
	Percentile int
}

type testSitting struct {
	name string
	date time.Time
}

var testsByGrade = map[int]testSitting{
	9:  {"PSAT", date(2015, time.October, 20)},
	10: {"PSAT", date(2015, time.October, 20)},
	11: {"SAT", date(2016, time.March, 5)},
	12: {"ACT", date(2016, time.April, 10)},
}

var testSubjects = map[string][]string{
	"PSAT": {"Math", "Reading", "Writing"},
	"SAT":  {"Math", "Reading", "Writing"},
	"ACT":  {"Math", "Reading", "Science", "English"},
}

var standardizedTestColumns = []string{"test_id", "student_id", "test_name", "test_date", "subject", "score", "percentile"}

// GenerateStandardizedTests scores grade 9-12 students on their grade's
// exam, one row per exam section.
func GenerateStandardizedTests(g *DataGenerator, students []Student) []StandardizedTest {
	var results []StandardizedTest
	for _, s := range students {
		sitting, ok := testsByGrade[s.Grade]
		if !ok {
			continue
		}
		for _, subject := range testSubjects[sitting.name] {
			score := g.IntRange(300, 750)
			if sitting.name == "ACT" {
				score = g.IntRange(14, 35)
			}
			percentile := int(g.Normal(50, 20))
			if percentile < 1 {
				percentile = 1
			}
			if percentile > 99 {
				percentile = 99
			}
			results = append(results, StandardizedTest{
				ID:         g.Token("T"),
				StudentID:  s.ID,
				TestName:   sitting.name,
				TestDate:   sitting.date,
				Subject:    subject,
				Score:      score,
				Percentile: percentile,
			})
		}
	}
	return results
}

func standardizedTestsTable(results []StandardizedTest) *types.Table {
	return tableOf("standardized_tests", standardizedTestColumns, results, func(r StandardizedTest) []string {
		return []string{r.ID, itoa(r.StudentID), r.TestName, formatDate(r.TestDate), r.Subject, itoa(r.Score), itoa(r.Percentile)}
	})
}

func testsStage() *Stage {
	return &Stage{
		Name:     "tests",
		Requires: []string{"students"},
		Produces: []string{"standardized_tests"},
		Run: func(env *Env) error {
			students, err := decodeStudents(env.Input("students"))
			if err != nil {
				return err
			}
			return env.Emit(standardizedTestsTable(GenerateStandardizedTests(env.Gen, students)))
		},
	}
}
