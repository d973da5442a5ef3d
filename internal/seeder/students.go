package seeder

import (
	"time"

	"github.com/Rana718/Roster/internal/types"
)

type Student struct {
	ID        int
	FirstName string
	LastName  string
	Birthdate time.Time
	Gender    string
	Grade     int
}

var (
	studentColumns      = []string{"student_id", "first_name", "last_name", "birthdate", "gender", "grade"}
	gradeHistoryColumns = []string{"student_id", "academic_year_id", "grade_level_id"}

	grades       = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	gradeWeights = []float64{0.12, 0.12, 0.11, 0.10, 0.10, 0.10, 0.15, 0.06, 0.05, 0.04, 0.03, 0.02}
)

type family struct {
	size    int
	surname string
	// members [0, births) share a birthdate and grade: 2 for twins, 3 for triplets
	births int
}

func buildFamilies(plan FamilyPlan) []*family {
	counts := []int{plan.OnlyChildren, plan.Pairs, plan.Trios, plan.Quads, plan.Quints}
	var families []*family
	for i, n := range counts {
		for j := 0; j < n; j++ {
			families = append(families, &family{size: i + 1})
		}
	}
	return families
}

// markMultipleBirths tags up to plan.TripletSets families of size >= 3 as
// triplet-bearing and up to plan.TwinSets families of size >= 2 as
// twin-bearing, walking the (shuffled) family order.
func markMultipleBirths(families []*family, plan FamilyPlan) {
	twins, triplets := 0, 0
	for _, fam := range families {
		if twins >= plan.TwinSets && triplets >= plan.TripletSets {
			return
		}
		switch {
		case fam.size >= 3 && triplets < plan.TripletSets:
			fam.births = 3
			triplets++
		case fam.size >= 2 && twins < plan.TwinSets:
			fam.births = 2
			twins++
		}
	}
}

// AgeOn returns completed years between birth and ref.
func AgeOn(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() || (ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}

// validDate builds year-month-day, falling back to day 28 when the day does
// not exist in that month (Feb 29 outside leap years, Apr 31, ...).
func validDate(year int, month time.Month, day int) time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month {
		return time.Date(year, month, 28, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// BirthdateForGrade draws a birthdate whose age on ref is grade+5 or grade+6.
func BirthdateForGrade(g *DataGenerator, grade int, ref time.Time) time.Time {
	age := grade + 5 + g.Intn(2)
	month := time.Month(g.IntRange(1, 12))
	day := g.IntRange(1, 31)

	birth := validDate(ref.Year()-age, month, day)
	if AgeOn(birth, ref) < age {
		birth = validDate(ref.Year()-age-1, month, day)
	}
	return birth
}

func clampGrade(grade int) int {
	if grade < 1 {
		return 1
	}
	if grade > 12 {
		return 12
	}
	return grade
}

// GenerateStudents lays out families, gives each a unique surname from the
// allocator's pool and emits their children with sequential ids.
func GenerateStudents(g *DataGenerator, alloc *Allocator, plan FamilyPlan) ([]Student, error) {
	families := buildFamilies(plan)
	g.Shuffle(len(families), func(i, j int) { families[i], families[j] = families[j], families[i] })

	if err := alloc.Reserve(len(families)); err != nil {
		return nil, err
	}
	for _, fam := range families {
		surname, err := alloc.PopSurname()
		if err != nil {
			return nil, err
		}
		fam.surname = surname
	}

	markMultipleBirths(families, plan)

	students := make([]Student, 0, plan.Students())
	for _, fam := range families {
		grade := WeightedChoice(g, grades, gradeWeights)
		var sharedBirth time.Time

		for i := 0; i < fam.size; i++ {
			id := alloc.NextID("student")
			gender := "F"
			if id%2 == 0 {
				gender = "M"
			}
			first := g.FemaleFirstName()
			if gender == "M" {
				first = g.MaleFirstName()
			}

			var birth time.Time
			if i < fam.births {
				if sharedBirth.IsZero() {
					sharedBirth = BirthdateForGrade(g, grade, ReferenceDate)
				}
				birth = sharedBirth
			} else {
				birth = BirthdateForGrade(g, grade, ReferenceDate)
			}

			students = append(students, Student{
				ID:        id,
				FirstName: first,
				LastName:  fam.surname,
				Birthdate: birth,
				Gender:    gender,
				Grade:     grade,
			})

			if i+1 >= fam.births {
				grade = clampGrade(grade + Choice(g, []int{-1, 0, 1}))
			}
		}
	}
	return students, nil
}

func studentsTable(students []Student) *types.Table {
	return tableOf("students", studentColumns, students, func(s Student) []string {
		return []string{itoa(s.ID), s.FirstName, s.LastName, formatDate(s.Birthdate), s.Gender, itoa(s.Grade)}
	})
}

func gradeHistoryTable(students []Student) *types.Table {
	return tableOf("student_grade_history", gradeHistoryColumns, students, func(s Student) []string {
		return []string{itoa(s.ID), "1", itoa(s.Grade)}
	})
}

func decodeStudents(t *types.Table) ([]Student, error) {
	cols, err := indexColumns(t, "student_id", "last_name", "grade")
	if err != nil {
		return nil, err
	}
	students := make([]Student, 0, t.Len())
	for _, row := range t.Rows {
		id, err := cols.atoi(row, "student_id")
		if err != nil {
			return nil, err
		}
		grade, err := cols.atoi(row, "grade")
		if err != nil {
			return nil, err
		}
		s := Student{
			ID:        id,
			FirstName: cols.str(row, "first_name"),
			LastName:  cols.str(row, "last_name"),
			Gender:    cols.str(row, "gender"),
			Grade:     grade,
		}
		if cols.has("birthdate") {
			if s.Birthdate, err = cols.day(row, "birthdate"); err != nil {
				return nil, err
			}
		}
		students = append(students, s)
	}
	return students, nil
}

func studentsStage() *Stage {
	return &Stage{
		Name:     "students",
		Produces: []string{"students", "student_grade_history"},
		Run: func(env *Env) error {
			env.Alloc.LoadSurnames(env.Gen, env.Gen.surnames)
			students, err := GenerateStudents(env.Gen, env.Alloc, env.Config.Families)
			if err != nil {
				return err
			}
			return env.Emit(studentsTable(students), gradeHistoryTable(students))
		},
	}
}
