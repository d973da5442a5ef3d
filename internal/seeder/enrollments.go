package seeder

import "github.com/Rana718/Roster/internal/types"

type Enrollment struct {
	ClassID   int
	StudentID int
}

var enrollmentColumns = []string{"class_id", "student_id"}

// GenerateEnrollments places each student in classes of their own grade.
// Elementary students get one homeroom plus 2-4 other classes; everyone
// else gets 5-7 classes. Section capacity is not enforced.
func GenerateEnrollments(g *DataGenerator, students []Student, classes []Class) []Enrollment {
	byGrade := make(map[int][]Class)
	for _, c := range classes {
		byGrade[c.Grade] = append(byGrade[c.Grade], c)
	}

	var enrollments []Enrollment
	for _, s := range students {
		eligible := byGrade[s.Grade]
		if len(eligible) == 0 {
			continue
		}

		var picked []Class
		if s.Grade <= 5 {
			var homerooms, others []Class
			for _, c := range eligible {
				if c.Subject == "Homeroom" {
					homerooms = append(homerooms, c)
				} else {
					others = append(others, c)
				}
			}
			if len(homerooms) > 0 {
				picked = append(picked, Choice(g, homerooms))
			}
			picked = append(picked, Sample(g, others, g.IntRange(2, 4))...)
		} else {
			picked = Sample(g, eligible, g.IntRange(5, 7))
		}

		for _, c := range picked {
			enrollments = append(enrollments, Enrollment{ClassID: c.ID, StudentID: s.ID})
		}
	}
	return enrollments
}

func enrollmentsTable(enrollments []Enrollment) *types.Table {
	return tableOf("enrollments", enrollmentColumns, enrollments, func(e Enrollment) []string {
		return []string{itoa(e.ClassID), itoa(e.StudentID)}
	})
}

func decodeEnrollments(t *types.Table) ([]Enrollment, error) {
	cols, err := indexColumns(t, "class_id", "student_id")
	if err != nil {
		return nil, err
	}
	enrollments := make([]Enrollment, 0, t.Len())
	for _, row := range t.Rows {
		classID, err := cols.atoi(row, "class_id")
		if err != nil {
			return nil, err
		}
		studentID, err := cols.atoi(row, "student_id")
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, Enrollment{ClassID: classID, StudentID: studentID})
	}
	return enrollments, nil
}

func enrollmentsStage() *Stage {
	return &Stage{
		Name:     "enrollments",
		Requires: []string{"students", "classes"},
		Produces: []string{"enrollments"},
		Run: func(env *Env) error {
			students, err := decodeStudents(env.Input("students"))
			if err != nil {
				return err
			}
			classes, err := decodeClasses(env.Input("classes"))
			if err != nil {
				return err
			}
			return env.Emit(enrollmentsTable(GenerateEnrollments(env.Gen, students, classes)))
		},
	}
}
