package seeder

import (
	"fmt"
	"math"
	"time"

	"github.com/Rana718/Roster/internal/types"
)

type Assignment struct {
	ID             string
	ClassID        int
	Title          string
	DueDate        time.Time
	PointsPossible int
	Category       string
}

type Grade struct {
	ID           string
	StudentID    int
	AssignmentID string
	Score        int
	SubmittedOn  time.Time
}

type category struct {
	name   string
	points int
}

// subjectCategories holds the assignment kinds and point values per subject.
var subjectCategories = map[string][]category{
	"Math":           {{"Homework", 10}, {"Quiz", 20}, {"Test", 100}, {"Project", 50}},
	"ELA":            {{"Essay", 100}, {"Reading Quiz", 20}, {"Homework", 10}},
	"Science":        {{"Lab", 50}, {"Quiz", 20}, {"Test", 100}, {"Homework", 10}},
	"Social Studies": {{"Project", 100}, {"Quiz", 20}, {"Homework", 10}},
	"PE":             {{"Participation", 10}},
	"Art":            {{"Project", 100}, {"Sketchbook", 10}},
}

var defaultCategories = []category{{"Homework", 10}, {"Quiz", 20}, {"Test", 100}}

const (
	lateSubmissionProb = 0.05
	perfectScoreProb   = 0.03
	failingScoreProb   = 0.07
)

var (
	assignmentColumns = []string{"assignment_id", "class_id", "title", "due_date", "points_possible", "category"}
	gradeColumns      = []string{"grade_id", "student_id", "assignment_id", "score", "submitted_on"}
)

func categoriesFor(subject string) []category {
	if cats, ok := subjectCategories[subject]; ok {
		return cats
	}
	return defaultCategories
}

// GenerateAssignments posts 1-2 assignments per class for every week
// starting at start, each due within the first five days of its week.
func GenerateAssignments(g *DataGenerator, classes []Class, start, end time.Time) []Assignment {
	var assignments []Assignment
	for _, c := range classes {
		for week := start; !week.After(end); week = week.AddDate(0, 0, 7) {
			n := g.IntRange(1, 2)
			for i := 0; i < n; i++ {
				cat := Choice(g, categoriesFor(c.Subject))
				due := week.AddDate(0, 0, g.IntRange(0, 4))
				_, isoWeek := due.ISOWeek()
				assignments = append(assignments, Assignment{
					ID:             g.Token("A"),
					ClassID:        c.ID,
					Title:          fmt.Sprintf("%s: %s Week %d", cat.name, c.Subject, isoWeek),
					DueDate:        due,
					PointsPossible: cat.points,
					Category:       cat.name,
				})
			}
		}
	}
	return assignments
}

type studentProfile struct {
	ability float64
	trend   float64
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// GenerateGrades scores every enrolled student on each assignment of their
// classes. A student's expected percentage drifts from their ability by
// trend points per week elapsed since start.
func GenerateGrades(g *DataGenerator, assignments []Assignment, enrollments []Enrollment, students []Student, start time.Time) []Grade {
	profiles := make(map[int]studentProfile, len(students))
	for _, s := range students {
		profiles[s.ID] = studentProfile{
			ability: clip(g.Normal(80, 10), 50, 100),
			trend:   Choice(g, []float64{-0.1, 0, 0.1}),
		}
	}

	rosters := make(map[int][]int)
	for _, e := range enrollments {
		rosters[e.ClassID] = append(rosters[e.ClassID], e.StudentID)
	}

	var grades []Grade
	for _, a := range assignments {
		weeks := a.DueDate.Sub(start).Hours() / 24 / 7
		for _, sid := range rosters[a.ClassID] {
			p, ok := profiles[sid]
			if !ok {
				continue
			}
			base := p.ability + p.trend*weeks
			pct := clip(g.Normal(base, 10), 0, 100)
			if g.Chance(perfectScoreProb) {
				pct = 100
			} else if g.Chance(failingScoreProb) {
				pct = g.Uniform(0, 59)
			}
			score := int(math.RoundToEven(float64(a.PointsPossible) * pct / 100))

			submitted := a.DueDate.AddDate(0, 0, -g.IntRange(0, 1))
			if g.Chance(lateSubmissionProb) {
				submitted = a.DueDate.AddDate(0, 0, g.IntRange(1, 5))
			}

			grades = append(grades, Grade{
				ID:           g.Token("G"),
				StudentID:    sid,
				AssignmentID: a.ID,
				Score:        score,
				SubmittedOn:  submitted,
			})
		}
	}
	return grades
}

func assignmentsTable(assignments []Assignment) *types.Table {
	return tableOf("assignments", assignmentColumns, assignments, func(a Assignment) []string {
		return []string{a.ID, itoa(a.ClassID), a.Title, formatDate(a.DueDate), itoa(a.PointsPossible), a.Category}
	})
}

func gradesTable(grades []Grade) *types.Table {
	return tableOf("grades", gradeColumns, grades, func(gr Grade) []string {
		return []string{gr.ID, itoa(gr.StudentID), gr.AssignmentID, itoa(gr.Score), formatDate(gr.SubmittedOn)}
	})
}

func assignmentsStage() *Stage {
	return &Stage{
		Name:     "assignments",
		Requires: []string{"classes", "students", "enrollments"},
		Produces: []string{"assignments", "grades"},
		Run: func(env *Env) error {
			classes, err := decodeClasses(env.Input("classes"))
			if err != nil {
				return err
			}
			students, err := decodeStudents(env.Input("students"))
			if err != nil {
				return err
			}
			enrollments, err := decodeEnrollments(env.Input("enrollments"))
			if err != nil {
				return err
			}

			assignments := GenerateAssignments(env.Gen, classes, AssignmentStart, AssignmentEnd)
			grades := GenerateGrades(env.Gen, assignments, enrollments, students, AssignmentStart)
			return env.Emit(assignmentsTable(assignments), gradesTable(grades))
		},
	}
}
