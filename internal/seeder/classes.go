package seeder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rana718/Roster/internal/types"
)

type Class struct {
	ID        int
	Name      string
	Grade     int
	Subject   string
	TeacherID string
}

var (
	ElementarySubjects = []string{"Homeroom", "Math", "Reading", "Science", "Social Studies"}
	MiddleSubjects     = []string{"Math", "ELA", "Science", "Social Studies", "Art", "PE", "Technology"}
	HighSubjects       = []string{"Algebra I", "Geometry", "Biology", "Chemistry", "English", "US History", "Civics", "Health", "Spanish"}

	classColumns = []string{"class_id", "class_name", "grade_level", "subject", "teacher_id"}
)

func SubjectsForGrade(grade int) []string {
	switch {
	case grade <= 5:
		return ElementarySubjects
	case grade <= 8:
		return MiddleSubjects
	default:
		return HighSubjects
	}
}

// gradeSpan returns the grades a teacher can cover, judged by role label and
// the floater flag. ok is false for staff who never lead a section.
func gradeSpan(t Teacher) (lo, hi int, ok bool) {
	role := strings.ToLower(t.RoleLabel)
	switch {
	case strings.Contains(role, "elementary") || (t.IsFloater && role == ""):
		return 0, 5, true
	case strings.Contains(role, "middle"):
		return 6, 8, true
	case strings.Contains(role, "high"):
		return 9, 12, true
	case t.IsFloater:
		return 0, 12, true
	}
	return 0, 0, false
}

func teacherPools(teachers []Teacher) map[int][]Teacher {
	pools := make(map[int][]Teacher)
	for _, t := range teachers {
		lo, hi, ok := gradeSpan(t)
		if !ok {
			continue
		}
		for g := lo; g <= hi; g++ {
			pools[g] = append(pools[g], t)
		}
	}
	return pools
}

func sectionsFor(students, maxClassSize int) int {
	return (students + maxClassSize - 1) / maxClassSize
}

// GenerateClasses opens ceil(n/maxClassSize) sections per subject for every
// grade with students. Each section takes the last teacher of the grade's
// pool; the pool is shared by all subjects of that grade, and sections left
// without a teacher are marked Unassigned and reported in the warnings.
func GenerateClasses(students []Student, teachers []Teacher, maxClassSize int) ([]Class, []string) {
	counts := make(map[int]int)
	for _, s := range students {
		counts[s.Grade]++
	}
	gradeList := make([]int, 0, len(counts))
	for g := range counts {
		gradeList = append(gradeList, g)
	}
	sort.Ints(gradeList)

	pools := teacherPools(teachers)
	var classes []Class
	var warnings []string
	nextID := 1

	for _, grade := range gradeList {
		pool := append([]Teacher(nil), pools[grade]...)
		sections := sectionsFor(counts[grade], maxClassSize)

		for _, subject := range SubjectsForGrade(grade) {
			if len(pool) < sections {
				warnings = append(warnings, fmt.Sprintf("Not enough teachers for Grade %d - %s. Needed: %d, Available: %d",
					grade, subject, sections, len(pool)))
			}
			for section := 1; section <= sections; section++ {
				teacherID := Unassigned
				if n := len(pool); n > 0 {
					teacherID = itoa(pool[n-1].ID)
					pool = pool[:n-1]
				}
				classes = append(classes, Class{
					ID:        nextID,
					Name:      fmt.Sprintf("Grade %d - %s (Section %d)", grade, subject, section),
					Grade:     grade,
					Subject:   subject,
					TeacherID: teacherID,
				})
				nextID++
			}
		}
	}
	return classes, warnings
}

// staffingSubjects is the order in which middle school gaps are filled.
var staffingSubjects = []string{"Art", "ELA", "Math", "PE", "Science", "Social Studies", "Technology"}

// StaffingGaps counts unassigned grade 6-8 sections per middle school subject.
func StaffingGaps(classes []Class) map[string]int {
	gaps := make(map[string]int)
	for _, c := range classes {
		if c.TeacherID == Unassigned && c.Grade >= 6 && c.Grade <= 8 {
			gaps[c.Subject]++
		}
	}
	return gaps
}

// BackfillTeachers hires ceil(gap/maxSections) middle school teachers per
// subject. departments maps a lowercased department name to its id; subjects
// with no matching department get id 0.
func BackfillTeachers(g *DataGenerator, alloc *Allocator, classes []Class, departments map[string]int, maxSections int) []Teacher {
	gaps := StaffingGaps(classes)
	var hired []Teacher
	for _, subject := range staffingSubjects {
		need := sectionsFor(gaps[subject], maxSections)
		for i := 0; i < need; i++ {
			t := newTeacher(g, alloc.NextID("teacher"), RoleMiddleSchool)
			t.DepartmentID = departments[strings.ToLower(subject)]
			hired = append(hired, t)
		}
	}
	return hired
}

func classesTable(classes []Class) *types.Table {
	return tableOf("classes", classColumns, classes, func(c Class) []string {
		return []string{itoa(c.ID), c.Name, itoa(c.Grade), c.Subject, c.TeacherID}
	})
}

func decodeClasses(t *types.Table) ([]Class, error) {
	cols, err := indexColumns(t, "class_id", "grade_level", "subject")
	if err != nil {
		return nil, err
	}
	classes := make([]Class, 0, t.Len())
	for _, row := range t.Rows {
		id, err := cols.atoi(row, "class_id")
		if err != nil {
			return nil, err
		}
		grade, err := cols.atoi(row, "grade_level")
		if err != nil {
			return nil, err
		}
		classes = append(classes, Class{
			ID:        id,
			Name:      cols.str(row, "class_name"),
			Grade:     grade,
			Subject:   cols.str(row, "subject"),
			TeacherID: cols.str(row, "teacher_id"),
		})
	}
	return classes, nil
}

func decodeDepartments(t *types.Table) (map[string]int, error) {
	depts := make(map[string]int)
	if t == nil {
		return depts, nil
	}
	cols, err := indexColumns(t, "department_id", "name")
	if err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		id, err := cols.atoi(row, "department_id")
		if err != nil {
			return nil, err
		}
		depts[strings.ToLower(cols.str(row, "name"))] = id
	}
	return depts, nil
}

func classesStage() *Stage {
	return &Stage{
		Name:     "classes",
		Requires: []string{"students", "teachers"},
		Optional: []string{"departments"},
		Produces: []string{"classes"},
		Appends:  []string{"teachers"},
		Run: func(env *Env) error {
			students, err := decodeStudents(env.Input("students"))
			if err != nil {
				return err
			}
			teachers, err := decodeTeachers(env.Input("teachers"))
			if err != nil {
				return err
			}

			classes, warnings := GenerateClasses(students, teachers, env.Config.MaxClassSize)

			if env.Config.BackfillStaffing {
				depts, err := decodeDepartments(env.Input("departments"))
				if err != nil {
					return err
				}
				for _, t := range teachers {
					env.Alloc.StartAfter("teacher", t.ID)
				}
				hired := BackfillTeachers(env.Gen, env.Alloc, classes, depts, env.Config.MaxSectionsPerTeacher)
				if len(hired) > 0 {
					env.Warn("hired %d middle school teachers to cover unassigned sections", len(hired))
					teachers = append(teachers, hired...)
					classes, warnings = GenerateClasses(students, teachers, env.Config.MaxClassSize)
					if err := env.Emit(teachersTable(teachers)); err != nil {
						return err
					}
				}
			}

			for _, w := range warnings {
				env.Warn("%s", w)
			}
			return env.Emit(classesTable(classes))
		},
	}
}
