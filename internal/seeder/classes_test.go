package seeder

import (
	"strings"
	"testing"
)

func studentsInGrades(counts map[int]int) []Student {
	var students []Student
	id := 1
	for grade := 1; grade <= 12; grade++ {
		for i := 0; i < counts[grade]; i++ {
			students = append(students, Student{ID: id, Grade: grade})
			id++
		}
	}
	return students
}

func teachersWithRole(role string, n int) []Teacher {
	teachers := make([]Teacher, n)
	for i := range teachers {
		teachers[i] = Teacher{ID: i + 1, RoleLabel: role}
	}
	return teachers
}

func TestSectionsPerSubject(t *testing.T) {
	counts := map[int]int{1: 31, 7: 15, 10: 16}
	students := studentsInGrades(counts)
	teachers := append(teachersWithRole(RoleElementaryHomeroom, 28), Teacher{ID: 29, IsFloater: true, RoleLabel: RoleFloater})

	classes, _ := GenerateClasses(students, teachers, DefaultMaxClassSize)

	sections := make(map[int]map[string]int)
	for _, c := range classes {
		if sections[c.Grade] == nil {
			sections[c.Grade] = make(map[string]int)
		}
		sections[c.Grade][c.Subject]++
	}

	for grade, n := range counts {
		want := (n + DefaultMaxClassSize - 1) / DefaultMaxClassSize
		for _, subject := range SubjectsForGrade(grade) {
			if got := sections[grade][subject]; got != want {
				t.Errorf("Grade %d %s: expected %d sections, got %d", grade, subject, want, got)
			}
		}
	}

	if classes[0].Name != "Grade 1 - Homeroom (Section 1)" {
		t.Errorf("Unexpected first class name %q", classes[0].Name)
	}
	for i, c := range classes {
		if c.ID != i+1 {
			t.Fatalf("Expected class id %d, got %d", i+1, c.ID)
		}
	}
}

func TestSharedPoolPopsFromEnd(t *testing.T) {
	students := studentsInGrades(map[int]int{2: 16})
	teachers := teachersWithRole(RoleElementaryHomeroom, 2)

	classes, warnings := GenerateClasses(students, teachers, DefaultMaxClassSize)

	if len(classes) != 10 {
		t.Fatalf("Expected 10 classes, got %d", len(classes))
	}
	if classes[0].TeacherID != "2" || classes[1].TeacherID != "1" {
		t.Errorf("Expected Homeroom sections taught by 2 then 1, got %s and %s", classes[0].TeacherID, classes[1].TeacherID)
	}
	for _, c := range classes[2:] {
		if c.TeacherID != Unassigned {
			t.Errorf("Expected %s to be %s, got %s", c.Name, Unassigned, c.TeacherID)
		}
	}
	if len(warnings) != 4 {
		t.Errorf("Expected 4 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "Grade 2 - Math") {
		t.Errorf("Unexpected first warning %q", warnings[0])
	}
}

func TestGradeSpan(t *testing.T) {
	cases := []struct {
		teacher Teacher
		lo, hi  int
		ok      bool
	}{
		{Teacher{RoleLabel: RoleElementaryHomeroom}, 0, 5, true},
		{Teacher{RoleLabel: RoleMiddleSchool}, 6, 8, true},
		{Teacher{RoleLabel: "High School Chemistry"}, 9, 12, true},
		{Teacher{RoleLabel: RoleFloater, IsFloater: true}, 0, 12, true},
		{Teacher{IsFloater: true}, 0, 5, true},
		{Teacher{RoleLabel: "Math Teacher"}, 0, 0, false},
	}
	for _, tc := range cases {
		lo, hi, ok := gradeSpan(tc.teacher)
		if lo != tc.lo || hi != tc.hi || ok != tc.ok {
			t.Errorf("gradeSpan(%q, floater=%v) = %d, %d, %v; expected %d, %d, %v",
				tc.teacher.RoleLabel, tc.teacher.IsFloater, lo, hi, ok, tc.lo, tc.hi, tc.ok)
		}
	}
}

func TestBackfillTeachers(t *testing.T) {
	students := studentsInGrades(map[int]int{7: 16})
	classes, _ := GenerateClasses(students, nil, DefaultMaxClassSize)

	gaps := StaffingGaps(classes)
	if gaps["Science"] != 2 {
		t.Fatalf("Expected 2 unassigned Science sections, got %d", gaps["Science"])
	}

	g := NewDataGenerator(5)
	alloc := NewAllocator()
	alloc.StartAfter("teacher", 48)
	depts := map[string]int{"science": 2, "social studies": 4}

	hired := BackfillTeachers(g, alloc, classes, depts, DefaultMaxSectionsPerTeacher)
	if len(hired) != len(MiddleSubjects) {
		t.Fatalf("Expected %d hires, got %d", len(MiddleSubjects), len(hired))
	}
	if hired[0].ID != 49 {
		t.Errorf("Expected first hire to get id 49, got %d", hired[0].ID)
	}

	bySubject := make(map[string]Teacher)
	for i, subject := range staffingSubjects {
		bySubject[subject] = hired[i]
	}
	if bySubject["Science"].DepartmentID != 2 {
		t.Errorf("Expected Science hire in department 2, got %d", bySubject["Science"].DepartmentID)
	}
	if bySubject["Math"].DepartmentID != 0 {
		t.Errorf("Expected Math hire in department 0, got %d", bySubject["Math"].DepartmentID)
	}
	for _, h := range hired {
		if h.RoleLabel != RoleMiddleSchool {
			t.Errorf("Expected role %q, got %q", RoleMiddleSchool, h.RoleLabel)
		}
	}

	rerun, _ := GenerateClasses(students, hired, DefaultMaxClassSize)
	assigned := 0
	for _, c := range rerun {
		if c.TeacherID != Unassigned {
			assigned++
		}
	}
	if assigned != len(hired) {
		t.Errorf("Expected %d assigned sections after backfill, got %d", len(hired), assigned)
	}
}

func TestBackfillNothingMissing(t *testing.T) {
	students := studentsInGrades(map[int]int{3: 10})
	classes, _ := GenerateClasses(students, teachersWithRole(RoleElementaryHomeroom, 5), DefaultMaxClassSize)

	hired := BackfillTeachers(NewDataGenerator(1), NewAllocator(), classes, nil, DefaultMaxSectionsPerTeacher)
	if len(hired) != 0 {
		t.Errorf("Expected no hires, got %d", len(hired))
	}
}

func TestEnrollmentsMatchGrade(t *testing.T) {
	students := studentsInGrades(map[int]int{1: 20, 4: 3, 6: 25, 11: 12})
	teachers := append(teachersWithRole(RoleElementaryHomeroom, 10), Teacher{ID: 11, IsFloater: true, RoleLabel: RoleFloater})
	classes, _ := GenerateClasses(students, teachers, DefaultMaxClassSize)

	classByID := make(map[int]Class)
	for _, c := range classes {
		classByID[c.ID] = c
	}

	enrollments := GenerateEnrollments(NewDataGenerator(11), students, classes)

	perStudent := make(map[int][]Class)
	for _, e := range enrollments {
		perStudent[e.StudentID] = append(perStudent[e.StudentID], classByID[e.ClassID])
	}

	for _, s := range students {
		picked := perStudent[s.ID]
		homerooms := 0
		for _, c := range picked {
			if c.Grade != s.Grade {
				t.Errorf("Student %d in grade %d enrolled in %s", s.ID, s.Grade, c.Name)
			}
			if c.Subject == "Homeroom" {
				homerooms++
			}
		}
		if s.Grade <= 5 {
			if homerooms != 1 {
				t.Errorf("Student %d expected one homeroom, got %d", s.ID, homerooms)
			}
			if others := len(picked) - 1; others < 2 || others > 4 {
				t.Errorf("Student %d expected 2-4 other classes, got %d", s.ID, others)
			}
		} else if len(picked) < 5 || len(picked) > 7 {
			t.Errorf("Student %d in grade %d expected 5-7 classes, got %d", s.ID, s.Grade, len(picked))
		}
	}
}
