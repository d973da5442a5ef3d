package schema

import (
	"bytes"
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/Rana718/Roster/internal/store"
	"github.com/Rana718/Roster/internal/types"
)

func writeRaw(t *testing.T, dir *store.Dir, name string, columns []string, rows ...[]string) {
	t.Helper()
	table := types.NewTable(name, columns...)
	table.Rows = rows
	if err := dir.Write(table); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestNormalizerRun(t *testing.T) {
	src := store.New(t.TempDir())
	dst := store.New(t.TempDir())

	writeRaw(t, src, "teachers",
		[]string{"teacher_id", "first_name", "last_name", "birthdate", "hire_date", "department_id", "is_floater", "role_label"},
		[]string{"1", "Ann", "Lee", "1980-01-02", "2005-08-01", "9", "false", "Elementary Homeroom"})
	writeRaw(t, src, "enrollments", []string{"class_id", "student_id"}, []string{"4", "1"})

	report, err := NewNormalizer(src, dst, DefaultRules()).Quiet().Run(context.Background())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if !reflect.DeepEqual(report.Written, []string{"teachers", "enrollments"}) {
		t.Errorf("Unexpected written tables %v", report.Written)
	}
	if len(report.Skipped) != len(DefaultRules())-2 {
		t.Errorf("Expected %d skipped tables, got %d", len(DefaultRules())-2, len(report.Skipped))
	}

	clean, err := dst.Read("teachers")
	if err != nil {
		t.Fatalf("Failed to read clean teachers: %v", err)
	}
	if want := []string{"teacher_id", "first_name", "last_name"}; !reflect.DeepEqual(clean.Columns, want) {
		t.Errorf("Expected columns %v, got %v", want, clean.Columns)
	}

	enrollments, err := dst.Read("enrollments")
	if err != nil {
		t.Fatalf("Failed to read clean enrollments: %v", err)
	}
	if want := []string{"", "1", "4"}; !reflect.DeepEqual(enrollments.Rows[0], want) {
		t.Errorf("Expected row %v, got %v", want, enrollments.Rows[0])
	}
}

func TestNormalizerIdempotent(t *testing.T) {
	src := store.New(t.TempDir())
	dst := store.New(t.TempDir())
	writeRaw(t, src, "guardians", []string{"guardian_id", "first_name", "last_name", "guardian_type_id"},
		[]string{"1", "Mary", "Stone", "1"}, []string{"2", "Tom", "Stone", "2"})
	writeRaw(t, src, "classes", []string{"class_id", "class_name", "grade_level", "subject", "teacher_id"},
		[]string{"1", "Grade 1 - Math (Section 1)", "1", "Math", "3"})

	n := NewNormalizer(src, dst, DefaultRules()).Quiet()
	if _, err := n.Run(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	first, _ := os.ReadFile(dst.TablePath("guardians"))
	firstClasses, _ := os.ReadFile(dst.TablePath("classes"))

	if _, err := n.Run(context.Background()); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	second, _ := os.ReadFile(dst.TablePath("guardians"))
	secondClasses, _ := os.ReadFile(dst.TablePath("classes"))

	if !bytes.Equal(first, second) || !bytes.Equal(firstClasses, secondClasses) {
		t.Error("Expected byte-identical output on repeat")
	}

	// cleaning the clean directory again changes nothing either
	again := store.New(t.TempDir())
	if _, err := NewNormalizer(dst, again, DefaultRules()).Quiet().Run(context.Background()); err != nil {
		t.Fatalf("Re-normalizing clean output failed: %v", err)
	}
	third, _ := os.ReadFile(again.TablePath("guardians"))
	if !bytes.Equal(first, third) {
		t.Error("Expected clean output to be a fixed point")
	}
}

func TestNormalizerContinuesAfterFailure(t *testing.T) {
	src := store.New(t.TempDir())
	dst := store.New(t.TempDir())
	writeRaw(t, src, "students", []string{"student_id", "first_name"}, []string{"1", "Ann"})
	writeRaw(t, src, "periods", []string{"period_id", "name", "start_time", "end_time"},
		[]string{"1", "Period 1", "08:00:00", "08:50:00"})

	report, err := NewNormalizer(src, dst, DefaultRules()).Quiet().Run(context.Background())
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}
	if _, failed := report.Failed["students"]; !failed {
		t.Error("Expected students to be reported as failed")
	}
	if !dst.Exists("periods") {
		t.Error("Expected periods to be written despite the students failure")
	}
	if dst.Exists("students") {
		t.Error("Expected no clean students table")
	}
}

func TestCoverage(t *testing.T) {
	src := store.New(t.TempDir())
	writeRaw(t, src, "students", []string{"student_id", "first_name", "last_name", "birthdate", "gender", "grade"})
	writeRaw(t, src, "announcements", []string{"id"})

	cov, err := NewNormalizer(src, nil, DefaultRules()).Coverage()
	if err != nil {
		t.Fatalf("Coverage failed: %v", err)
	}
	if !reflect.DeepEqual(cov.Present, []string{"students"}) {
		t.Errorf("Unexpected present tables %v", cov.Present)
	}
	if !reflect.DeepEqual(cov.Extra, []string{"announcements"}) {
		t.Errorf("Unexpected extra tables %v", cov.Extra)
	}
	if len(cov.Missing) != len(DefaultRules())-1 {
		t.Errorf("Expected %d missing tables, got %d", len(DefaultRules())-1, len(cov.Missing))
	}
	if diff := cov.Columns["students"]; len(diff.Dropped) != 0 || len(diff.Missing) != 0 {
		t.Errorf("Expected students to match exactly, got %+v", diff)
	}
}
