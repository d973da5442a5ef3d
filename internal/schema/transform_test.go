package schema

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Rana718/Roster/internal/types"
)

func ruleFor(t *testing.T, table string) Rule {
	t.Helper()
	for _, rule := range DefaultRules() {
		if rule.Table == table {
			return rule
		}
	}
	t.Fatalf("No rule for %s", table)
	return Rule{}
}

func TestApplyTeachers(t *testing.T) {
	raw := types.NewTable("teachers",
		"teacher_id", "first_name", "last_name", "birthdate", "hire_date", "department_id", "is_floater", "role_label")
	raw.Rows = [][]string{
		{"1", "Ann", "Lee", "1980-01-02", "2005-08-01", "9", "false", "Elementary Homeroom"},
		{"2", "Bob", "Ray", "1975-03-04", "2001-08-01", "1", "false", "Math Teacher"},
	}

	clean, err := Apply(raw, ruleFor(t, "teachers"))
	if err != nil {
		t.Fatalf("Failed to apply rule: %v", err)
	}

	if want := []string{"teacher_id", "first_name", "last_name"}; !reflect.DeepEqual(clean.Columns, want) {
		t.Errorf("Expected columns %v, got %v", want, clean.Columns)
	}
	if want := []string{"2", "Bob", "Ray"}; !reflect.DeepEqual(clean.Rows[1], want) {
		t.Errorf("Expected row %v, got %v", want, clean.Rows[1])
	}
	if len(raw.Columns) != 8 {
		t.Error("Apply must not modify its input")
	}
}

func TestApplyRenameDropAdd(t *testing.T) {
	raw := types.NewTable("guardians", "guardian_id", "first_name", "last_name", "guardian_type_id")
	raw.Rows = [][]string{{"1", "Mary", "Stone", "1"}}

	clean, err := Apply(raw, ruleFor(t, "guardians"))
	if err != nil {
		t.Fatalf("Failed to apply rule: %v", err)
	}
	if want := []string{"guardian_id", "first_name", "last_name", "phone", "email"}; !reflect.DeepEqual(clean.Columns, want) {
		t.Errorf("Expected columns %v, got %v", want, clean.Columns)
	}
	if want := []string{"1", "Mary", "Stone", "", ""}; !reflect.DeepEqual(clean.Rows[0], want) {
		t.Errorf("Expected row %v, got %v", want, clean.Rows[0])
	}
}

func TestApplyGradeLevels(t *testing.T) {
	raw := types.NewTable("grade_levels", "grade_level_id", "name", "level_order")
	raw.Rows = [][]string{{"1", "1st Grade", "1"}}

	clean, err := Apply(raw, ruleFor(t, "grade_levels"))
	if err != nil {
		t.Fatalf("Failed to apply rule: %v", err)
	}
	if want := []string{"grade", "level_name"}; !reflect.DeepEqual(clean.Columns, want) {
		t.Errorf("Expected columns %v, got %v", want, clean.Columns)
	}
	if want := []string{"1", "1st Grade"}; !reflect.DeepEqual(clean.Rows[0], want) {
		t.Errorf("Expected row %v, got %v", want, clean.Rows[0])
	}
}

func TestApplyAddKeepsExistingColumn(t *testing.T) {
	raw := types.NewTable("enrollments", "enrollment_id", "class_id", "student_id")
	raw.Rows = [][]string{{"7", "3", "12"}}

	clean, err := Apply(raw, ruleFor(t, "enrollments"))
	if err != nil {
		t.Fatalf("Failed to apply rule: %v", err)
	}
	if want := []string{"7", "12", "3"}; !reflect.DeepEqual(clean.Rows[0], want) {
		t.Errorf("Expected existing enrollment_id to be kept and columns reordered, got %v", clean.Rows[0])
	}
}

func TestApplyMissingColumn(t *testing.T) {
	raw := types.NewTable("students", "student_id", "first_name", "last_name", "birthdate", "gender")

	_, err := Apply(raw, ruleFor(t, "students"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "students") || !strings.Contains(err.Error(), "grade") {
		t.Errorf("Expected error to name table and column, got %v", err)
	}
}

func TestApplyAbsentRenameIsNoop(t *testing.T) {
	raw := types.NewTable("departments", "department_id", "department_name")
	raw.Rows = [][]string{{"1", "Mathematics"}}

	clean, err := Apply(raw, ruleFor(t, "departments"))
	if err != nil {
		t.Fatalf("Expected rename of an absent column to be ignored, got %v", err)
	}
	if !reflect.DeepEqual(clean.Rows[0], []string{"1", "Mathematics"}) {
		t.Errorf("Unexpected row %v", clean.Rows[0])
	}
}

func TestApplyCleansHeaders(t *testing.T) {
	raw := types.NewTable("periods", "\ufeffperiod_id", " name ", "start_time", "end_time\t")
	raw.Rows = [][]string{{"1", "Period 1", "08:00:00", "08:50:00"}}

	clean, err := Apply(raw, ruleFor(t, "periods"))
	if err != nil {
		t.Fatalf("Expected BOM and whitespace to be stripped, got %v", err)
	}
	if clean.Rows[0][0] != "1" {
		t.Errorf("Unexpected row %v", clean.Rows[0])
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	raw := types.NewTable("classes", "class_id", "class_name", "grade_level", "subject", "teacher_id")
	raw.Rows = [][]string{{"1", "Grade 1 - Math (Section 1)", "1", "Math", "UNASSIGNED"}}
	rule := ruleFor(t, "classes")

	once, err := Apply(raw, rule)
	if err != nil {
		t.Fatalf("First pass failed: %v", err)
	}
	twice, err := Apply(once, rule)
	if err != nil {
		t.Fatalf("Second pass failed: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected a clean table to pass through unchanged: %v vs %v", once, twice)
	}
}

func TestDiff(t *testing.T) {
	header := []string{"teacher_id", "first_name", "last_name", "birthdate", "role_label"}
	dropped, missing := Diff(header, ruleFor(t, "teachers"))
	if !reflect.DeepEqual(dropped, []string{"birthdate", "role_label"}) {
		t.Errorf("Unexpected dropped columns %v", dropped)
	}
	if len(missing) != 0 {
		t.Errorf("Expected no missing columns, got %v", missing)
	}

	_, missing = Diff([]string{"student_id", "first_name"}, ruleFor(t, "students"))
	if want := []string{"last_name", "birthdate", "gender", "grade"}; !reflect.DeepEqual(missing, want) {
		t.Errorf("Expected missing %v, got %v", want, missing)
	}
}

func TestDiffFollowsRenamesAndAdds(t *testing.T) {
	header := []string{" guardian_id", "first_name", "last_name", "guardian_type_id"}
	dropped, missing := Diff(header, ruleFor(t, "guardians"))
	if len(missing) != 0 {
		t.Errorf("Expected added columns to count as supplied, got missing %v", missing)
	}
	if !reflect.DeepEqual(dropped, []string{"guardian_type_id"}) {
		t.Errorf("Expected guardian_type_id to be dropped, got %v", dropped)
	}

	_, missing = Diff([]string{"grade_level_id"}, ruleFor(t, "grade_levels"))
	if want := []string{"level_name"}; !reflect.DeepEqual(missing, want) {
		t.Errorf("Expected missing %v, got %v", want, missing)
	}
}

func TestApplyPadsShortRows(t *testing.T) {
	raw := types.NewTable("teachers", "teacher_id", "first_name", "last_name")
	raw.Rows = [][]string{{"1", "Ann"}}

	clean, err := Apply(raw, ruleFor(t, "teachers"))
	if err != nil {
		t.Fatalf("Failed to apply rule: %v", err)
	}
	if want := []string{"1", "Ann", ""}; !reflect.DeepEqual(clean.Rows[0], want) {
		t.Errorf("Expected row %v, got %v", want, clean.Rows[0])
	}
}
