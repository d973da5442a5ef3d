package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rename changes a column name. An empty To drops the column instead.
type Rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to,omitempty"`
}

// AddColumn appends a column filled with Default when the table lacks it.
type AddColumn struct {
	Name    string `yaml:"name"`
	Default string `yaml:"default,omitempty"`
}

// Rule describes how one raw table becomes its clean form. Steps apply in
// field order; Expected is the exact clean header.
type Rule struct {
	Table    string      `yaml:"table"`
	Rename   []Rename    `yaml:"rename,omitempty"`
	Drop     []string    `yaml:"drop,omitempty"`
	Add      []AddColumn `yaml:"add,omitempty"`
	Expected []string    `yaml:"expected"`
}

type ruleFile struct {
	Tables []Rule `yaml:"tables"`
}

func renameTo(from, to string) Rename { return Rename{From: from, To: to} }
func discard(from string) Rename      { return Rename{From: from} }

func add(names ...string) []AddColumn {
	cols := make([]AddColumn, len(names))
	for i, name := range names {
		cols[i] = AddColumn{Name: name}
	}
	return cols
}

// DefaultRules is the clean column contract for every generated table.
func DefaultRules() []Rule {
	return []Rule{
		{
			Table:    "students",
			Expected: []string{"student_id", "first_name", "last_name", "birthdate", "gender", "grade"},
		},
		{
			Table:    "guardians",
			Rename:   []Rename{discard("guardian_type_id")},
			Add:      add("phone", "email"),
			Expected: []string{"guardian_id", "first_name", "last_name", "phone", "email"},
		},
		{
			Table:    "guardian_types",
			Rename:   []Rename{renameTo("name", "type_name")},
			Expected: []string{"guardian_type_id", "type_name"},
		},
		{
			Table:    "student_guardians",
			Rename:   []Rename{discard("primary_contact")},
			Add:      add("guardian_type_id"),
			Expected: []string{"student_id", "guardian_id", "guardian_type_id"},
		},
		{
			Table:    "teachers",
			Drop:     []string{"birthdate", "hire_date", "department_id", "is_floater", "role_label"},
			Expected: []string{"teacher_id", "first_name", "last_name"},
		},
		{
			Table:    "departments",
			Rename:   []Rename{renameTo("name", "department_name")},
			Expected: []string{"department_id", "department_name"},
		},
		{
			Table:    "teacher_subjects",
			Rename:   []Rename{renameTo("subject_id", "subject")},
			Add:      add("department_id"),
			Expected: []string{"teacher_id", "subject", "department_id"},
		},
		{
			Table:    "classes",
			Drop:     []string{"class_name"},
			Add:      add("room_id", "period_id", "term_id"),
			Expected: []string{"class_id", "subject", "grade_level", "teacher_id", "room_id", "period_id", "term_id"},
		},
		{
			Table:    "enrollments",
			Add:      add("enrollment_id"),
			Expected: []string{"enrollment_id", "student_id", "class_id"},
		},
		{
			Table:    "assignments",
			Expected: []string{"assignment_id", "class_id", "title", "due_date", "points_possible", "category"},
		},
		{
			Table:    "grades",
			Expected: []string{"grade_id", "student_id", "assignment_id", "score", "submitted_on"},
		},
		{
			Table:    "grade_levels",
			Rename:   []Rename{renameTo("grade_level_id", "grade"), renameTo("name", "level_name")},
			Drop:     []string{"level_order"},
			Expected: []string{"grade", "level_name"},
		},
		{
			Table:    "student_grade_history",
			Rename:   []Rename{renameTo("academic_year_id", "year_id"), renameTo("grade_level_id", "grade")},
			Add:      add("history_id"),
			Expected: []string{"history_id", "student_id", "year_id", "grade"},
		},
		{
			Table:    "periods",
			Expected: []string{"period_id", "name", "start_time", "end_time"},
		},
		{
			Table:    "classrooms",
			Rename:   []Rename{renameTo("classroom_id", "room_id")},
			Drop:     []string{"capacity", "floor", "is_special_use"},
			Expected: []string{"room_id", "building", "room_number"},
		},
		{
			Table:    "school_years",
			Rename:   []Rename{renameTo("school_year_id", "year_id")},
			Drop:     []string{"year_label"},
			Add:      add("school_id"),
			Expected: []string{"year_id", "school_id", "start_date", "end_date"},
		},
		{
			Table:    "terms",
			Rename:   []Rename{renameTo("school_year_id", "year_id")},
			Expected: []string{"term_id", "year_id", "name", "start_date", "end_date"},
		},
		{
			Table:    "fee_types",
			Expected: []string{"fee_type_id", "name", "amount", "due_by", "recurring"},
		},
		{
			Table:    "payments",
			Expected: []string{"payment_id", "student_id", "fee_type_id", "amount_paid", "date_paid"},
		},
		{
			Table:    "attendance",
			Expected: []string{"attendance_id", "student_id", "date", "status"},
		},
		{
			Table:    "discipline_reports",
			Expected: []string{"report_id", "student_id", "date", "type", "severity", "action_taken", "description"},
		},
		{
			Table:    "standardized_tests",
			Expected: []string{"test_id", "student_id", "test_name", "test_date", "subject", "score", "percentile"},
		},
	}
}

// ValidateRules rejects rule sets the interpreter cannot apply unambiguously.
func ValidateRules(rules []Rule) error {
	seen := make(map[string]bool, len(rules))
	for i, rule := range rules {
		if rule.Table == "" {
			return fmt.Errorf("rule %d has no table name", i+1)
		}
		if seen[rule.Table] {
			return fmt.Errorf("table %s has more than one rule", rule.Table)
		}
		seen[rule.Table] = true

		if len(rule.Expected) == 0 {
			return fmt.Errorf("table %s has no expected columns", rule.Table)
		}
		cols := make(map[string]bool, len(rule.Expected))
		for _, col := range rule.Expected {
			if cols[col] {
				return fmt.Errorf("table %s expects column %s twice", rule.Table, col)
			}
			cols[col] = true
		}
		for _, r := range rule.Rename {
			if r.From == "" {
				return fmt.Errorf("table %s has a rename without a source column", rule.Table)
			}
		}
	}
	return nil
}

func MarshalRules(rules []Rule) ([]byte, error) {
	return yaml.Marshal(ruleFile{Tables: rules})
}

func UnmarshalRules(data []byte) ([]Rule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if err := ValidateRules(file.Tables); err != nil {
		return nil, err
	}
	return file.Tables, nil
}

// LoadRules reads a YAML rule file. An empty path yields DefaultRules.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return UnmarshalRules(data)
}
