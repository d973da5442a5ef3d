package seeder

import "testing"

func TestPaymentsPerStudentAndFee(t *testing.T) {
	students := make([]Student, 10)
	for i := range students {
		students[i] = Student{ID: i + 1}
	}

	payments := GeneratePayments(NewDataGenerator(6), students, FeeTypes)
	if len(payments) != 50 {
		t.Fatalf("Expected 50 payments, got %d", len(payments))
	}

	dues := make(map[string]FeeType)
	for _, f := range FeeTypes {
		dues[f.ID] = f
	}

	table := paymentsTable(payments)
	for i, p := range payments {
		fee := dues[p.FeeTypeID]
		datePaid := table.Rows[i][4]
		if p.DatePaid.IsZero() {
			if p.AmountPaid != 0 || datePaid != "" {
				t.Errorf("Unpaid row %d has amount %d and date %q", i, p.AmountPaid, datePaid)
			}
			continue
		}
		if p.AmountPaid != fee.Amount {
			t.Errorf("Row %d paid %d of %d", i, p.AmountPaid, fee.Amount)
		}
		if p.DatePaid.Before(fee.DueBy.AddDate(0, 0, -10)) || p.DatePaid.After(fee.DueBy.AddDate(0, 0, 5)) {
			t.Errorf("Row %d paid on %s, outside the window around %s", i, datePaid, formatDate(fee.DueBy))
		}
	}
}

func TestStandardizedTests(t *testing.T) {
	students := []Student{{ID: 1, Grade: 8}, {ID: 2, Grade: 9}, {ID: 3, Grade: 11}, {ID: 4, Grade: 12}}
	results := GenerateStandardizedTests(NewDataGenerator(2), students)

	// grade 8 sits nothing, PSAT and SAT have three sections, ACT four
	if len(results) != 10 {
		t.Fatalf("Expected 10 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Percentile < 1 || r.Percentile > 99 {
			t.Errorf("Result %s percentile %d outside [1, 99]", r.ID, r.Percentile)
		}
		switch r.TestName {
		case "ACT":
			if r.Score < 14 || r.Score > 35 {
				t.Errorf("ACT score %d outside [14, 35]", r.Score)
			}
		default:
			if r.Score < 300 || r.Score > 750 {
				t.Errorf("%s score %d outside [300, 750]", r.TestName, r.Score)
			}
		}
		if r.StudentID == 1 {
			t.Errorf("Grade 8 student should not sit a test, got %s", r.TestName)
		}
	}
}
