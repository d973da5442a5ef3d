package seeder

import (
	"time"

	"github.com/Rana718/Roster/internal/types"
)

type FeeType struct {
	ID        string
	Name      string
	Amount    int
	DueBy     time.Time
	Recurring string
}

type Payment struct {
	ID         string
	StudentID  int
	FeeTypeID  string
	AmountPaid int
	DatePaid   time.Time // zero when unpaid
}

var FeeTypes = []FeeType{
	{"FEE01", "Tuition", 5000, date(2015, time.September, 30), "Annual"},
	{"FEE02", "Lunch Plan", 400, date(2015, time.September, 10), "Monthly"},
	{"FEE03", "Technology Fee", 100, date(2015, time.October, 15), "One-Time"},
	{"FEE04", "Field Trip Fund", 50, date(2015, time.November, 20), "One-Time"},
	{"FEE05", "Graduation Fee", 150, date(2016, time.May, 1), "One-Time"},
}

const paymentProb = 0.9

var (
	feeTypeColumns = []string{"fee_type_id", "name", "amount", "due_by", "recurring"}
	paymentColumns = []string{"payment_id", "student_id", "fee_type_id", "amount_paid", "date_paid"}
)

// GeneratePayments bills every student for every fee type. Nine in ten
// bills are paid in full between ten days early and five days late.
func GeneratePayments(g *DataGenerator, students []Student, fees []FeeType) []Payment {
	payments := make([]Payment, 0, len(students)*len(fees))
	for _, s := range students {
		for _, fee := range fees {
			p := Payment{StudentID: s.ID, FeeTypeID: fee.ID}
			if g.Chance(paymentProb) {
				p.AmountPaid = fee.Amount
				p.DatePaid = fee.DueBy.AddDate(0, 0, -g.IntRange(-5, 10))
			}
			p.ID = g.Token("P")
			payments = append(payments, p)
		}
	}
	return payments
}

func feeTypesTable(fees []FeeType) *types.Table {
	return tableOf("fee_types", feeTypeColumns, fees, func(f FeeType) []string {
		return []string{f.ID, f.Name, itoa(f.Amount), formatDate(f.DueBy), f.Recurring}
	})
}

func paymentsTable(payments []Payment) *types.Table {
	return tableOf("payments", paymentColumns, payments, func(p Payment) []string {
		paid := ""
		if !p.DatePaid.IsZero() {
			paid = formatDate(p.DatePaid)
		}
		return []string{p.ID, itoa(p.StudentID), p.FeeTypeID, itoa(p.AmountPaid), paid}
	})
}

func feesStage() *Stage {
	return &Stage{
		Name:     "fees",
		Requires: []string{"students"},
		Produces: []string{"fee_types", "payments"},
		Run: func(env *Env) error {
			students, err := decodeStudents(env.Input("students"))
			if err != nil {
				return err
			}
			return env.Emit(feeTypesTable(FeeTypes), paymentsTable(GeneratePayments(env.Gen, students, FeeTypes)))
		},
	}
}
