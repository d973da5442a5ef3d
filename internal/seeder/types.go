package seeder

import (
	"errors"
	"time"
)

var (
	ErrMissingTable         = errors.New("required table missing")
	ErrSurnamePoolExhausted = errors.New("surname pool exhausted")
	ErrUnknownStage         = errors.New("unknown stage")
)

const (
	dateLayout = "2006-01-02"

	// Unassigned is written as teacher_id when a grade's teacher pool runs dry.
	Unassigned = "UNASSIGNED"

	DefaultMaxClassSize          = 15
	DefaultMaxSectionsPerTeacher = 5
)

var (
	// ReferenceDate is the day on which student ages are measured.
	ReferenceDate = date(2015, time.September, 1)

	SchoolYearStart = date(2015, time.August, 24)
	SchoolYearEnd   = date(2016, time.June, 9)

	AssignmentStart = date(2015, time.September, 1)
	AssignmentEnd   = date(2016, time.June, 15)
)

type SeedConfig struct {
	Seed                  int64
	MaxClassSize          int
	MaxSectionsPerTeacher int
	BackfillStaffing      bool
	Families              FamilyPlan
	Surnames              []string // nil means the embedded pool
}

// FamilyPlan fixes how many families of each size are generated.
type FamilyPlan struct {
	OnlyChildren int
	Pairs        int
	Trios        int
	Quads        int
	Quints       int
	TwinSets     int
	TripletSets  int
}

func (p FamilyPlan) Families() int {
	return p.OnlyChildren + p.Pairs + p.Trios + p.Quads + p.Quints
}

func (p FamilyPlan) Students() int {
	return p.OnlyChildren + 2*p.Pairs + 3*p.Trios + 4*p.Quads + 5*p.Quints
}

func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Seed:                  42,
		MaxClassSize:          DefaultMaxClassSize,
		MaxSectionsPerTeacher: DefaultMaxSectionsPerTeacher,
		BackfillStaffing:      true,
		Families: FamilyPlan{
			OnlyChildren: 350,
			Pairs:        37,
			Trios:        14,
			Quads:        6,
			Quints:       2,
			TwinSets:     4,
			TripletSets:  2,
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
