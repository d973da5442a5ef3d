package seeder

import "github.com/Rana718/Roster/internal/types"

type Guardian struct {
	ID        int
	FirstName string
	LastName  string
	TypeID    int
}

type StudentGuardian struct {
	StudentID      int
	GuardianID     int
	PrimaryContact bool
}

const (
	twoParentProb     = 0.7
	extraGuardianProb = 0.1
)

var (
	extendedGuardianTypes = []int{GuardianAunt, GuardianUncle, GuardianGrandmother, GuardianGrandfather, GuardianLegal}

	guardianColumns        = []string{"guardian_id", "first_name", "last_name", "guardian_type_id"}
	studentGuardianColumns = []string{"student_id", "guardian_id", "primary_contact"}
)

type guardianKey struct {
	first, last string
	typeID      int
}

type familyParents struct {
	mother, father string
}

// GuardianRegistry is the identity map for guardians: one id per
// (first name, last name, type). It also remembers the parents chosen for
// a surname so siblings share them.
type GuardianRegistry struct {
	alloc     *Allocator
	ids       map[guardianKey]int
	parents   map[string]*familyParents
	guardians []Guardian
}

func NewGuardianRegistry(alloc *Allocator) *GuardianRegistry {
	return &GuardianRegistry{
		alloc:   alloc,
		ids:     make(map[guardianKey]int),
		parents: make(map[string]*familyParents),
	}
}

// Resolve returns the id for the guardian, creating it on first sight.
func (r *GuardianRegistry) Resolve(first, last string, typeID int) int {
	key := guardianKey{first, last, typeID}
	if id, ok := r.ids[key]; ok {
		return id
	}
	id := r.alloc.NextID("guardian")
	r.ids[key] = id
	r.guardians = append(r.guardians, Guardian{ID: id, FirstName: first, LastName: last, TypeID: typeID})
	return id
}

func (r *GuardianRegistry) Guardians() []Guardian {
	return r.guardians
}

func (r *GuardianRegistry) mother(g *DataGenerator, surname string) int {
	fp := r.family(surname)
	if fp.mother == "" {
		fp.mother = g.FemaleFirstName()
	}
	return r.Resolve(fp.mother, surname, GuardianMother)
}

func (r *GuardianRegistry) father(g *DataGenerator, surname string) int {
	fp := r.family(surname)
	if fp.father == "" {
		fp.father = g.MaleFirstName()
	}
	return r.Resolve(fp.father, surname, GuardianFather)
}

func (r *GuardianRegistry) family(surname string) *familyParents {
	fp, ok := r.parents[surname]
	if !ok {
		fp = &familyParents{}
		r.parents[surname] = fp
	}
	return fp
}

// otherSurname draws a surname different from exclude. A pool holding
// nothing else yields exclude prefixed so the guardian still reads apart.
func otherSurname(g *DataGenerator, exclude string) string {
	for attempt := 0; attempt < 32; attempt++ {
		if name := g.LastName(); name != exclude {
			return name
		}
	}
	return "Mc" + exclude
}

// GenerateGuardians links each student to one or two parents sharing their
// surname and, now and then, a relative or legal guardian with a different
// surname. The first parent linked is the primary contact.
func GenerateGuardians(g *DataGenerator, registry *GuardianRegistry, students []Student) []StudentGuardian {
	var links []StudentGuardian
	for _, s := range students {
		var ids []int
		if g.Chance(twoParentProb) {
			ids = append(ids, registry.mother(g, s.LastName), registry.father(g, s.LastName))
		} else if g.Chance(0.5) {
			ids = append(ids, registry.mother(g, s.LastName))
		} else {
			ids = append(ids, registry.father(g, s.LastName))
		}

		if g.Chance(extraGuardianProb) {
			typeID := Choice(g, extendedGuardianTypes)
			last := otherSurname(g, s.LastName)
			first := g.MaleFirstName()
			if typeID == GuardianAunt || typeID == GuardianGrandmother {
				first = g.FemaleFirstName()
			}
			ids = append(ids, registry.Resolve(first, last, typeID))
		}

		for i, id := range ids {
			links = append(links, StudentGuardian{StudentID: s.ID, GuardianID: id, PrimaryContact: i == 0})
		}
	}
	return links
}

func guardiansTable(guardians []Guardian) *types.Table {
	return tableOf("guardians", guardianColumns, guardians, func(gd Guardian) []string {
		return []string{itoa(gd.ID), gd.FirstName, gd.LastName, itoa(gd.TypeID)}
	})
}

func studentGuardiansTable(links []StudentGuardian) *types.Table {
	return tableOf("student_guardians", studentGuardianColumns, links, func(l StudentGuardian) []string {
		return []string{itoa(l.StudentID), itoa(l.GuardianID), formatBool(l.PrimaryContact)}
	})
}

func guardiansStage() *Stage {
	return &Stage{
		Name:     "guardians",
		Requires: []string{"students"},
		Produces: []string{"guardians", "student_guardians"},
		Run: func(env *Env) error {
			students, err := decodeStudents(env.Input("students"))
			if err != nil {
				return err
			}
			registry := NewGuardianRegistry(env.Alloc)
			links := GenerateGuardians(env.Gen, registry, students)
			return env.Emit(guardiansTable(registry.Guardians()), studentGuardiansTable(links))
		},
	}
}
