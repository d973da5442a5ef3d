package seeder

import "testing"

func TestGuardianPrimaryContact(t *testing.T) {
	students := generateStudents(t, 17, FamilyPlan{OnlyChildren: 60, Pairs: 10, Trios: 5})
	registry := NewGuardianRegistry(NewAllocator())
	links := GenerateGuardians(NewDataGenerator(17), registry, students)

	guardians := make(map[int]Guardian)
	for _, gd := range registry.Guardians() {
		guardians[gd.ID] = gd
	}

	primaries := make(map[int]int)
	parents := make(map[int]int)
	for _, l := range links {
		gd, ok := guardians[l.GuardianID]
		if !ok {
			t.Fatalf("Link to unknown guardian %d", l.GuardianID)
		}
		if l.PrimaryContact {
			primaries[l.StudentID]++
		}
		if gd.TypeID == GuardianMother || gd.TypeID == GuardianFather {
			parents[l.StudentID]++
		}
	}

	for _, s := range students {
		if primaries[s.ID] != 1 {
			t.Errorf("Student %d has %d primary contacts, expected 1", s.ID, primaries[s.ID])
		}
		if parents[s.ID] < 1 || parents[s.ID] > 2 {
			t.Errorf("Student %d has %d parents", s.ID, parents[s.ID])
		}
	}
}

func TestGuardianSurnames(t *testing.T) {
	students := generateStudents(t, 23, FamilyPlan{OnlyChildren: 100})
	registry := NewGuardianRegistry(NewAllocator())
	links := GenerateGuardians(NewDataGenerator(23), registry, students)

	lastNames := make(map[int]string)
	for _, s := range students {
		lastNames[s.ID] = s.LastName
	}
	guardians := make(map[int]Guardian)
	for _, gd := range registry.Guardians() {
		guardians[gd.ID] = gd
	}

	for _, l := range links {
		gd := guardians[l.GuardianID]
		isParent := gd.TypeID == GuardianMother || gd.TypeID == GuardianFather
		if isParent && gd.LastName != lastNames[l.StudentID] {
			t.Errorf("Parent %d named %s, student is %s", gd.ID, gd.LastName, lastNames[l.StudentID])
		}
		if !isParent && gd.LastName == lastNames[l.StudentID] {
			t.Errorf("Relative %d shares surname %s with student %d", gd.ID, gd.LastName, l.StudentID)
		}
	}
}

func TestSiblingsShareParents(t *testing.T) {
	registry := NewGuardianRegistry(NewAllocator())
	g := NewDataGenerator(31)

	first := registry.mother(g, "Okafor")
	second := registry.mother(g, "Okafor")
	if first != second {
		t.Errorf("Expected siblings to resolve to the same mother, got %d and %d", first, second)
	}
	if other := registry.mother(g, "Lindqvist"); other == first {
		t.Error("Expected a different family to get a different mother")
	}
	if n := len(registry.Guardians()); n != 2 {
		t.Errorf("Expected 2 guardians, got %d", n)
	}
}

func TestRegistryIdentity(t *testing.T) {
	registry := NewGuardianRegistry(NewAllocator())
	a := registry.Resolve("Mary", "Stone", GuardianMother)
	b := registry.Resolve("Mary", "Stone", GuardianAunt)
	c := registry.Resolve("Mary", "Stone", GuardianMother)

	if a != c {
		t.Errorf("Expected the same guardian for identical keys, got %d and %d", a, c)
	}
	if a == b {
		t.Error("Expected a different guardian for a different type")
	}
}
