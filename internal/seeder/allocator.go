package seeder

import "fmt"

// Allocator owns the run-scoped pools: monotonically increasing id counters
// per entity kind and the shuffled surname pool families draw from.
type Allocator struct {
	next     map[string]int
	surnames []string
}

func NewAllocator() *Allocator {
	return &Allocator{next: make(map[string]int)}
}

// NextID returns 1, 2, 3, ... for each kind independently.
func (a *Allocator) NextID(kind string) int {
	a.next[kind]++
	return a.next[kind]
}

// StartAfter makes the next id of kind equal to last+1.
func (a *Allocator) StartAfter(kind string, last int) {
	if last > a.next[kind] {
		a.next[kind] = last
	}
}

// LoadSurnames shuffles names into the pool, replacing what was there.
func (a *Allocator) LoadSurnames(g *DataGenerator, names []string) {
	pool := append([]string(nil), names...)
	g.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	a.surnames = pool
}

// PopSurname removes and returns the last surname of the pool.
func (a *Allocator) PopSurname() (string, error) {
	if a.SurnamesLeft() == 0 {
		return "", ErrSurnamePoolExhausted
	}
	name := a.surnames[len(a.surnames)-1]
	a.surnames = a.surnames[:len(a.surnames)-1]
	return name, nil
}

// SurnamesLeft reports how many unused surnames remain in the pool.
func (a *Allocator) SurnamesLeft() int {
	return len(a.surnames)
}

// Reserve fails early when the pool cannot cover n families.
func (a *Allocator) Reserve(n int) error {
	if left := a.SurnamesLeft(); n > left {
		return fmt.Errorf("%w: %d families need unique surnames, pool has %d", ErrSurnamePoolExhausted, n, left)
	}
	return nil
}
