package seeder

import (
	_ "embed"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:embed surnames.txt
var surnamesFile string

var (
	maleFirstNames = []string{
		"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph", "Thomas", "Charles",
		"Christopher", "Daniel", "Matthew", "Anthony", "Mark", "Donald", "Steven", "Paul", "Andrew", "Joshua",
		"Kenneth", "Kevin", "Brian", "George", "Timothy", "Ronald", "Edward", "Jason", "Jeffrey", "Ryan",
		"Jacob", "Gary", "Nicholas", "Eric", "Jonathan", "Stephen", "Larry", "Justin", "Scott", "Brandon",
		"Benjamin", "Samuel", "Gregory", "Alexander", "Patrick", "Frank", "Raymond", "Jack", "Dennis", "Jerry",
		"Tyler", "Aaron", "Jose", "Adam", "Nathan", "Henry", "Zachary", "Douglas", "Peter", "Kyle",
		"Noah", "Ethan", "Jeremy", "Walter", "Christian", "Keith", "Roger", "Terry", "Austin", "Sean",
		"Gerald", "Carl", "Harold", "Dylan", "Arthur", "Lawrence", "Jordan", "Jesse", "Bryan", "Billy",
		"Bruce", "Gabriel", "Joe", "Logan", "Alan", "Juan", "Albert", "Willie", "Elijah", "Wayne",
		"Randy", "Vincent", "Mason", "Roy", "Ralph", "Bobby", "Russell", "Bradley", "Philip", "Eugene",
	}
	femaleFirstNames = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan", "Jessica", "Sarah", "Karen",
		"Lisa", "Nancy", "Betty", "Sandra", "Margaret", "Ashley", "Kimberly", "Emily", "Donna", "Michelle",
		"Carol", "Amanda", "Melissa", "Deborah", "Stephanie", "Dorothy", "Rebecca", "Sharon", "Laura", "Cynthia",
		"Amy", "Kathleen", "Angela", "Shirley", "Brenda", "Emma", "Anna", "Pamela", "Nicole", "Samantha",
		"Katherine", "Christine", "Helen", "Debra", "Rachel", "Carolyn", "Janet", "Maria", "Catherine", "Heather",
		"Diane", "Olivia", "Julie", "Joyce", "Victoria", "Ruth", "Virginia", "Lauren", "Kelly", "Christina",
		"Joan", "Evelyn", "Judith", "Andrea", "Hannah", "Megan", "Cheryl", "Jacqueline", "Martha", "Madison",
		"Teresa", "Gloria", "Sara", "Janice", "Ann", "Kathryn", "Abigail", "Sophia", "Frances", "Jean",
		"Alice", "Judy", "Isabella", "Julia", "Grace", "Amber", "Denise", "Danielle", "Marilyn", "Beverly",
		"Charlotte", "Natalie", "Theresa", "Diana", "Brittany", "Doris", "Kayla", "Alexis", "Lori", "Marie",
	}
)

// DataGenerator is the seeded source of every random choice a stage makes,
// plus the name pools used for plausible people.
type DataGenerator struct {
	rand     *rand.Rand
	surnames []string
	issued   map[string]bool
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rand:     rand.New(rand.NewSource(seed)),
		surnames: EmbeddedSurnames(),
		issued:   make(map[string]bool),
	}
}

// NewStageGenerator derives an independent stream from the run seed and a
// stage name, so a single stage can be re-run with identical output.
func NewStageGenerator(seed int64, stage string) *DataGenerator {
	h := fnv.New64a()
	h.Write([]byte(stage))
	return NewDataGenerator(seed ^ int64(h.Sum64()))
}

// EmbeddedSurnames returns a fresh copy of the bundled surname list.
func EmbeddedSurnames() []string {
	return ParseSurnames(surnamesFile)
}

// ParseSurnames reads one surname per line, skipping blanks and trailing commas.
func ParseSurnames(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		name := strings.Trim(strings.TrimSpace(line), ",")
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (g *DataGenerator) WithSurnames(names []string) *DataGenerator {
	if len(names) > 0 {
		g.surnames = append([]string(nil), names...)
	}
	return g
}

func (g *DataGenerator) Intn(n int) int {
	return g.rand.Intn(n)
}

// IntRange returns a value in [min, max] inclusive.
func (g *DataGenerator) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.rand.Intn(max-min+1)
}

func (g *DataGenerator) Float64() float64 {
	return g.rand.Float64()
}

// Uniform returns a value in [min, max).
func (g *DataGenerator) Uniform(min, max float64) float64 {
	return min + g.rand.Float64()*(max-min)
}

func (g *DataGenerator) Normal(mean, stddev float64) float64 {
	return g.rand.NormFloat64()*stddev + mean
}

func (g *DataGenerator) Chance(p float64) bool {
	return g.rand.Float64() < p
}

func (g *DataGenerator) Shuffle(n int, swap func(i, j int)) {
	g.rand.Shuffle(n, swap)
}

// Sample returns k distinct items from values in random order.
func Sample[T any](g *DataGenerator, values []T, k int) []T {
	if k > len(values) {
		k = len(values)
	}
	perm := g.rand.Perm(len(values))
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = values[perm[i]]
	}
	return out
}

func Choice[T any](g *DataGenerator, values []T) T {
	return values[g.rand.Intn(len(values))]
}

// WeightedChoice picks keys[i] with probability weights[i]/sum(weights).
func WeightedChoice[T any](g *DataGenerator, keys []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := g.rand.Float64() * total
	for i, w := range weights {
		if r < w {
			return keys[i]
		}
		r -= w
	}
	return keys[len(keys)-1]
}

func (g *DataGenerator) MaleFirstName() string {
	return Choice(g, maleFirstNames)
}

func (g *DataGenerator) FemaleFirstName() string {
	return Choice(g, femaleFirstNames)
}

func (g *DataGenerator) FirstName() string {
	if g.rand.Intn(2) == 0 {
		return g.MaleFirstName()
	}
	return g.FemaleFirstName()
}

func (g *DataGenerator) LastName() string {
	return Choice(g, g.surnames)
}

// DateBetween returns a day in [start, end].
func (g *DataGenerator) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, g.rand.Intn(days+1))
}

// Token returns "<prefix>_<6 hex>" from a seeded v4 UUID. Only 24 bits are
// kept, so a token already issued by this generator is redrawn.
func (g *DataGenerator) Token(prefix string) string {
	for {
		token := g.drawToken(prefix)
		if !g.issued[token] {
			g.issued[token] = true
			return token
		}
	}
}

func (g *DataGenerator) drawToken(prefix string) string {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		// math/rand never fails to read; keep the token shape anyway
		return fmt.Sprintf("%s_%06x", prefix, g.rand.Intn(1<<24))
	}
	return prefix + "_" + hex.EncodeToString(id[:3])
}
