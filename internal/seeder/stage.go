package seeder

import (
	"fmt"

	"github.com/Rana718/Roster/internal/types"
)

// Stage is one generator in the pipeline. Requires must be readable before
// Run starts; Optional tables are passed in when present. A stage may emit
// tables listed in Produces, plus tables in Appends that another stage owns
// and this one extends in place.
type Stage struct {
	Name     string
	Requires []string
	Optional []string
	Produces []string
	Appends  []string
	Run      func(env *Env) error
}

func (s *Stage) Outputs() []string {
	return append(append([]string(nil), s.Produces...), s.Appends...)
}

func (s *Stage) writes(table string) bool {
	for _, name := range s.Outputs() {
		if name == table {
			return true
		}
	}
	return false
}

// Env carries everything a stage may touch while it runs.
type Env struct {
	Config SeedConfig
	Gen    *DataGenerator
	Alloc  *Allocator

	stage    *Stage
	inputs   map[string]*types.Table
	outputs  []*types.Table
	warnings []string
}

func newEnv(cfg SeedConfig, stage *Stage, inputs map[string]*types.Table) *Env {
	gen := NewStageGenerator(cfg.Seed, stage.Name).WithSurnames(cfg.Surnames)
	return &Env{
		Config: cfg,
		Gen:    gen,
		Alloc:  NewAllocator(),
		stage:  stage,
		inputs: inputs,
	}
}

// Input returns an upstream table, or nil for an absent optional one.
func (e *Env) Input(name string) *types.Table {
	return e.inputs[name]
}

func (e *Env) Emit(tables ...*types.Table) error {
	for _, t := range tables {
		if !e.stage.writes(t.Name) {
			return fmt.Errorf("stage %s emitted undeclared table %s", e.stage.Name, t.Name)
		}
		e.outputs = append(e.outputs, t)
	}
	return nil
}

func (e *Env) Warn(format string, args ...interface{}) {
	e.warnings = append(e.warnings, fmt.Sprintf(format, args...))
}

func (e *Env) Warnings() []string {
	return e.warnings
}

func (e *Env) Outputs() []*types.Table {
	return e.outputs
}
