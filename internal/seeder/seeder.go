package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rana718/Roster/internal/store"
	"github.com/Rana718/Roster/internal/types"
	"github.com/fatih/color"
)

// DefaultStages returns every generator in pipeline order.
func DefaultStages() []*Stage {
	return []*Stage{
		lookupsStage(),
		calendarStage(),
		studentsStage(),
		teachersStage(),
		classesStage(),
		enrollmentsStage(),
		assignmentsStage(),
		attendanceStage(),
		disciplineStage(),
		feesStage(),
		testsStage(),
		guardiansStage(),
	}
}

func StageNames() []string {
	var names []string
	for _, s := range DefaultStages() {
		names = append(names, s.Name)
	}
	return names
}

// StageReport summarizes one finished stage.
type StageReport struct {
	Name     string
	Rows     map[string]int
	Warnings []string
}

type Seeder struct {
	dir    *store.Dir
	config SeedConfig
	stages []*Stage
	quiet  bool
}

func NewSeeder(dir *store.Dir, cfg SeedConfig) *Seeder {
	if cfg.MaxClassSize <= 0 {
		cfg.MaxClassSize = DefaultMaxClassSize
	}
	if cfg.MaxSectionsPerTeacher <= 0 {
		cfg.MaxSectionsPerTeacher = DefaultMaxSectionsPerTeacher
	}
	return &Seeder{
		dir:    dir,
		config: cfg,
		stages: DefaultStages(),
	}
}

// Quiet turns off console progress output.
func (s *Seeder) Quiet() *Seeder {
	s.quiet = true
	return s
}

func (s *Seeder) selectStages(names []string) ([]*Stage, error) {
	if len(names) == 0 {
		return s.stages, nil
	}
	byName := make(map[string]*Stage, len(s.stages))
	for _, stage := range s.stages {
		byName[stage.Name] = stage
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownStage, name, strings.Join(StageNames(), ", "))
		}
		wanted[name] = true
	}
	var selected []*Stage
	for _, stage := range s.stages {
		if wanted[stage.Name] {
			selected = append(selected, stage)
		}
	}
	return selected, nil
}

func (s *Seeder) graphFor(names []string) (*DependencyGraph, error) {
	selected, err := s.selectStages(names)
	if err != nil {
		return nil, err
	}
	graph := NewDependencyGraph()
	for _, stage := range selected {
		if err := graph.AddStage(stage); err != nil {
			return nil, err
		}
	}
	if _, err := graph.BuildRunOrder(s.dir.Exists); err != nil {
		return nil, err
	}
	return graph, nil
}

// Plan verifies the run order for the named stages (all when empty) and
// reports which of their tables already exist on disk.
func (s *Seeder) Plan(names ...string) ([]types.StageStatus, error) {
	graph, err := s.graphFor(names)
	if err != nil {
		return nil, err
	}

	var plan []types.StageStatus
	for _, name := range graph.GetOrder() {
		stage := graph.Stage(name)
		status := types.StageStatus{
			Name:     name,
			Requires: append(append([]string(nil), stage.Requires...), stage.Optional...),
			Produces: stage.Outputs(),
		}
		for _, table := range stage.Produces {
			if s.dir.Exists(table) {
				status.Present = append(status.Present, table)
			} else {
				status.Missing = append(status.Missing, table)
			}
		}
		plan = append(plan, status)
	}
	return plan, nil
}

// Run executes the named stages (all when empty) in dependency order. Every
// input of a stage is loaded before it runs and its outputs are written only
// after it succeeds.
func (s *Seeder) Run(ctx context.Context, names ...string) ([]StageReport, error) {
	graph, err := s.graphFor(names)
	if err != nil {
		return nil, err
	}
	order := graph.GetOrder()
	s.info(color.Cyan, "📋 Stage order: %s", strings.Join(order, " → "))

	produced := make(map[string]*types.Table)
	var reports []StageReport

	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		stage := graph.Stage(name)
		s.info(color.Cyan, "  📝 Running %s...", name)

		inputs, err := s.loadInputs(stage, produced)
		if err != nil {
			return reports, err
		}

		env := newEnv(s.config, stage, inputs)
		if err := stage.Run(env); err != nil {
			return reports, fmt.Errorf("stage %s failed: %w", name, err)
		}

		report := StageReport{Name: name, Rows: make(map[string]int), Warnings: env.Warnings()}
		for _, table := range env.Outputs() {
			if err := s.dir.Write(table); err != nil {
				return reports, fmt.Errorf("stage %s: %w", name, err)
			}
			produced[table.Name] = table
			report.Rows[table.Name] = table.Len()
		}
		reports = append(reports, report)

		for _, w := range report.Warnings {
			s.info(color.Yellow, "  ⚠️  %s", w)
		}
		for _, table := range env.Outputs() {
			s.info(color.Green, "  ✅ %s: %d rows", table.Name, table.Len())
		}
	}

	s.info(color.Green, "\n✅ Generated %d stages into %s", len(reports), s.dir.Path)
	return reports, nil
}

func (s *Seeder) loadInputs(stage *Stage, produced map[string]*types.Table) (map[string]*types.Table, error) {
	inputs := make(map[string]*types.Table)
	load := func(table string, required bool) error {
		if t, ok := produced[table]; ok {
			inputs[table] = t
			return nil
		}
		t, err := s.dir.Read(table)
		if err != nil {
			if errors.Is(err, store.ErrTableNotFound) {
				if required {
					return fmt.Errorf("%w: stage %s needs %s in %s", ErrMissingTable, stage.Name, table, s.dir.Path)
				}
				return nil
			}
			return err
		}
		inputs[table] = t
		return nil
	}

	for _, table := range stage.Requires {
		if err := load(table, true); err != nil {
			return nil, err
		}
	}
	for _, table := range stage.Optional {
		if err := load(table, false); err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

func (s *Seeder) info(print func(string, ...interface{}), format string, args ...interface{}) {
	if !s.quiet {
		print(format, args...)
	}
}
