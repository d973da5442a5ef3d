package seeder

import "fmt"

type DependencyGraph struct {
	stages    map[string]*Stage
	names     []string
	producers map[string]string
	order     []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		stages:    make(map[string]*Stage),
		producers: make(map[string]string),
	}
}

func (g *DependencyGraph) AddStage(stage *Stage) error {
	if _, exists := g.stages[stage.Name]; exists {
		return fmt.Errorf("stage %s registered twice", stage.Name)
	}
	for _, table := range stage.Produces {
		if owner, taken := g.producers[table]; taken {
			return fmt.Errorf("table %s produced by both %s and %s", table, owner, stage.Name)
		}
		g.producers[table] = stage.Name
	}
	g.stages[stage.Name] = stage
	g.names = append(g.names, stage.Name)
	return nil
}

// BuildRunOrder sorts the stages so every required table is produced before
// it is read. A required table with no producer in the graph must already
// be present according to available, otherwise the plan is rejected.
func (g *DependencyGraph) BuildRunOrder(available func(table string) bool) ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(stageName string) error {
		if temp[stageName] {
			return fmt.Errorf("circular dependency detected involving stage: %s", stageName)
		}
		if visited[stageName] {
			return nil
		}

		temp[stageName] = true
		stage := g.stages[stageName]

		deps := append(append([]string(nil), stage.Requires...), stage.Optional...)
		for i, table := range deps {
			producer, ok := g.producers[table]
			if !ok {
				optional := i >= len(stage.Requires)
				if !optional && (available == nil || !available(table)) {
					return fmt.Errorf("%w: stage %s requires %s, which no selected stage produces", ErrMissingTable, stageName, table)
				}
				continue
			}
			if producer != stageName {
				if err := visit(producer); err != nil {
					return err
				}
			}
		}

		temp[stageName] = false
		visited[stageName] = true
		order = append(order, stageName)
		return nil
	}

	// registration order keeps independent stages in a stable sequence
	for _, stageName := range g.names {
		if !visited[stageName] {
			if err := visit(stageName); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}

func (g *DependencyGraph) Stage(name string) *Stage {
	return g.stages[name]
}
