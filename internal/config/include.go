package config

import (
	"fmt"
	"path/filepath"
	"sort"
)

// LoadWithIncludes loads path and every config it transitively includes via
// `include = [...]`, merging them in dependency order (included files
// first, so the including file's settings win per Merge's override rule).
// Cycles are rejected the same way the teacher's module graph rejects a
// cyclic dependency: by Kahn's algorithm failing to fully drain the queue.
func LoadWithIncludes(path string) (EngineConfig, error) {
	g := newIncludeGraph()
	if err := g.visit(path); err != nil {
		return EngineConfig{}, err
	}
	order, err := g.topoOrder()
	if err != nil {
		return EngineConfig{}, err
	}
	var merged EngineConfig
	for _, p := range order {
		merged = Merge(merged, g.loaded[p])
	}
	return merged, nil
}

type includeGraph struct {
	loaded map[string]EngineConfig
	edges  map[string][]string // file -> files it includes
}

func newIncludeGraph() *includeGraph {
	return &includeGraph{loaded: make(map[string]EngineConfig), edges: make(map[string][]string)}
}

func (g *includeGraph) visit(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: resolving %s: %w", path, err)
	}
	if _, ok := g.loaded[abs]; ok {
		return nil
	}
	cfg, err := Load(abs)
	if err != nil {
		return err
	}
	g.loaded[abs] = cfg
	dir := filepath.Dir(abs)
	for _, inc := range cfg.Include {
		incPath := inc
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(dir, incPath)
		}
		incAbs, err := filepath.Abs(incPath)
		if err != nil {
			return fmt.Errorf("config: resolving include %q from %s: %w", inc, abs, err)
		}
		g.edges[abs] = append(g.edges[abs], incAbs)
		if err := g.visit(incAbs); err != nil {
			return err
		}
	}
	return nil
}

// topoOrder returns files in an order where every include appears before
// the file that includes it, detecting cycles via Kahn's algorithm: if a
// node never reaches indegree zero, it is part of an include cycle.
func (g *includeGraph) topoOrder() ([]string, error) {
	files := make([]string, 0, len(g.loaded))
	for f := range g.loaded {
		files = append(files, f)
	}
	sort.Strings(files)

	indeg := make(map[string]int, len(files))
	for _, f := range files {
		indeg[f] = 0
	}
	// edge f -> dep means f depends on dep, so dep must come first:
	// indegree counts how many not-yet-emitted dependencies a file has.
	for f, deps := range g.edges {
		indeg[f] = len(deps)
	}
	dependents := make(map[string][]string) // dep -> files that include it
	for f, deps := range g.edges {
		for _, d := range deps {
			dependents[d] = append(dependents[d], f)
		}
	}

	var queue []string
	for _, f := range files {
		if indeg[f] == 0 {
			queue = append(queue, f)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		sort.Strings(queue)
		f := queue[0]
		queue = queue[1:]
		order = append(order, f)
		next := dependents[f]
		sort.Strings(next)
		for _, n := range next {
			indeg[n]--
			if indeg[n] == 0 {
				queue = append(queue, n)
			}
		}
	}

	if len(order) != len(files) {
		var cyclic []string
		for _, f := range files {
			if indeg[f] > 0 {
				cyclic = append(cyclic, f)
			}
		}
		sort.Strings(cyclic)
		return nil, fmt.Errorf("config: include cycle detected among: %v", cyclic)
	}
	return order, nil
}
