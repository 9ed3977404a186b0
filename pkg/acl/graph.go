package acl

import (
	"errors"
	"fmt"
	"slices"
)

// Graph is a directed "inherits-from" graph over string-named symbols.
// Edges point from a child to its parents; a symbol may have any number
// of parents, so the structure is a general DAG rather than a tree.
// Acyclicity is not enforced per edge — FindCycle validates the whole
// graph once, at policy build time.
//
// Both vertex and edge insertion order are preserved: DirectParents
// returns parents in declaration order, and Ancestors breaks ties
// between equally distant ancestors the same way. Queries rely on this
// ordering being deterministic.
type Graph struct {
	order   []string
	parents map[string][]string
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		parents: make(map[string][]string),
	}
}

// AddVertex registers a symbol. Registering an already-known symbol is a
// no-op. Empty names are rejected because the empty string is reserved
// as the query-time wildcard.
func (g *Graph) AddVertex(name string) error {
	if name == "" {
		return ErrEmptySymbol
	}
	if _, ok := g.parents[name]; ok {
		return nil
	}
	g.order = append(g.order, name)
	g.parents[name] = nil
	return nil
}

// AddEdge records that child inherits from parent. Both endpoints must
// already be registered. Re-adding an existing edge is a no-op.
func (g *Graph) AddEdge(child, parent string) error {
	if _, ok := g.parents[child]; !ok {
		return errors.Join(ErrUnknownSymbol, fmt.Errorf("unknown symbol %q", child))
	}
	if _, ok := g.parents[parent]; !ok {
		return errors.Join(ErrUnknownSymbol, fmt.Errorf("unknown symbol %q", parent))
	}
	if slices.Contains(g.parents[child], parent) {
		return nil
	}
	g.parents[child] = append(g.parents[child], parent)
	return nil
}

// HasVertex reports whether the symbol is registered.
func (g *Graph) HasVertex(name string) bool {
	_, ok := g.parents[name]
	return ok
}

// Vertices returns all registered symbols in declaration order.
func (g *Graph) Vertices() []string {
	return slices.Clone(g.order)
}

// DirectParents returns the immediate parents of a symbol in declaration
// order. Unknown symbols are an error, never a silent empty result.
func (g *Graph) DirectParents(name string) ([]string, error) {
	parents, ok := g.parents[name]
	if !ok {
		return nil, errors.Join(ErrUnknownSymbol, fmt.Errorf("unknown symbol %q", name))
	}
	return slices.Clone(parents), nil
}

// Ancestors returns every symbol transitively reachable via parent
// edges, in breadth-first order: nearer ancestors before farther ones,
// declaration order within a level, each ancestor listed once at its
// first (shortest) distance. A symbol with no parents yields an empty
// result.
func (g *Graph) Ancestors(name string) ([]string, error) {
	if _, ok := g.parents[name]; !ok {
		return nil, errors.Join(ErrUnknownSymbol, fmt.Errorf("unknown symbol %q", name))
	}

	var result []string
	seen := map[string]bool{name: true}
	queue := []string{name}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, parent := range g.parents[current] {
			if seen[parent] {
				continue
			}
			seen[parent] = true
			result = append(result, parent)
			queue = append(queue, parent)
		}
	}

	return result, nil
}
