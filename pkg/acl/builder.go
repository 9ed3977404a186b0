package acl

import (
	"errors"
	"fmt"
	"strings"
)

// Builder accumulates role and resource declarations and allow/deny
// rules, then freezes them into an immutable Policy. A Builder is for
// single-goroutine use; the Policy it produces is safe for concurrent
// readers.
//
// Build seals the builder: a sealed builder rejects every further call
// with ErrBuilderSealed, so no mutation can ever reach a built Policy.
type Builder struct {
	roles     *Graph
	resources *Graph
	rules     *ruleStore
	sealed    bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		roles:     NewGraph(),
		resources: NewGraph(),
		rules:     newRuleStore(),
	}
}

// AddRole declares a role, optionally inheriting from parent roles.
// Parents must already be declared: declare base roles first, or
// pre-register every role before wiring inheritance. Re-declaring a role
// is a no-op for the vertex but still adds the given parent edges.
func (b *Builder) AddRole(name string, parents ...string) error {
	return b.addSymbol(b.roles, name, parents)
}

// AddResource declares a resource, optionally inheriting from parent
// resources. Same ordering requirement as AddRole.
func (b *Builder) AddResource(name string, parents ...string) error {
	return b.addSymbol(b.resources, name, parents)
}

func (b *Builder) addSymbol(g *Graph, name string, parents []string) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	if err := g.AddVertex(name); err != nil {
		return err
	}
	for _, parent := range parents {
		if err := g.AddEdge(name, parent); err != nil {
			return err
		}
	}
	return nil
}

// Allow records an allow rule for the cross-product of the given roles,
// resources and privileges. A nil or empty list means "all" for that
// dimension. Roles and resources must already be declared; unknown names
// are an immediate error and nothing is recorded.
func (b *Builder) Allow(roles, resources, privileges []string) error {
	return b.rule(roles, resources, privileges, verdictAllow)
}

// Deny records a deny rule with the same semantics as Allow.
func (b *Builder) Deny(roles, resources, privileges []string) error {
	return b.rule(roles, resources, privileges, verdictDeny)
}

func (b *Builder) rule(roles, resources, privileges []string, v verdict) error {
	if b.sealed {
		return ErrBuilderSealed
	}

	roleSels, err := declaredSelectors(b.roles, roles)
	if err != nil {
		return err
	}
	resourceSels, err := declaredSelectors(b.resources, resources)
	if err != nil {
		return err
	}
	privilegeSels, err := privilegeSelectors(privileges)
	if err != nil {
		return err
	}

	b.rules.setAll(resourceSels, roleSels, privilegeSels, v)
	return nil
}

// declaredSelectors maps a name list onto selectors, validating every
// name against the graph. A nil or empty list collapses to the wildcard.
func declaredSelectors(g *Graph, names []string) ([]selector, error) {
	if len(names) == 0 {
		return []selector{wildcard}, nil
	}
	sels := make([]selector, 0, len(names))
	for _, name := range names {
		if name == "" {
			return nil, ErrEmptySymbol
		}
		if !g.HasVertex(name) {
			return nil, errors.Join(ErrUnknownSymbol, fmt.Errorf("unknown symbol %q", name))
		}
		sels = append(sels, symbol(name))
	}
	return sels, nil
}

// privilegeSelectors maps a privilege list onto selectors. Privileges
// are free-form and need no prior declaration, but must be non-empty.
func privilegeSelectors(names []string) ([]selector, error) {
	if len(names) == 0 {
		return []selector{wildcard}, nil
	}
	sels := make([]selector, 0, len(names))
	for _, name := range names {
		if name == "" {
			return nil, ErrEmptySymbol
		}
		sels = append(sels, symbol(name))
	}
	return sels, nil
}

// Build validates both inheritance graphs and freezes the accumulated
// state into a Policy. Any cycle aborts the build with ErrCycleDetected
// naming the graph and the offending path; no partially valid Policy is
// ever produced. On success the builder is sealed and cannot be reused.
func (b *Builder) Build() (*Policy, error) {
	if b.sealed {
		return nil, ErrBuilderSealed
	}
	// Build is terminal either way: a failed build leaves no usable
	// accumulator behind, it must be rebuilt from scratch.
	b.sealed = true

	if cycle := FindCycle(b.roles); cycle != nil {
		return nil, errors.Join(ErrCycleDetected,
			fmt.Errorf("role graph: %s", strings.Join(cycle, " -> ")))
	}
	if cycle := FindCycle(b.resources); cycle != nil {
		return nil, errors.Join(ErrCycleDetected,
			fmt.Errorf("resource graph: %s", strings.Join(cycle, " -> ")))
	}

	policy := &Policy{
		roleOrders:     searchOrders(b.roles),
		resourceOrders: searchOrders(b.resources),
		roleAncestors:  ancestorSets(b.roles),
		resAncestors:   ancestorSets(b.resources),
		rules:          b.rules,
	}

	// Sever the builder's handles: nothing aliases the frozen state.
	b.roles, b.resources, b.rules = nil, nil, nil

	return policy, nil
}

// searchOrders precomputes, for every symbol, the rule search order:
// the symbol itself, then its ancestors nearest to farthest, then the
// wildcard. Queries become pure map and slice walks with no traversal.
func searchOrders(g *Graph) map[string][]selector {
	orders := make(map[string][]selector, len(g.order))
	for _, name := range g.order {
		ancestors, _ := g.Ancestors(name)
		order := make([]selector, 0, len(ancestors)+2)
		order = append(order, symbol(name))
		for _, ancestor := range ancestors {
			order = append(order, symbol(ancestor))
		}
		orders[name] = append(order, wildcard)
	}
	return orders
}

// ancestorSets precomputes the ancestor closure of every symbol for
// constant-time inheritance checks.
func ancestorSets(g *Graph) map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{}, len(g.order))
	for _, name := range g.order {
		ancestors, _ := g.Ancestors(name)
		set := make(map[string]struct{}, len(ancestors))
		for _, ancestor := range ancestors {
			set[ancestor] = struct{}{}
		}
		sets[name] = set
	}
	return sets
}
