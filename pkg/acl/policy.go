package acl

import (
	"errors"
	"fmt"
)

// Policy is the frozen query engine produced by Builder.Build. All state
// is precomputed at build time and never written again, so a single
// Policy may be shared by any number of goroutines and queried
// concurrently without locking. Every query is a pure function of the
// frozen state: identical queries always return identical answers.
type Policy struct {
	roleOrders     map[string][]selector
	resourceOrders map[string][]selector
	roleAncestors  map[string]map[string]struct{}
	resAncestors   map[string]map[string]struct{}
	rules          *ruleStore
}

// HasRole reports whether the role was declared.
func (p *Policy) HasRole(name string) bool {
	_, ok := p.roleOrders[name]
	return ok
}

// HasResource reports whether the resource was declared.
func (p *Policy) HasResource(name string) bool {
	_, ok := p.resourceOrders[name]
	return ok
}

// InheritsRole reports whether child transitively inherits from
// ancestor in the role graph. Unlike IsAllowed, both names must be
// declared: asking about an unknown role is a malformed question, not a
// false answer, and surfaces ErrUnknownSymbol.
func (p *Policy) InheritsRole(child, ancestor string) (bool, error) {
	return inherits(p.roleAncestors, child, ancestor)
}

// InheritsResource is InheritsRole for the resource graph.
func (p *Policy) InheritsResource(child, ancestor string) (bool, error) {
	return inherits(p.resAncestors, child, ancestor)
}

func inherits(sets map[string]map[string]struct{}, child, ancestor string) (bool, error) {
	closure, ok := sets[child]
	if !ok {
		return false, errors.Join(ErrUnknownSymbol, fmt.Errorf("unknown symbol %q", child))
	}
	if _, ok := sets[ancestor]; !ok {
		return false, errors.Join(ErrUnknownSymbol, fmt.Errorf("unknown symbol %q", ancestor))
	}
	_, ok = closure[ancestor]
	return ok, nil
}

// IsAllowed reports whether the role is permitted the privilege on the
// resource. The empty string widens a dimension to "any": an empty role
// or resource starts the search directly at that dimension's wildcard,
// and an empty privilege consults only all-privilege rules.
//
// Resolution is most-specific-wins with deny as the default: the
// resource chain (self, ancestors nearest first, wildcard) is the outer
// loop and the role chain the inner one, and at each (resource, role)
// pair the exact-privilege rule is checked before the all-privileges
// rule. The first rule found decides. A declared but unmatched query,
// like a query naming unknown symbols, yields false.
func (p *Policy) IsAllowed(role, resource, privilege string) bool {
	resourceOrder, ok := searchOrderFor(p.resourceOrders, resource)
	if !ok {
		return false
	}
	roleOrder, ok := searchOrderFor(p.roleOrders, role)
	if !ok {
		return false
	}

	exact := privilege != ""
	privilegeSel := symbol(privilege)

	for _, resourceSel := range resourceOrder {
		for _, roleSel := range roleOrder {
			if exact {
				if v, ok := p.rules.get(resourceSel, roleSel, privilegeSel); ok {
					return v == verdictAllow
				}
			}
			if v, ok := p.rules.get(resourceSel, roleSel, wildcard); ok {
				return v == verdictAllow
			}
		}
	}

	return false
}

// IsAllowedAny reports whether any (role, resource, privilege) triple
// drawn from the given lists is allowed. A nil or empty list means the
// wildcard for that dimension. The search short-circuits on the first
// allowed triple.
func (p *Policy) IsAllowedAny(roles, resources, privileges []string) bool {
	if len(roles) == 0 {
		roles = []string{""}
	}
	if len(resources) == 0 {
		resources = []string{""}
	}
	if len(privileges) == 0 {
		privileges = []string{""}
	}

	for _, resource := range resources {
		for _, role := range roles {
			for _, privilege := range privileges {
				if p.IsAllowed(role, resource, privilege) {
					return true
				}
			}
		}
	}

	return false
}

// searchOrderFor resolves a query name to its precomputed search order.
// The empty string is the wildcard query and searches only the wildcard
// level; an unknown name cannot match any rule, so the query is
// unanswerable and resolves to deny.
func searchOrderFor(orders map[string][]selector, name string) ([]selector, bool) {
	if name == "" {
		return wildcardOnly, true
	}
	order, ok := orders[name]
	return order, ok
}

var wildcardOnly = []selector{wildcard}
