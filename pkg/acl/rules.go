package acl

// verdict is the effect a matching rule assigns to its selector triple.
type verdict uint8

const (
	verdictDeny verdict = iota
	verdictAllow
)

// selector addresses a single rule dimension: either one specific symbol
// or all of them. The zero value is invalid; use symbol or wildcard.
type selector struct {
	name string
	any  bool
}

// wildcard matches every symbol in its dimension.
var wildcard = selector{any: true}

func symbol(name string) selector {
	return selector{name: name}
}

// ruleStore holds rules keyed by exact selector triples, nested
// resource → role → privilege. Lookups are exact: inheritance and
// wildcard fallback are the Policy's concern, not the store's.
type ruleStore struct {
	rules map[selector]map[selector]map[selector]verdict
}

func newRuleStore() *ruleStore {
	return &ruleStore{
		rules: make(map[selector]map[selector]map[selector]verdict),
	}
}

// set writes one rule at an exact key, replacing any rule already there.
// Last write wins at equal specificity.
func (s *ruleStore) set(resource, role, privilege selector, v verdict) {
	byRole, ok := s.rules[resource]
	if !ok {
		byRole = make(map[selector]map[selector]verdict)
		s.rules[resource] = byRole
	}
	byPrivilege, ok := byRole[role]
	if !ok {
		byPrivilege = make(map[selector]verdict)
		byRole[role] = byPrivilege
	}
	byPrivilege[privilege] = v
}

// setAll writes the full cross-product of the given selector lists.
// This is how a single allow/deny call over lists of names expands into
// exact keys.
func (s *ruleStore) setAll(resources, roles, privileges []selector, v verdict) {
	for _, resource := range resources {
		for _, role := range roles {
			for _, privilege := range privileges {
				s.set(resource, role, privilege, v)
			}
		}
	}
}

// get performs an exact lookup.
func (s *ruleStore) get(resource, role, privilege selector) (verdict, bool) {
	byRole, ok := s.rules[resource]
	if !ok {
		return verdictDeny, false
	}
	byPrivilege, ok := byRole[role]
	if !ok {
		return verdictDeny, false
	}
	v, ok := byPrivilege[privilege]
	return v, ok
}
