// Package acl provides an in-process authorization engine with
// deny-by-default semantics. Roles and resources are organized as directed
// acyclic inheritance graphs, and allow/deny rules are keyed by
// (resource, role, privilege) triples where any dimension may be a
// wildcard.
//
// The package separates a mutable accumulation phase from an immutable
// query phase. A Builder collects role and resource declarations and
// rules; Build validates both inheritance graphs for cycles and freezes
// everything into a Policy. A Policy never changes after construction,
// so it can be shared across goroutines and queried concurrently without
// locking.
//
// Resolution is most-specific-wins: for a query the engine searches the
// resource's inheritance chain from the resource itself through its
// ancestors (nearest first) to the resource wildcard, and within each
// resource level searches the role chain the same way, checking the
// exact-privilege rule before the all-privileges rule at each step. The
// first rule found decides the outcome; if no rule applies anywhere, the
// answer is deny.
//
// Basic usage:
//
//	b := acl.NewBuilder()
//	b.AddRole("guest")
//	b.AddRole("user", "guest") // user inherits from guest
//	b.AddResource("blog")
//	b.Allow([]string{"user"}, []string{"blog"}, []string{"read", "write"})
//
//	policy, err := b.Build()
//	if err != nil {
//	    // cycle in a graph, or the builder was already consumed
//	}
//
//	policy.IsAllowed("user", "blog", "read")   // true
//	policy.IsAllowed("guest", "blog", "read")  // false: no rule reaches guest
//	policy.IsAllowed("user", "blog", "delete") // false: deny by default
//
// Passing nil for a rule's role, resource or privilege list means "all of
// them". At query time the empty string plays the same wildcard role,
// which is unambiguous because empty names are rejected at declaration
// time:
//
//	b.Deny([]string{"banned"}, nil, nil)      // banned: denied everywhere
//	policy.IsAllowed("banned", "blog", "")    // false: any privilege on blog
//
// Policies can also be built from declarative documents (see PolicyFile,
// ParseYAML, ParseJSON and BuildPolicy) and enforced on HTTP handlers via
// Require, which reads the caller's role from the request context.
package acl
