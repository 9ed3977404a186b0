package acl

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// SymbolDecl declares one role or resource, with optional parents it
// inherits from. Parents must appear earlier in the declaration list.
type SymbolDecl struct {
	Name    string   `json:"name" yaml:"name"`
	Parents []string `json:"parents,omitempty" yaml:"parents,omitempty"`
}

// RuleDecl declares one allow or deny rule. An omitted list means "all"
// for that dimension.
type RuleDecl struct {
	Effect     string   `json:"effect" yaml:"effect"`
	Roles      []string `json:"roles,omitempty" yaml:"roles,omitempty"`
	Resources  []string `json:"resources,omitempty" yaml:"resources,omitempty"`
	Privileges []string `json:"privileges,omitempty" yaml:"privileges,omitempty"`
}

// Rule effects accepted in declarative documents.
const (
	EffectAllow = "allow"
	EffectDeny  = "deny"
)

// PolicyFile is the declarative form of a complete policy: ordered role
// and resource declarations plus ordered rules. Order matters twice
// over — parents must precede children, and later rules overwrite
// earlier ones at equal specificity.
type PolicyFile struct {
	Roles     []SymbolDecl `json:"roles,omitempty" yaml:"roles,omitempty"`
	Resources []SymbolDecl `json:"resources,omitempty" yaml:"resources,omitempty"`
	Rules     []RuleDecl   `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// PolicySource provides policy declarations to BuildPolicy. External
// loaders (config systems, embedded files, admin stores) implement this
// to feed the builder without coupling it to any format.
type PolicySource interface {
	// Load returns the full set of declarations.
	Load(ctx context.Context) (PolicyFile, error)
}

// inMemSource is a PolicySource over an in-memory PolicyFile. It keeps a
// deep copy so later mutation of the caller's slices cannot leak into
// builds.
type inMemSource struct {
	mu   sync.RWMutex
	file PolicyFile
}

// NewInMemSource creates a PolicySource from an in-memory PolicyFile.
func NewInMemSource(file PolicyFile) PolicySource {
	return &inMemSource{file: clonePolicyFile(file)}
}

func (s *inMemSource) Load(ctx context.Context) (PolicyFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePolicyFile(s.file), nil
}

func clonePolicyFile(file PolicyFile) PolicyFile {
	clone := PolicyFile{
		Roles:     make([]SymbolDecl, len(file.Roles)),
		Resources: make([]SymbolDecl, len(file.Resources)),
		Rules:     make([]RuleDecl, len(file.Rules)),
	}
	for i, decl := range file.Roles {
		clone.Roles[i] = SymbolDecl{Name: decl.Name, Parents: slices.Clone(decl.Parents)}
	}
	for i, decl := range file.Resources {
		clone.Resources[i] = SymbolDecl{Name: decl.Name, Parents: slices.Clone(decl.Parents)}
	}
	for i, rule := range file.Rules {
		clone.Rules[i] = RuleDecl{
			Effect:     rule.Effect,
			Roles:      slices.Clone(rule.Roles),
			Resources:  slices.Clone(rule.Resources),
			Privileges: slices.Clone(rule.Privileges),
		}
	}
	return clone
}

// BuildPolicy loads declarations from the source and builds a Policy,
// feeding the builder in the required order: roles, resources, then
// rules. Declaration errors surface immediately with the offending name;
// cycles surface from the final build.
func BuildPolicy(ctx context.Context, source PolicySource) (*Policy, error) {
	file, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()

	for _, decl := range file.Roles {
		if err := b.AddRole(decl.Name, decl.Parents...); err != nil {
			return nil, err
		}
	}
	for _, decl := range file.Resources {
		if err := b.AddResource(decl.Name, decl.Parents...); err != nil {
			return nil, err
		}
	}
	for _, rule := range file.Rules {
		switch rule.Effect {
		case EffectAllow:
			err = b.Allow(rule.Roles, rule.Resources, rule.Privileges)
		case EffectDeny:
			err = b.Deny(rule.Roles, rule.Resources, rule.Privileges)
		default:
			return nil, errors.Join(ErrInvalidRuleEffect,
				fmt.Errorf("effect %q: must be %q or %q", rule.Effect, EffectAllow, EffectDeny))
		}
		if err != nil {
			return nil, err
		}
	}

	return b.Build()
}
