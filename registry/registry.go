// Package registry holds the static catalog of agent identities: who exists,
// what persona instructions each agent carries, and the closed allow-list of
// tools it may invoke. Identities are created at wiring time and never
// mutated afterwards.
package registry

import (
	"fmt"
	"sort"
)

// Identity describes one agent persona. Immutable after registration.
type Identity struct {
	// Name is the engine-level agent id used by the router and workflow steps.
	Name string `yaml:"name"`
	// Description is the one-line responsibility shown to the router.
	Description string `yaml:"description"`
	// Instruction is the persona / system prompt for the agent's completions.
	Instruction string `yaml:"instruction"`
	// Tools is the allow-list of tool names this agent may invoke.
	Tools []string `yaml:"tools"`
}

// AllowsTool reports whether the identity may invoke the named tool.
func (id Identity) AllowsTool(tool string) bool {
	for _, t := range id.Tools {
		if t == tool {
			return true
		}
	}
	return false
}

// Registry is the immutable agent catalog. The general agent is the fallback
// the router defaults to for low-confidence or ambiguous requests.
type Registry struct {
	identities map[string]Identity
	order      []string
	general    string
}

// New builds a registry from identities. The first identity whose name equals
// general becomes the fallback; general must be present.
func New(general string, identities ...Identity) (*Registry, error) {
	if len(identities) == 0 {
		return nil, fmt.Errorf("registry requires at least one identity")
	}
	r := &Registry{identities: make(map[string]Identity, len(identities)), general: general}
	for _, id := range identities {
		if id.Name == "" {
			return nil, fmt.Errorf("identity with empty name")
		}
		if _, dup := r.identities[id.Name]; dup {
			return nil, fmt.Errorf("duplicate identity %q", id.Name)
		}
		r.identities[id.Name] = id
		r.order = append(r.order, id.Name)
	}
	if _, ok := r.identities[general]; !ok {
		return nil, fmt.Errorf("general agent %q not in catalog", general)
	}
	return r, nil
}

// Get returns the identity for a name.
func (r *Registry) Get(name string) (Identity, bool) {
	id, ok := r.identities[name]
	return id, ok
}

// Has reports whether the name is a known agent.
func (r *Registry) Has(name string) bool {
	_, ok := r.identities[name]
	return ok
}

// General returns the fallback identity for ambiguous requests.
func (r *Registry) General() Identity {
	return r.identities[r.general]
}

// List returns all identities in registration order.
func (r *Registry) List() []Identity {
	ids := make([]Identity, 0, len(r.order))
	for _, name := range r.order {
		ids = append(ids, r.identities[name])
	}
	return ids
}

// Names returns all agent names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.identities))
	for name := range r.identities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
