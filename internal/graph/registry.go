// Package graph keeps the set of identities and the undirected edges between them.
//
// The Registry is the only owner of Identity values. Edges are stored as
// pairs of ids, never as references between identities.
package graph

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/eldtechnologies/graphmsg/internal/identity"
	"github.com/eldtechnologies/graphmsg/internal/metrics"
)

var (
	ErrNotFound = errors.New("node not found")
	ErrSelfEdge = errors.New("cannot connect a node to itself")
)

// Edge is an undirected connection. A is always <= B.
type Edge struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// NewEdge normalises the pair so that (a, b) and (b, a) compare equal.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Registry maps ids to identities and tracks edges. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]identity.Identity
	edges map[Edge]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[string]identity.Identity),
		edges: make(map[Edge]struct{}),
	}
}

// AddNode inserts or replaces an identity by id. Existing edges survive a replace.
func (r *Registry) AddNode(ident identity.Identity) {
	r.mu.Lock()
	r.nodes[ident.ID] = ident
	r.publishLocked()
	r.mu.Unlock()
}

// RemoveNode deletes an identity and every edge touching it.
func (r *Registry) RemoveNode(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.nodes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.nodes, id)
	for e := range r.edges {
		if e.A == id || e.B == id {
			delete(r.edges, e)
		}
	}
	r.publishLocked()
	return nil
}

// Lookup returns a copy of the identity registered under id.
func (r *Registry) Lookup(id string) (identity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ident, ok := r.nodes[id]
	if !ok {
		return identity.Identity{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ident, nil
}

// Rename changes the display name of a registered identity.
func (r *Registry) Rename(id, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ident, ok := r.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	ident.DisplayName = displayName
	r.nodes[id] = ident
	return nil
}

// Connect adds the undirected edge a-b. Connecting an existing pair is a no-op.
func (r *Registry) Connect(a, b string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireLocked(a, b); err != nil {
		return err
	}
	if a == b {
		return fmt.Errorf("%w: %s", ErrSelfEdge, a)
	}
	r.edges[NewEdge(a, b)] = struct{}{}
	r.publishLocked()
	return nil
}

// Disconnect removes the edge a-b if present.
func (r *Registry) Disconnect(a, b string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireLocked(a, b); err != nil {
		return err
	}
	delete(r.edges, NewEdge(a, b))
	r.publishLocked()
	return nil
}

// Connected reports whether the edge a-b exists.
func (r *Registry) Connected(a, b string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.edges[NewEdge(a, b)]
	return ok
}

// Neighbors returns the sorted ids connected to id.
func (r *Registry) Neighbors(id string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var out []string
	for e := range r.edges {
		switch id {
		case e.A:
			out = append(out, e.B)
		case e.B:
			out = append(out, e.A)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Edges returns every edge sorted by (A, B).
func (r *Registry) Edges() []Edge {
	r.mu.RLock()
	out := make([]Edge, 0, len(r.edges))
	for e := range r.edges {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Len returns the number of registered identities and edges.
func (r *Registry) Len() (nodes, edges int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes), len(r.edges)
}

func (r *Registry) requireLocked(ids ...string) error {
	for _, id := range ids {
		if _, ok := r.nodes[id]; !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
	}
	return nil
}

func (r *Registry) publishLocked() {
	metrics.RegistryNodes.Set(float64(len(r.nodes)))
	metrics.RegistryEdges.Set(float64(len(r.edges)))
}
