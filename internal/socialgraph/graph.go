// Package socialgraph maintains the directed, weighted relationship graph
// between characters: trust and intimacy edges, idle decay, centrality, and
// community queries.
package socialgraph

import (
	"math"
	"sort"

	"seosa/internal/agents"
	"seosa/internal/params"
)

// EdgeKey addresses an edge by (source, target) for O(1) lookup.
type EdgeKey struct {
	Source agents.CharacterID
	Target agents.CharacterID
}

// Edge is a directed relationship. Created on first interaction, updated on
// each subsequent one, decayed over idle turns. Never deleted.
type Edge struct {
	Source       agents.CharacterID `json:"source"`
	Target       agents.CharacterID `json:"target"`
	Trust        float64            `json:"trust"`    // [-1, 1]
	Intimacy     float64            `json:"intimacy"` // [0, 1]
	Interactions int                `json:"interactions"`
	LastTurn     uint64             `json:"last_turn"`
}

// Node holds a character's adjacency lists, mirroring the edge index.
type Node struct {
	ID  agents.CharacterID
	Out []EdgeKey
	In  []EdgeKey
}

// Graph is the relationship arena: nodes and edges addressed by stable ids.
// Pointer-free traversal through the edge index avoids ownership cycles
// between characters and their relationships.
type Graph struct {
	nodes map[agents.CharacterID]*Node
	edges map[EdgeKey]*Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[agents.CharacterID]*Node),
		edges: make(map[EdgeKey]*Edge),
	}
}

// AddNode registers a character. Adding an existing id is a no-op.
func (g *Graph) AddNode(id agents.CharacterID) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = &Node{ID: id}
	}
}

// NodeCount returns the number of registered characters.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Edge returns the edge from source to target, if it exists.
func (g *Graph) Edge(source, target agents.CharacterID) (Edge, bool) {
	e, ok := g.edges[EdgeKey{source, target}]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Trust returns the trust from source to target, or the neutral default
// when no relationship exists.
func (g *Graph) Trust(source, target agents.CharacterID) float64 {
	if e, ok := g.edges[EdgeKey{source, target}]; ok {
		return e.Trust
	}
	return params.DefaultTrust
}

// Intimacy returns the intimacy from source to target, or the neutral
// default when no relationship exists.
func (g *Graph) Intimacy(source, target agents.CharacterID) float64 {
	if e, ok := g.edges[EdgeKey{source, target}]; ok {
		return e.Intimacy
	}
	return params.DefaultIntimacy
}

// Upsert creates or updates the edge from source to target: deltas are
// applied then clamped, the interaction count increments, and the
// last-interaction turn refreshes. Zero deltas only refresh the clock.
func (g *Graph) Upsert(source, target agents.CharacterID, dTrust, dIntimacy float64, turn uint64) {
	g.AddNode(source)
	g.AddNode(target)

	key := EdgeKey{source, target}
	e, ok := g.edges[key]
	if !ok {
		e = &Edge{Source: source, Target: target}
		g.edges[key] = e
		g.nodes[source].Out = append(g.nodes[source].Out, key)
		g.nodes[target].In = append(g.nodes[target].In, key)
	}

	e.Trust = clamp(e.Trust+dTrust, -1, 1)
	e.Intimacy = clamp(e.Intimacy+dIntimacy, 0, 1)
	e.Interactions++
	e.LastTurn = turn
}

// Decay shrinks every edge's magnitudes toward zero in proportion to the
// turns elapsed since its last interaction. Decay never flips sign; an edge
// touched this turn is untouched.
func (g *Graph) Decay(turn uint64) {
	for _, e := range g.edges {
		if turn <= e.LastTurn {
			continue
		}
		idle := float64(turn - e.LastTurn)
		e.Trust *= math.Pow(1-params.TrustDecayRate, idle)
		e.Intimacy *= math.Pow(1-params.IntimacyDecayRate, idle)
	}
}

// Clone returns a deep copy. Turn snapshots are built by cloning and
// mutating the clone, so a prior turn's graph is never observed changed.
func (g *Graph) Clone() *Graph {
	c := New()
	for id, n := range g.nodes {
		nn := &Node{ID: id, Out: append([]EdgeKey(nil), n.Out...), In: append([]EdgeKey(nil), n.In...)}
		c.nodes[id] = nn
	}
	for k, e := range g.edges {
		copied := *e
		c.edges[k] = &copied
	}
	return c
}

// outNeighbors iterates a node's outgoing edges in deterministic target
// order so argmax ties resolve the same way every run.
func (g *Graph) outNeighbors(id agents.CharacterID) []*Edge {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]*Edge, 0, len(n.Out))
	for _, k := range n.Out {
		out = append(out, g.edges[k])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

// MostTrusted returns the outgoing neighbor with the highest trust, or
// false if the character has no outgoing edges.
func (g *Graph) MostTrusted(id agents.CharacterID) (agents.CharacterID, bool) {
	return g.pickNeighbor(id, func(best, e *Edge) bool { return e.Trust > best.Trust })
}

// LeastTrusted returns the outgoing neighbor with the lowest trust.
func (g *Graph) LeastTrusted(id agents.CharacterID) (agents.CharacterID, bool) {
	return g.pickNeighbor(id, func(best, e *Edge) bool { return e.Trust < best.Trust })
}

// MostIntimate returns the outgoing neighbor with the highest intimacy.
func (g *Graph) MostIntimate(id agents.CharacterID) (agents.CharacterID, bool) {
	return g.pickNeighbor(id, func(best, e *Edge) bool { return e.Intimacy > best.Intimacy })
}

func (g *Graph) pickNeighbor(id agents.CharacterID, better func(best, e *Edge) bool) (agents.CharacterID, bool) {
	neighbors := g.outNeighbors(id)
	if len(neighbors) == 0 {
		return 0, false
	}
	best := neighbors[0]
	for _, e := range neighbors[1:] {
		if better(best, e) {
			best = e
		}
	}
	return best.Target, true
}

// sortedIDs returns all node ids ascending, for deterministic iteration.
func (g *Graph) sortedIDs() []agents.CharacterID {
	ids := make([]agents.CharacterID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
