// Centrality measures over the relationship graph.
package socialgraph

import (
	"math"

	"seosa/internal/agents"
	"seosa/internal/params"
)

// edgeAuthority is the weight an edge transmits during PageRank: hostile
// edges (trust -1) carry half the authority of maximal-trust edges.
func edgeAuthority(trust float64) float64 {
	return 0.5 + 0.5*((trust+1)/2)
}

// PageRank computes trust-weighted PageRank over all nodes. Iteration stops
// when the largest per-node change falls below params.PageRankEpsilon or
// after params.PageRankMaxIter rounds. An empty graph returns an empty map
// without iterating; isolated nodes settle at (1-d)/n.
func (g *Graph) PageRank() map[agents.CharacterID]float64 {
	n := len(g.nodes)
	ranks := make(map[agents.CharacterID]float64, n)
	if n == 0 {
		return ranks
	}

	ids := g.sortedIDs()
	for _, id := range ids {
		ranks[id] = 1.0 / float64(n)
	}

	// Precompute each node's out-degree.
	outDeg := make(map[agents.CharacterID]int, n)
	for key := range g.edges {
		outDeg[key.Source]++
	}

	base := (1 - params.PageRankDamping) / float64(n)

	for iter := 0; iter < params.PageRankMaxIter; iter++ {
		next := make(map[agents.CharacterID]float64, n)
		maxDelta := 0.0

		for _, id := range ids {
			sum := 0.0
			for _, key := range g.nodes[id].In {
				e := g.edges[key]
				deg := outDeg[e.Source]
				if deg == 0 {
					continue
				}
				sum += ranks[e.Source] * edgeAuthority(e.Trust) / float64(deg)
			}
			r := base + params.PageRankDamping*sum
			next[id] = r
			if d := math.Abs(r - ranks[id]); d > maxDelta {
				maxDelta = d
			}
		}

		ranks = next
		if maxDelta < params.PageRankEpsilon {
			break
		}
	}

	return ranks
}

// DegreeCentrality returns (in+out) / (2*(n-1)) for the given character.
// Defined as zero for graphs of one or zero nodes.
func (g *Graph) DegreeCentrality(id agents.CharacterID) float64 {
	n := len(g.nodes)
	if n <= 1 {
		return 0
	}
	node, ok := g.nodes[id]
	if !ok {
		return 0
	}
	return float64(len(node.In)+len(node.Out)) / float64(2*(n-1))
}
