// Community detection over positive-trust connections.
package socialgraph

import "seosa/internal/agents"

// Communities partitions characters into factions by connected-components
// search, where traversal follows edges in either direction only when their
// trust is strictly positive.
//
// This is a deliberate simplification standing in for modularity
// optimization (Louvain and friends); hostile and neutral ties never bind
// two characters into the same community.
func (g *Graph) Communities() [][]agents.CharacterID {
	visited := make(map[agents.CharacterID]bool, len(g.nodes))
	var communities [][]agents.CharacterID

	for _, start := range g.sortedIDs() {
		if visited[start] {
			continue
		}

		var members []agents.CharacterID
		queue := []agents.CharacterID{start}
		visited[start] = true

		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			members = append(members, id)

			node := g.nodes[id]
			for _, key := range node.Out {
				e := g.edges[key]
				if e.Trust > 0 && !visited[e.Target] {
					visited[e.Target] = true
					queue = append(queue, e.Target)
				}
			}
			for _, key := range node.In {
				e := g.edges[key]
				if e.Trust > 0 && !visited[e.Source] {
					visited[e.Source] = true
					queue = append(queue, e.Source)
				}
			}
		}

		communities = append(communities, members)
	}

	return communities
}
