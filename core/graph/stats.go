package graph

import "github.com/siherrmann/companygraph/model"

// Stats counts nodes per group and supply-chain edges of a payload
func Stats(payload *model.GraphPayload) model.GraphStats {
	stats := model.GraphStats{
		ByGroup: make(map[model.Group]int),
	}
	if payload == nil {
		return stats
	}

	stats.Nodes = len(payload.Nodes)
	stats.Edges = len(payload.Edges)

	for _, n := range payload.Nodes {
		stats.ByGroup[n.Group]++
	}

	for _, e := range payload.Edges {
		if e.IsSupplyChain() {
			stats.SupplyChainEdges++
		}
	}

	return stats
}

// CountGroup returns the number of nodes in the given group
func CountGroup(payload *model.GraphPayload, group model.Group) int {
	return Stats(payload).ByGroup[group]
}

// CountSupplyChainEdges returns the number of edges carrying the supply-chain marker
func CountSupplyChainEdges(payload *model.GraphPayload) int {
	return Stats(payload).SupplyChainEdges
}
