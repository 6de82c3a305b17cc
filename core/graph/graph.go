package graph

import (
	"github.com/siherrmann/companygraph/model"
)

// workingGraph is the mutable attributed graph a Builder populates.
// Nodes are identified by name and keep their first-insertion position.
type workingGraph struct {
	config    model.BuildConfig
	nodes     []model.GraphNode
	nodeIndex map[string]int
	edges     []model.GraphEdge
	edgeIndex map[string]int
}

func newWorkingGraph(config model.BuildConfig) *workingGraph {
	g := &workingGraph{config: normalizeConfig(config)}
	g.reset()
	return g
}

func normalizeConfig(config model.BuildConfig) model.BuildConfig {
	defaults := model.DefaultBuildConfig()

	switch config.NodePolicy {
	case model.NodePolicyLastWriteWins, model.NodePolicyMergeRoles:
	default:
		config.NodePolicy = defaults.NodePolicy
	}

	switch config.EdgePolicy {
	case model.EdgePolicyMulti, model.EdgePolicyUniqueRelation, model.EdgePolicySimple:
	default:
		config.EdgePolicy = defaults.EdgePolicy
	}

	return config
}

// reset clears all nodes and edges
func (g *workingGraph) reset() {
	g.nodes = nil
	g.nodeIndex = make(map[string]int)
	g.edges = nil
	g.edgeIndex = make(map[string]int)
}

// addNode inserts a node or overwrites the attributes of an existing one (last write wins)
func (g *workingGraph) addNode(node model.GraphNode) {
	i, exists := g.nodeIndex[node.ID]
	if !exists {
		if g.config.NodePolicy == model.NodePolicyMergeRoles {
			node.Roles = []model.Group{node.Group}
		}
		g.nodeIndex[node.ID] = len(g.nodes)
		g.nodes = append(g.nodes, node)
		return
	}

	if g.config.NodePolicy == model.NodePolicyMergeRoles {
		node.Roles = mergeRole(g.nodes[i].Roles, node.Group)
	}
	g.nodes[i] = node
}

func mergeRole(roles []model.Group, group model.Group) []model.Group {
	for _, r := range roles {
		if r == group {
			return roles
		}
	}
	return append(roles, group)
}

// addEdge stores an edge according to the configured edge policy.
// Both endpoints must already exist.
func (g *workingGraph) addEdge(edge model.GraphEdge) {
	key, coalesce := g.edgeKey(edge)
	if !coalesce {
		g.edges = append(g.edges, edge)
		return
	}

	i, exists := g.edgeIndex[key]
	if !exists {
		g.edgeIndex[key] = len(g.edges)
		g.edges = append(g.edges, edge)
		return
	}

	// Simple graphs keep the orientation of the first edge between a pair
	if g.config.EdgePolicy == model.EdgePolicySimple {
		edge.From, edge.To = g.edges[i].From, g.edges[i].To
	}
	g.edges[i] = edge
}

func (g *workingGraph) edgeKey(edge model.GraphEdge) (string, bool) {
	switch g.config.EdgePolicy {
	case model.EdgePolicyUniqueRelation:
		return edge.From + "\x00" + edge.To + "\x00" + string(edge.Type), true
	case model.EdgePolicySimple:
		a, b := edge.From, edge.To
		if b < a {
			a, b = b, a
		}
		return a + "\x00" + b, true
	default:
		return "", false
	}
}

// payload serializes the working graph, applying defaults for missing attributes
func (g *workingGraph) payload() *model.GraphPayload {
	nodes := make([]model.GraphNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n.Label == "" {
			n.Label = n.ID
		}
		if n.Group == "" {
			n.Group = model.GroupDefault
		}
		if n.Size <= 0 {
			n.Size = 10
		}
		if n.Color == "" {
			n.Color = model.ColorDefaultNode
		}
		if n.Roles != nil {
			n.Roles = append([]model.Group(nil), n.Roles...)
		}
		nodes = append(nodes, n)
	}

	edges := make([]model.GraphEdge, 0, len(g.edges))
	for _, e := range g.edges {
		if e.Weight <= 0 {
			e.Weight = 1
		}
		if e.Color == "" {
			e.Color = model.ColorDefaultEdge
		}
		edges = append(edges, e)
	}

	return &model.GraphPayload{
		Nodes: nodes,
		Edges: edges,
	}
}
