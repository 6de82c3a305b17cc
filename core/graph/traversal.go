package graph

import (
	"errors"

	"github.com/siherrmann/companygraph/model"
)

// ErrNodeNotFound is returned when a traversal starts from an unknown node
var ErrNodeNotFound = errors.New("node not found")

// GraphSource defines the lookups a traversal needs
type GraphSource interface {
	GetNode(id string) (model.GraphNode, bool)
	GetEdgesFromNode(id string, relationTypes []model.RelationType, followIncoming bool) []model.GraphEdge
}

// TraversalResult contains a node and its distance from the source
type TraversalResult struct {
	Node     model.GraphNode
	Distance int
	Path     []string // Node ids from source to this node
}

// PayloadSource indexes a payload for traversal
type PayloadSource struct {
	nodes    map[string]model.GraphNode
	outgoing map[string][]model.GraphEdge
	incoming map[string][]model.GraphEdge
}

// NewPayloadSource builds adjacency lists over payload
func NewPayloadSource(payload *model.GraphPayload) *PayloadSource {
	s := &PayloadSource{
		nodes:    make(map[string]model.GraphNode),
		outgoing: make(map[string][]model.GraphEdge),
		incoming: make(map[string][]model.GraphEdge),
	}
	if payload == nil {
		return s
	}

	for _, n := range payload.Nodes {
		s.nodes[n.ID] = n
	}
	for _, e := range payload.Edges {
		s.outgoing[e.From] = append(s.outgoing[e.From], e)
		s.incoming[e.To] = append(s.incoming[e.To], e)
	}

	return s
}

// GetNode returns a node by id
func (s *PayloadSource) GetNode(id string) (model.GraphNode, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// GetEdgesFromNode returns the edges leaving id, plus the edges entering it when followIncoming is set.
// An empty relationTypes slice matches every relation.
func (s *PayloadSource) GetEdgesFromNode(id string, relationTypes []model.RelationType, followIncoming bool) []model.GraphEdge {
	var edges []model.GraphEdge
	for _, e := range s.outgoing[id] {
		if matchesType(e, relationTypes) {
			edges = append(edges, e)
		}
	}
	if followIncoming {
		for _, e := range s.incoming[id] {
			if matchesType(e, relationTypes) {
				edges = append(edges, e)
			}
		}
	}
	return edges
}

func matchesType(e model.GraphEdge, relationTypes []model.RelationType) bool {
	if len(relationTypes) == 0 {
		return true
	}
	for _, t := range relationTypes {
		if e.Type == t {
			return true
		}
	}
	return false
}

// otherEnd returns the node on the far side of e seen from current
func otherEnd(e model.GraphEdge, current string) string {
	if e.From == current {
		return e.To
	}
	return e.From
}

// BFS performs breadth-first search from a source node
func BFS(src GraphSource, sourceID string, maxHops int, relationTypes []model.RelationType, followIncoming bool) ([]*TraversalResult, error) {
	sourceNode, ok := src.GetNode(sourceID)
	if !ok {
		return nil, ErrNodeNotFound
	}

	visited := map[string]bool{sourceID: true}
	queue := []TraversalResult{{
		Node:     sourceNode,
		Distance: 0,
		Path:     []string{sourceID},
	}}

	var results []*TraversalResult

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		results = append(results, &current)

		if current.Distance >= maxHops {
			continue
		}

		for _, edge := range src.GetEdgesFromNode(current.Node.ID, relationTypes, followIncoming) {
			targetID := otherEnd(edge, current.Node.ID)
			if visited[targetID] {
				continue
			}

			targetNode, ok := src.GetNode(targetID)
			if !ok {
				continue
			}

			visited[targetID] = true

			newPath := make([]string, len(current.Path), len(current.Path)+1)
			copy(newPath, current.Path)
			newPath = append(newPath, targetID)

			queue = append(queue, TraversalResult{
				Node:     targetNode,
				Distance: current.Distance + 1,
				Path:     newPath,
			})
		}
	}

	return results, nil
}

// DFS performs depth-first search from a source node
func DFS(src GraphSource, sourceID string, maxHops int, relationTypes []model.RelationType, followIncoming bool) ([]*TraversalResult, error) {
	sourceNode, ok := src.GetNode(sourceID)
	if !ok {
		return nil, ErrNodeNotFound
	}

	visited := make(map[string]bool)
	var results []*TraversalResult

	dfsRecursive(src, sourceNode, 0, maxHops, []string{sourceID}, relationTypes, followIncoming, visited, &results)

	return results, nil
}

func dfsRecursive(
	src GraphSource,
	current model.GraphNode,
	distance int,
	maxHops int,
	path []string,
	relationTypes []model.RelationType,
	followIncoming bool,
	visited map[string]bool,
	results *[]*TraversalResult,
) {
	visited[current.ID] = true

	pathCopy := make([]string, len(path))
	copy(pathCopy, path)
	*results = append(*results, &TraversalResult{
		Node:     current,
		Distance: distance,
		Path:     pathCopy,
	})

	if distance >= maxHops {
		return
	}

	for _, edge := range src.GetEdgesFromNode(current.ID, relationTypes, followIncoming) {
		targetID := otherEnd(edge, current.ID)
		if visited[targetID] {
			continue
		}

		targetNode, ok := src.GetNode(targetID)
		if !ok {
			continue
		}

		newPath := make([]string, len(path), len(path)+1)
		copy(newPath, path)
		newPath = append(newPath, targetID)

		dfsRecursive(src, targetNode, distance+1, maxHops, newPath, relationTypes, followIncoming, visited, results)
	}
}

// GetNeighbors retrieves the immediate neighbors (1 hop) of a node in both directions
func GetNeighbors(payload *model.GraphPayload, nodeID string, relationTypes []model.RelationType) ([]model.GraphNode, error) {
	results, err := BFS(NewPayloadSource(payload), nodeID, 1, relationTypes, true)
	if err != nil {
		return nil, err
	}

	neighbors := make([]model.GraphNode, 0, len(results)-1)
	for i := 1; i < len(results); i++ {
		neighbors = append(neighbors, results[i].Node)
	}

	return neighbors, nil
}

// Neighborhood returns the sub-payload of all nodes within hops of nodeID, ignoring edge direction.
// Node and edge order follow the original payload.
func Neighborhood(payload *model.GraphPayload, nodeID string, hops int) (*model.GraphPayload, error) {
	results, err := BFS(NewPayloadSource(payload), nodeID, hops, nil, true)
	if err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(results))
	for _, r := range results {
		keep[r.Node.ID] = true
	}

	sub := &model.GraphPayload{
		Nodes: []model.GraphNode{},
		Edges: []model.GraphEdge{},
	}
	for _, n := range payload.Nodes {
		if keep[n.ID] {
			sub.Nodes = append(sub.Nodes, n)
		}
	}
	for _, e := range payload.Edges {
		if keep[e.From] && keep[e.To] {
			sub.Edges = append(sub.Edges, e)
		}
	}

	return sub, nil
}
