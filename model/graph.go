package model

import (
	"database/sql/driver"
	"encoding/json"
)

// Group is the node category driving visual style and downstream counting
type Group string

const (
	GroupCompany     Group = "company"
	GroupShareholder Group = "shareholder"
	GroupPerson      Group = "person"
	GroupSupplier    Group = "supplier"
	GroupCustomer    Group = "customer"
	GroupDefault     Group = "default"
)

// RelationType marks the kind of relationship an edge represents
type RelationType string

const (
	RelationShareholding RelationType = "shareholding"
	RelationEmployment   RelationType = "employment"
	RelationSubsidiary   RelationType = "subsidiary"
	RelationUpstream     RelationType = "upstream"
	RelationDownstream   RelationType = "downstream"
)

// IsSupplyChain reports whether the relation is an upstream or downstream commercial relation
func (r RelationType) IsSupplyChain() bool {
	return r == RelationUpstream || r == RelationDownstream
}

// Visual tags for nodes and edges. Field names of the payload follow the
// vis-network interchange format, so colors are plain hex strings.
const (
	ColorPrimaryBlue     = "#1f77b4"
	ColorSecondaryOrange = "#ff7f0e"
	ColorGreen           = "#2ca02c"
	ColorRed             = "#d62728"
	ColorPurple          = "#9467bd"
	ColorBrown           = "#8c564b"
	ColorDefaultNode     = "#97C2FC"
	ColorDefaultEdge     = "#848484"
)

// GraphNode is one entity of the relationship graph
type GraphNode struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Group       Group   `json:"group"`
	TooltipText string  `json:"title"`
	Size        float64 `json:"size"`
	Color       string  `json:"color"`
	Roles       []Group `json:"roles,omitempty"`
}

// GraphEdge is one directed relation between two nodes of the same payload
type GraphEdge struct {
	From            string       `json:"from"`
	To              string       `json:"to"`
	RelationTooltip string       `json:"title"`
	Weight          int          `json:"value"`
	Color           string       `json:"color"`
	Dashed          bool         `json:"dashes"`
	Type            RelationType `json:"type"`
}

// IsSupplyChain reports whether the edge carries the supply-chain marker
func (e GraphEdge) IsSupplyChain() bool {
	return e.Type.IsSupplyChain()
}

// GraphPayload is the serialized node/edge representation consumed by renderers and analytics.
// Nodes are in first-insertion order, edges in insertion order.
type GraphPayload struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// MarshalJSON always emits arrays for nodes and edges, never null
func (p GraphPayload) MarshalJSON() ([]byte, error) {
	type payload GraphPayload
	out := payload(p)
	if out.Nodes == nil {
		out.Nodes = []GraphNode{}
	}
	if out.Edges == nil {
		out.Edges = []GraphEdge{}
	}
	return json.Marshal(out)
}

// Node returns the node with the given id
func (p *GraphPayload) Node(id string) (GraphNode, bool) {
	for _, n := range p.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}

// Value implements the driver.Valuer interface for database storage
func (p GraphPayload) Value() (driver.Value, error) {
	return marshalJSONB(p)
}

// Scan implements the sql.Scanner interface for database retrieval
func (p *GraphPayload) Scan(value interface{}) error {
	return unmarshalJSONB(value, p)
}

// GraphStats holds aggregate counts computed from a payload
type GraphStats struct {
	Nodes            int           `json:"nodes"`
	Edges            int           `json:"edges"`
	ByGroup          map[Group]int `json:"by_group"`
	SupplyChainEdges int           `json:"supply_chain_edges"`
}
