package model

// NodePolicy decides what happens when a name appears in more than one role
type NodePolicy string

const (
	// NodePolicyLastWriteWins overwrites group and visual attributes with the
	// role processed last. The node keeps its first-insertion position.
	NodePolicyLastWriteWins NodePolicy = "last_write_wins"
	// NodePolicyMergeRoles behaves like NodePolicyLastWriteWins and also
	// records every role the node was seen in.
	NodePolicyMergeRoles NodePolicy = "merge_roles"
)

// EdgePolicy decides how repeated relations between the same nodes are stored
type EdgePolicy string

const (
	// EdgePolicyMulti keeps every relation as its own edge, duplicates included
	EdgePolicyMulti EdgePolicy = "multi"
	// EdgePolicyUniqueRelation coalesces edges with the same (from, to, type)
	EdgePolicyUniqueRelation EdgePolicy = "unique_relation"
	// EdgePolicySimple coalesces edges by unordered node pair, like a simple undirected graph
	EdgePolicySimple EdgePolicy = "simple"
)

// BuildConfig configures the graph builder
type BuildConfig struct {
	NodePolicy NodePolicy `json:"node_policy"`
	EdgePolicy EdgePolicy `json:"edge_policy"`
}

// DefaultBuildConfig returns last-write-wins nodes and multi-edge relations
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		NodePolicy: NodePolicyLastWriteWins,
		EdgePolicy: EdgePolicyMulti,
	}
}
