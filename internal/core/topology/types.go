package topology

import (
	"fmt"
	"strings"
)

// =============================================================================
// Cluster Spec - Input Type
// =============================================================================

// ClusterSpec is the declarative description of the cluster to form.
// It is the only input to planning and is never mutated.
type ClusterSpec struct {
	MgmCount          int    `json:"mgm_count"`
	DataCount         int    `json:"data_count"`
	ReplicationFactor int    `json:"replication_factor"`
	MySQLCount        int    `json:"mysql_count"`
	APICount          int    `json:"api_count"`
	Version           string `json:"version,omitempty"`
}

// =============================================================================
// Node Types
// =============================================================================

// NodeRole identifies the cluster role a node plays.
type NodeRole string

const (
	RoleManagement NodeRole = "mgmd"
	RoleData       NodeRole = "ndbd"
	RoleMySQL      NodeRole = "mysqld"
	RoleAPI        NodeRole = "api"
)

// Node is a single planned cluster member. Nodes are created by Plan and
// read-only afterward.
type Node struct {
	Role NodeRole `json:"role"`

	// NodeID is the node's primary cluster identifier, globally unique
	// across every role.
	NodeID int `json:"node_id"`

	// SlotIDs lists every cluster identifier held by this node. SQL nodes
	// reserve SlotsPerSQLNode identifiers per container (one per cluster
	// connection); all other roles hold exactly one, equal to NodeID.
	SlotIDs []int `json:"slot_ids"`

	// NodeGroup is the replica group of a data node. Only meaningful when
	// Role is RoleData.
	NodeGroup int `json:"node_group"`

	// ServiceName is the stable, human-readable name derived from role and
	// 1-based creation index. It doubles as container name and as the key
	// correlating this node across all rendered artifacts.
	ServiceName string `json:"service_name"`

	HostName string `json:"host_name"`
	Port     int    `json:"port"`
}

// =============================================================================
// Topology - Output Type
// =============================================================================

// Topology is the planned cluster layout. It is computed once per run and
// immutable afterward; renderers hold only a read reference.
type Topology struct {
	Spec ClusterSpec `json:"spec"`

	// Nodes in creation order: management, data, SQL, API.
	Nodes []Node `json:"nodes"`

	// MgmEndpoints holds one "host:port" entry per management node, in
	// creation order.
	MgmEndpoints []string `json:"mgm_endpoints"`

	NumNodeGroups int `json:"num_node_groups"`
}

// NodesByRole returns the nodes with the given role, in creation order.
func (t *Topology) NodesByRole(role NodeRole) []Node {
	var nodes []Node
	for _, n := range t.Nodes {
		if n.Role == role {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// ConnectionString returns the management connection string other roles use
// to join the cluster. Every entry keeps its trailing separator; downstream
// consumers tolerate the trailing comma.
func (t *Topology) ConnectionString() string {
	var b strings.Builder
	for _, ep := range t.MgmEndpoints {
		fmt.Fprintf(&b, "%s,", ep)
	}
	return b.String()
}

// ServiceName derives the stable service name for the i-th (1-based) node of
// a role. Pattern: {role}_{index}.
func ServiceName(role NodeRole, index int) string {
	return fmt.Sprintf("%s_%d", role, index)
}
