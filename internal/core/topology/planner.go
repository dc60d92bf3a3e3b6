package topology

import "fmt"

// =============================================================================
// Node ID Allocation Table
// =============================================================================

// Node identifiers are allocated from fixed, non-overlapping per-role bands so
// that IDs never collide across roles at single-host development scale. Data
// nodes take the lowest band because the database addresses them most often.
const (
	// dataNodeIDBase starts the data-node band: the i-th data node gets
	// ID i.
	dataNodeIDBase = 1

	// mgmNodeIDBase starts the management band: the i-th management node
	// gets ID 65+(i-1).
	mgmNodeIDBase = 65

	// sqlSlotIDBase starts the SQL band. The i-th SQL container holds
	// SlotsPerSQLNode consecutive IDs beginning at
	// sqlSlotIDBase + i*SlotsPerSQLNode. API nodes are allocated from the
	// same band, immediately after the last possible SQL slot.
	sqlSlotIDBase = 67

	// SlotsPerSQLNode is the number of cluster connections (and therefore
	// config slots) each SQL container holds.
	SlotsPerSQLNode = 2
)

// Well-known per-role ports.
const (
	MgmPort        = 1186
	DataServerPort = 11860
	MySQLPort      = 3306
)

// =============================================================================
// Planning
// =============================================================================

// Plan validates spec and computes the full cluster topology: per-role node
// identifiers, replica group assignments and the management connection
// endpoints. On any validation failure it returns a SpecError and no topology.
func Plan(spec ClusterSpec) (*Topology, error) {
	if err := validate(spec); err != nil {
		return nil, err
	}

	topo := &Topology{
		Spec:          spec,
		NumNodeGroups: spec.DataCount / spec.ReplicationFactor,
	}

	for i := 1; i <= spec.MgmCount; i++ {
		name := ServiceName(RoleManagement, i)
		id := mgmNodeIDBase + (i - 1)
		topo.Nodes = append(topo.Nodes, Node{
			Role:        RoleManagement,
			NodeID:      id,
			SlotIDs:     []int{id},
			ServiceName: name,
			HostName:    name,
			Port:        MgmPort,
		})
		topo.MgmEndpoints = append(topo.MgmEndpoints, fmt.Sprintf("%s:%d", name, MgmPort))
	}

	for i := 1; i <= spec.DataCount; i++ {
		name := ServiceName(RoleData, i)
		id := dataNodeIDBase + (i - 1)
		topo.Nodes = append(topo.Nodes, Node{
			Role:   RoleData,
			NodeID: id,
			// Round-robin by modulo. This does not guarantee exactly
			// ReplicationFactor members per group; the divisibility
			// check above is the only balance constraint enforced.
			NodeGroup:   i % topo.NumNodeGroups,
			SlotIDs:     []int{id},
			ServiceName: name,
			HostName:    name,
			Port:        DataServerPort,
		})
	}

	for i := 1; i <= spec.MySQLCount; i++ {
		name := ServiceName(RoleMySQL, i)
		slots := make([]int, 0, SlotsPerSQLNode)
		for s := 1; s <= SlotsPerSQLNode; s++ {
			slots = append(slots, sqlSlotIDBase+i*SlotsPerSQLNode+(s-1))
		}
		topo.Nodes = append(topo.Nodes, Node{
			Role:        RoleMySQL,
			NodeID:      slots[0],
			SlotIDs:     slots,
			ServiceName: name,
			HostName:    name,
			Port:        MySQLPort,
		})
	}

	// API nodes hold no config slot; they still need globally unique IDs,
	// taken after the last ID the SQL band could have handed out.
	apiBase := sqlSlotIDBase + (spec.MySQLCount+1)*SlotsPerSQLNode
	for i := 1; i <= spec.APICount; i++ {
		name := ServiceName(RoleAPI, i)
		id := apiBase + (i - 1)
		topo.Nodes = append(topo.Nodes, Node{
			Role:        RoleAPI,
			NodeID:      id,
			SlotIDs:     []int{id},
			ServiceName: name,
			HostName:    name,
		})
	}

	return topo, nil
}

// =============================================================================
// Validation
// =============================================================================

// validate checks a ClusterSpec against the topology invariants. It returns
// the first violated constraint; no partial topology is ever produced.
func validate(spec ClusterSpec) error {
	if spec.MgmCount < 1 {
		return NewSpecError("mgm_count",
			fmt.Sprintf("got %d management nodes, need at least 1", spec.MgmCount),
			ErrTooFewMgmNodes)
	}
	if spec.ReplicationFactor < 1 {
		return NewSpecError("replication_factor",
			fmt.Sprintf("got %d, must be at least 1", spec.ReplicationFactor),
			ErrBadReplicationFactor)
	}
	if spec.DataCount < 1 {
		return NewSpecError("data_count",
			fmt.Sprintf("got %d data nodes, need at least 1", spec.DataCount),
			ErrTooFewDataNodes)
	}
	if spec.DataCount%spec.ReplicationFactor != 0 {
		return NewSpecError("data_count",
			fmt.Sprintf("%d data nodes cannot form whole node groups of %d replicas",
				spec.DataCount, spec.ReplicationFactor),
			ErrUnevenNodeGroups)
	}
	return nil
}
