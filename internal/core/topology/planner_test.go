package topology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Fixtures
// =============================================================================

var minimalSpec = ClusterSpec{
	MgmCount:          1,
	DataCount:         1,
	ReplicationFactor: 1,
}

var developmentSpec = ClusterSpec{
	MgmCount:          2,
	DataCount:         4,
	ReplicationFactor: 2,
	MySQLCount:        1,
	APICount:          0,
}

// =============================================================================
// Plan Tests - Valid Specs
// =============================================================================

func TestPlan_MinimalCluster(t *testing.T) {
	topo, err := Plan(minimalSpec)
	require.NoError(t, err)

	require.Len(t, topo.Nodes, 2)
	assert.Equal(t, 1, topo.NumNodeGroups)

	mgm := topo.NodesByRole(RoleManagement)
	require.Len(t, mgm, 1)
	assert.Equal(t, 65, mgm[0].NodeID)
	assert.Equal(t, "mgmd_1", mgm[0].ServiceName)
	assert.Equal(t, MgmPort, mgm[0].Port)

	data := topo.NodesByRole(RoleData)
	require.Len(t, data, 1)
	assert.Equal(t, 1, data[0].NodeID)
	assert.Equal(t, 0, data[0].NodeGroup)

	assert.Equal(t, "mgmd_1:1186,", topo.ConnectionString())
}

func TestPlan_DevelopmentCluster(t *testing.T) {
	topo, err := Plan(developmentSpec)
	require.NoError(t, err)

	mgm := topo.NodesByRole(RoleManagement)
	require.Len(t, mgm, 2)
	assert.Equal(t, 65, mgm[0].NodeID)
	assert.Equal(t, 66, mgm[1].NodeID)

	data := topo.NodesByRole(RoleData)
	require.Len(t, data, 4)
	var ids, groups []int
	for _, n := range data {
		ids = append(ids, n.NodeID)
		groups = append(groups, n.NodeGroup)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
	// Round-robin by modulo over 2 groups.
	assert.Equal(t, []int{1, 0, 1, 0}, groups)

	sql := topo.NodesByRole(RoleMySQL)
	require.Len(t, sql, 1)
	assert.Equal(t, []int{69, 70}, sql[0].SlotIDs)
	assert.Equal(t, 69, sql[0].NodeID)

	assert.Len(t, topo.MgmEndpoints, 2)
	assert.Equal(t, "mgmd_1:1186,mgmd_2:1186,", topo.ConnectionString())
}

func TestPlan_APINodesGetIDsAfterSQLBand(t *testing.T) {
	spec := developmentSpec
	spec.APICount = 2

	topo, err := Plan(spec)
	require.NoError(t, err)

	api := topo.NodesByRole(RoleAPI)
	require.Len(t, api, 2)
	assert.Equal(t, 71, api[0].NodeID)
	assert.Equal(t, 72, api[1].NodeID)
	assert.Equal(t, "api_1", api[0].ServiceName)
}

func TestPlan_NodeIDsAreGloballyUnique(t *testing.T) {
	spec := ClusterSpec{
		MgmCount:          2,
		DataCount:         6,
		ReplicationFactor: 3,
		MySQLCount:        3,
		APICount:          2,
	}

	topo, err := Plan(spec)
	require.NoError(t, err)

	seen := make(map[int]string)
	for _, n := range topo.Nodes {
		for _, id := range n.SlotIDs {
			if other, dup := seen[id]; dup {
				t.Fatalf("node ID %d allocated to both %s and %s", id, other, n.ServiceName)
			}
			seen[id] = n.ServiceName
		}
	}
}

func TestPlan_ServiceNamesAreUnique(t *testing.T) {
	topo, err := Plan(ClusterSpec{
		MgmCount:          3,
		DataCount:         4,
		ReplicationFactor: 2,
		MySQLCount:        2,
		APICount:          1,
	})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, n := range topo.Nodes {
		assert.False(t, seen[n.ServiceName], "duplicate service name %s", n.ServiceName)
		seen[n.ServiceName] = true
	}
}

func TestPlan_NodeGroupsWithinRange(t *testing.T) {
	topo, err := Plan(ClusterSpec{
		MgmCount:          1,
		DataCount:         8,
		ReplicationFactor: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, topo.NumNodeGroups)
	for _, n := range topo.NodesByRole(RoleData) {
		assert.GreaterOrEqual(t, n.NodeGroup, 0)
		assert.Less(t, n.NodeGroup, topo.NumNodeGroups)
	}
}

func TestPlan_EndpointCountMatchesMgmCount(t *testing.T) {
	for _, count := range []int{1, 2, 3} {
		topo, err := Plan(ClusterSpec{
			MgmCount:          count,
			DataCount:         2,
			ReplicationFactor: 1,
		})
		require.NoError(t, err)
		assert.Len(t, topo.MgmEndpoints, count)
	}
}

func TestPlan_IsDeterministic(t *testing.T) {
	first, err := Plan(developmentSpec)
	require.NoError(t, err)
	second, err := Plan(developmentSpec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// =============================================================================
// Plan Tests - Invalid Specs
// =============================================================================

func TestPlan_RejectsZeroMgmNodes(t *testing.T) {
	spec := minimalSpec
	spec.MgmCount = 0

	topo, err := Plan(spec)
	assert.Nil(t, topo)
	assert.ErrorIs(t, err, ErrTooFewMgmNodes)
}

func TestPlan_RejectsZeroDataNodes(t *testing.T) {
	spec := minimalSpec
	spec.DataCount = 0

	topo, err := Plan(spec)
	assert.Nil(t, topo)
	assert.ErrorIs(t, err, ErrTooFewDataNodes)
}

func TestPlan_RejectsNonPositiveReplicationFactor(t *testing.T) {
	spec := minimalSpec
	spec.ReplicationFactor = 0

	topo, err := Plan(spec)
	assert.Nil(t, topo)
	assert.ErrorIs(t, err, ErrBadReplicationFactor)
}

func TestPlan_RejectsUnevenNodeGroups(t *testing.T) {
	topo, err := Plan(ClusterSpec{
		MgmCount:          1,
		DataCount:         3,
		ReplicationFactor: 2,
	})
	assert.Nil(t, topo)
	assert.ErrorIs(t, err, ErrUnevenNodeGroups)
}

func TestPlan_SpecErrorCarriesField(t *testing.T) {
	_, err := Plan(ClusterSpec{
		MgmCount:          1,
		DataCount:         3,
		ReplicationFactor: 2,
	})
	require.Error(t, err)

	var specErr *SpecError
	require.True(t, errors.As(err, &specErr))
	assert.Equal(t, "data_count", specErr.Field)
	assert.Contains(t, specErr.Error(), "data_count")
}
