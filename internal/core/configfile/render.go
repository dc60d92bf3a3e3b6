// Package configfile contains pure functions for rendering the cluster and
// client configuration artifacts from a planned topology. Rendering is plain
// substitution into fixed-shape per-role slot templates - no I/O, no side
// effects.
package configfile

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/artpar/ndbup/internal/core/topology"
)

// Artifact file names. The manifest binds these next to itself, so the names
// are part of the contract between the renderers.
const (
	ClusterConfigFileName = "config.ini"
	ClientConfigFileName  = "my.cnf"
)

// =============================================================================
// Slot Templates
// =============================================================================

// Each node receives one section per cluster identifier it holds. Sections are
// emitted in role order: management, data, SQL. API nodes join through the
// connection string alone and get no section.

var headerTmpl = template.Must(template.New("header").Parse(
	`[ndbd default]
NoOfReplicas={{.NoOfReplicas}}

`))

var mgmSlotTmpl = template.Must(template.New("mgmSlot").Parse(
	`[ndb_mgmd]
NodeId={{.NodeID}}
NodeActive=1
ArbitrationRank=2
HostName={{.HostName}}
PortNumber={{.Port}}

`))

var dataSlotTmpl = template.Must(template.New("dataSlot").Parse(
	`[ndbd]
NodeId={{.NodeID}}
NodeGroup={{.NodeGroup}}
NodeActive=1
HostName={{.HostName}}
ServerPort={{.Port}}
FileSystemPath=/var/lib/ndb/{{.NodeID}}

`))

var sqlSlotTmpl = template.Must(template.New("sqlSlot").Parse(
	`[mysqld]
NodeId={{.SlotID}}
NodeActive=1
ArbitrationRank=1
HostName={{.HostName}}

`))

var clientTmpl = template.Must(template.New("client").Parse(
	`[mysqld]
ndbcluster
ndb-connectstring={{.ConnectString}}
ndb-cluster-connection-pool={{.ConnectionPool}}

[mysql_cluster]
ndb-connectstring={{.ConnectString}}
`))

// =============================================================================
// Cluster Config
// =============================================================================

// RenderClusterConfig renders the cluster-wide configuration consumed by the
// management servers: a header carrying the replication factor followed by one
// section per management, data and SQL slot.
func RenderClusterConfig(topo *topology.Topology) (string, error) {
	var b strings.Builder

	err := headerTmpl.Execute(&b, struct{ NoOfReplicas int }{topo.Spec.ReplicationFactor})
	if err != nil {
		return "", fmt.Errorf("render cluster config header: %w", err)
	}

	for _, n := range topo.NodesByRole(topology.RoleManagement) {
		if err := mgmSlotTmpl.Execute(&b, n); err != nil {
			return "", fmt.Errorf("render %s slot: %w", n.ServiceName, err)
		}
	}
	for _, n := range topo.NodesByRole(topology.RoleData) {
		if err := dataSlotTmpl.Execute(&b, n); err != nil {
			return "", fmt.Errorf("render %s slot: %w", n.ServiceName, err)
		}
	}
	for _, n := range topo.NodesByRole(topology.RoleMySQL) {
		// One section per cluster connection the container holds.
		for _, slot := range n.SlotIDs {
			data := struct {
				SlotID   int
				HostName string
			}{slot, n.HostName}
			if err := sqlSlotTmpl.Execute(&b, data); err != nil {
				return "", fmt.Errorf("render %s slot %d: %w", n.ServiceName, slot, err)
			}
		}
	}

	return b.String(), nil
}

// =============================================================================
// Client Config
// =============================================================================

// RenderClientConfig renders the configuration the SQL gateways read on
// startup. It is only meaningful when the topology contains SQL nodes; callers
// skip it otherwise.
func RenderClientConfig(topo *topology.Topology) (string, error) {
	var b strings.Builder

	data := struct {
		ConnectString  string
		ConnectionPool int
	}{
		ConnectString:  topo.ConnectionString(),
		ConnectionPool: topology.SlotsPerSQLNode,
	}
	if err := clientTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render client config: %w", err)
	}

	return b.String(), nil
}
