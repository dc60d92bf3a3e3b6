package deployment

import (
	"fmt"
	"strings"

	"github.com/artpar/ndbup/internal/core/topology"
)

// =============================================================================
// Deployment Naming Functions
// =============================================================================

// DeploymentID derives the identity of a generated deployment from every
// topology-shaping parameter, so distinct topologies never collide on disk or
// in the orchestrator. It doubles as the orchestrator project name.
// Pattern: ndbup_v{version}_mgmd{m}_ndbd{d}_rf{r}_mysqld{s}_api{a}
//
// Example:
//
//	DeploymentID(ClusterSpec{MgmCount: 1, DataCount: 2, ReplicationFactor: 2, Version: "8.0.34"})
//	// returns "ndbup_v8-0-34_mgmd1_ndbd2_rf2_mysqld0_api0"
func DeploymentID(spec topology.ClusterSpec) string {
	version := spec.Version
	if version == "" {
		version = "latest"
	}
	return fmt.Sprintf("ndbup_v%s_mgmd%d_ndbd%d_rf%d_mysqld%d_api%d",
		sanitizeName(version),
		spec.MgmCount,
		spec.DataCount,
		spec.ReplicationFactor,
		spec.MySQLCount,
		spec.APICount,
	)
}

// sanitizeName lowercases s and replaces every character the orchestrator
// rejects in project names with a hyphen.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
