package compose

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/artpar/ndbup/internal/core/configfile"
	"github.com/artpar/ndbup/internal/core/topology"
)

// ManifestFileName is the file name the orchestrator expects for the manifest.
const ManifestFileName = "docker-compose.yml"

// schemaVersion is the fixed compose schema version of every rendered
// manifest.
const schemaVersion = "3.8"

// =============================================================================
// Manifest Document Model
// =============================================================================

// The document is built as typed records first and marshalled in a single
// pass. yaml.v3 encodes struct fields in declaration order and map keys
// sorted, so identical input always yields byte-identical output.

type manifest struct {
	Version  string                 `yaml:"version"`
	Services map[string]service     `yaml:"services"`
	Volumes  map[string]*volumeSpec `yaml:"volumes"`
}

// volumeSpec is always nil: named volumes are declared with default settings
// and created by the orchestrator itself.
type volumeSpec struct{}

type service struct {
	Image         string            `yaml:"image"`
	ContainerName string            `yaml:"container_name"`
	Command       []string          `yaml:"command,omitempty"`
	Environment   map[string]string `yaml:"environment,omitempty"`
	Volumes       []string          `yaml:"volumes,omitempty"`
	Deploy        deploy            `yaml:"deploy"`
}

type deploy struct {
	Resources resources `yaml:"resources"`
}

type resources struct {
	Limits       resourceSpec `yaml:"limits"`
	Reservations resourceSpec `yaml:"reservations"`
}

type resourceSpec struct {
	CPUs   string `yaml:"cpus"`
	Memory string `yaml:"memory"`
}

// =============================================================================
// Per-Role Envelopes and Mount Points
// =============================================================================

// Fixed per-role resource envelopes. Data nodes get the large envelope: bulk
// loads spike their memory well above steady state.
var (
	mgmResources = resources{
		Limits:       resourceSpec{CPUs: "0.5", Memory: "512M"},
		Reservations: resourceSpec{CPUs: "0.25", Memory: "256M"},
	}
	dataResources = resources{
		Limits:       resourceSpec{CPUs: "2", Memory: "4G"},
		Reservations: resourceSpec{CPUs: "1", Memory: "2G"},
	}
	sqlResources = resources{
		Limits:       resourceSpec{CPUs: "1", Memory: "1G"},
		Reservations: resourceSpec{CPUs: "0.5", Memory: "512M"},
	}
	apiResources = resources{
		Limits:       resourceSpec{CPUs: "0.5", Memory: "512M"},
		Reservations: resourceSpec{CPUs: "0.25", Memory: "256M"},
	}
)

// In-container mount points.
const (
	clusterConfigTarget = "/etc/ndb/config.ini"
	clientConfigTarget  = "/etc/my.cnf"

	ndbDataDir    = "/var/lib/ndb"
	ndbLogDir     = "/var/log/ndb"
	mysqlDataDir  = "/var/lib/mysql"
	mysqlLogDir   = "/var/log/mysql"
	mysqlFilesDir = "/var/lib/mysql-files"
)

// =============================================================================
// Rendering
// =============================================================================

// RenderManifest renders the complete orchestration manifest for topo: one
// service block per node plus a global volumes section declaring every named
// volume exactly once. Output is deterministic for a given topology and image.
func RenderManifest(topo *topology.Topology, image string) (string, error) {
	if image == "" {
		return "", ErrNoImage
	}
	if len(topo.Nodes) == 0 {
		return "", ErrNoNodes
	}

	doc := manifest{
		Version:  schemaVersion,
		Services: make(map[string]service, len(topo.Nodes)),
		Volumes:  make(map[string]*volumeSpec),
	}

	connString := topo.ConnectionString()
	for _, n := range topo.Nodes {
		svc, volumes := buildService(n, image, connString)
		doc.Services[n.ServiceName] = svc
		for _, v := range volumes {
			doc.Volumes[v] = nil
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	return string(out), nil
}

// buildService builds the service block for a single node and returns the
// named volumes it allocated.
func buildService(n topology.Node, image, connString string) (service, []string) {
	svc := service{
		Image:         image,
		ContainerName: n.ServiceName,
	}

	dataVolume := n.ServiceName + "_data"
	logVolume := n.ServiceName + "_logs"
	volumes := []string{dataVolume, logVolume}

	switch n.Role {
	case topology.RoleManagement:
		svc.Command = []string{
			"ndb_mgmd",
			"--initial",
			fmt.Sprintf("--ndb-nodeid=%d", n.NodeID),
			"-f", clusterConfigTarget,
			"--configdir=" + ndbDataDir,
		}
		svc.Deploy = deploy{Resources: mgmResources}
		svc.Volumes = []string{
			dataVolume + ":" + ndbDataDir,
			logVolume + ":" + ndbLogDir,
			"./" + configfile.ClusterConfigFileName + ":" + clusterConfigTarget,
		}

	case topology.RoleData:
		svc.Command = []string{
			"ndbd",
			"--initial",
			fmt.Sprintf("--ndb-nodeid=%d", n.NodeID),
			"-c", connString,
		}
		svc.Deploy = deploy{Resources: dataResources}
		svc.Volumes = []string{
			dataVolume + ":" + ndbDataDir,
			logVolume + ":" + ndbLogDir,
		}

	case topology.RoleMySQL:
		// The gateway image starts mysqld itself from the mounted client
		// config; no extra arguments.
		filesVolume := n.ServiceName + "_mysql_files"
		volumes = append(volumes, filesVolume)
		svc.Deploy = deploy{Resources: sqlResources}
		svc.Volumes = []string{
			dataVolume + ":" + mysqlDataDir,
			logVolume + ":" + mysqlLogDir,
			filesVolume + ":" + mysqlFilesDir,
			"./" + configfile.ClientConfigFileName + ":" + clientConfigTarget,
		}
		// Development convenience only: the cluster has no credential
		// management at formation time.
		svc.Environment = map[string]string{
			"MYSQL_ALLOW_EMPTY_PASSWORD": "true",
		}

	case topology.RoleAPI:
		svc.Deploy = deploy{Resources: apiResources}
		svc.Volumes = []string{
			dataVolume + ":" + ndbDataDir,
			logVolume + ":" + ndbLogDir,
		}
	}

	return svc, volumes
}
