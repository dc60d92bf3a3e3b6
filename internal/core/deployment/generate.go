package deployment

import (
	"fmt"

	"github.com/artpar/ndbup/internal/core/compose"
	"github.com/artpar/ndbup/internal/core/configfile"
	"github.com/artpar/ndbup/internal/core/topology"
)

// =============================================================================
// Generation Pipeline
// =============================================================================

// Bundle is everything a single generation run produced. The same topology
// backs every artifact, so a node appears consistently across all of them.
type Bundle struct {
	// ID is the deterministic deployment identifier, see DeploymentID.
	ID string

	Topology *topology.Topology

	// Artifacts in render order: cluster config, client config (only when
	// the topology has SQL nodes), orchestration manifest.
	Artifacts []RenderedArtifact
}

// Generate runs the full pipeline for spec: plan the topology, render every
// artifact from it and validate the manifest. On any failure it returns the
// error and no bundle - partial artifact sets are never produced.
func Generate(spec topology.ClusterSpec, image string) (*Bundle, error) {
	topo, err := topology.Plan(spec)
	if err != nil {
		return nil, err
	}

	clusterConfig, err := configfile.RenderClusterConfig(topo)
	if err != nil {
		return nil, err
	}
	artifacts := []RenderedArtifact{
		{
			Kind:     ArtifactClusterConfig,
			FileName: configfile.ClusterConfigFileName,
			Content:  clusterConfig,
		},
	}

	if spec.MySQLCount > 0 {
		clientConfig, err := configfile.RenderClientConfig(topo)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, RenderedArtifact{
			Kind:     ArtifactClientConfig,
			FileName: configfile.ClientConfigFileName,
			Content:  clientConfig,
		})
	}

	manifest, err := compose.RenderManifest(topo, image)
	if err != nil {
		return nil, err
	}
	if err := compose.ValidateManifest(manifest); err != nil {
		return nil, fmt.Errorf("rendered manifest failed validation: %w", err)
	}
	artifacts = append(artifacts, RenderedArtifact{
		Kind:     ArtifactManifest,
		FileName: compose.ManifestFileName,
		Content:  manifest,
	})

	return &Bundle{
		ID:        DeploymentID(spec),
		Topology:  topo,
		Artifacts: artifacts,
	}, nil
}
