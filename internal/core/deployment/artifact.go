package deployment

// =============================================================================
// Rendered Artifacts
// =============================================================================

// ArtifactKind identifies which consumer a rendered artifact is for.
type ArtifactKind string

const (
	ArtifactClusterConfig ArtifactKind = "cluster-config"
	ArtifactClientConfig  ArtifactKind = "client-config"
	ArtifactManifest      ArtifactKind = "manifest"
)

// RenderedArtifact is one text artifact of a generation run. Produced once,
// never mutated.
type RenderedArtifact struct {
	Kind ArtifactKind `json:"kind"`

	// FileName is the artifact's name inside the deployment directory.
	FileName string `json:"file_name"`

	Content string `json:"content"`
}
