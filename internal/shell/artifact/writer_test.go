package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/ndbup/internal/core/deployment"
	"github.com/artpar/ndbup/internal/core/topology"
)

// =============================================================================
// Test Fixtures
// =============================================================================

func testBundle(t *testing.T) *deployment.Bundle {
	t.Helper()
	bundle, err := deployment.Generate(topology.ClusterSpec{
		MgmCount:          1,
		DataCount:         2,
		ReplicationFactor: 2,
		MySQLCount:        1,
		Version:           "8.0.34",
	}, "mysql/mysql-cluster:8.0.34")
	require.NoError(t, err)
	return bundle
}

// =============================================================================
// Writer Tests
// =============================================================================

func TestWriter_WritesEveryArtifact(t *testing.T) {
	baseDir := t.TempDir()
	bundle := testBundle(t)

	dir, err := NewWriter(baseDir, nil).Write(bundle)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(baseDir, bundle.ID), dir)

	for _, a := range bundle.Artifacts {
		content, err := os.ReadFile(filepath.Join(dir, a.FileName))
		require.NoError(t, err, "missing artifact %s", a.Kind)
		assert.Equal(t, a.Content, string(content))
	}
}

func TestWriter_WritesNothingElse(t *testing.T) {
	baseDir := t.TempDir()
	bundle := testBundle(t)

	dir, err := NewWriter(baseDir, nil).Write(bundle)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(bundle.Artifacts))
}

func TestWriter_RewriteIsIdempotent(t *testing.T) {
	baseDir := t.TempDir()
	bundle := testBundle(t)
	w := NewWriter(baseDir, nil)

	dir, err := w.Write(bundle)
	require.NoError(t, err)
	again, err := w.Write(bundle)
	require.NoError(t, err)

	assert.Equal(t, dir, again)
	for _, a := range bundle.Artifacts {
		content, err := os.ReadFile(filepath.Join(dir, a.FileName))
		require.NoError(t, err)
		assert.Equal(t, a.Content, string(content))
	}
}

func TestWriter_DistinctTopologiesGetDistinctDirs(t *testing.T) {
	baseDir := t.TempDir()
	w := NewWriter(baseDir, nil)

	first := testBundle(t)
	second, err := deployment.Generate(topology.ClusterSpec{
		MgmCount:          2,
		DataCount:         2,
		ReplicationFactor: 2,
		Version:           "8.0.34",
	}, "mysql/mysql-cluster:8.0.34")
	require.NoError(t, err)

	firstDir, err := w.Write(first)
	require.NoError(t, err)
	secondDir, err := w.Write(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstDir, secondDir)
}
