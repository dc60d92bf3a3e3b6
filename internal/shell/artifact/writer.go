// Package artifact persists rendered deployment artifacts to the filesystem.
// It is part of the imperative shell: the core renders, this package writes.
package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/artpar/ndbup/internal/core/deployment"
)

// =============================================================================
// Writer
// =============================================================================

// Writer persists artifact bundles under a base directory. Each bundle goes
// into its own deployment directory named by the bundle ID, so distinct
// topologies never collide on disk.
type Writer struct {
	baseDir string
	logger  *slog.Logger
}

// NewWriter creates a new writer rooted at baseDir.
func NewWriter(baseDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if baseDir == "" {
		baseDir = "./deployments"
	}
	return &Writer{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Write persists every artifact of the bundle under {baseDir}/{bundle.ID} and
// returns the deployment directory. Re-running with an identical bundle
// rewrites identical content.
func (w *Writer) Write(bundle *deployment.Bundle) (string, error) {
	// Run ID correlates this write across log lines.
	runID := uuid.New().String()

	dir := filepath.Join(w.baseDir, bundle.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create deployment directory: %w", err)
	}

	w.logger.Info("writing deployment artifacts",
		"run_id", runID,
		"deployment_id", bundle.ID,
		"dir", dir,
		"artifacts", len(bundle.Artifacts),
	)

	for _, a := range bundle.Artifacts {
		path := filepath.Join(dir, a.FileName)
		if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
			return "", fmt.Errorf("write %s artifact: %w", a.Kind, err)
		}
		w.logger.Debug("wrote artifact",
			"run_id", runID,
			"kind", a.Kind,
			"path", path,
			"bytes", len(a.Content),
		)
	}

	return dir, nil
}
