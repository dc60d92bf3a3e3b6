// Package image wraps the container image build step. Both version strings
// pass through to the build uninterpreted.
package image

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// =============================================================================
// Builder
// =============================================================================

// Builder builds the cluster image via the docker CLI.
type Builder struct {
	dockerBin string
	logger    *slog.Logger
}

// NewBuilder creates a builder that invokes dockerBin (default "docker").
func NewBuilder(dockerBin string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if dockerBin == "" {
		dockerBin = "docker"
	}
	return &Builder{
		dockerBin: dockerBin,
		logger:    logger,
	}
}

// Build builds buildContext into tag, handing the cluster software version and
// glibc version through as build args.
func (b *Builder) Build(ctx context.Context, buildContext, tag, version, glibcVersion string) error {
	args := []string{
		"build",
		"-t", tag,
		"--build-arg", "CLUSTER_VERSION=" + version,
		"--build-arg", "GLIBC_VERSION=" + glibcVersion,
		buildContext,
	}

	b.logger.Info("building cluster image",
		"tag", tag,
		"version", version,
		"glibc", glibcVersion,
	)

	cmd := exec.CommandContext(ctx, b.dockerBin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("image build failed for %s: %w", tag, err)
	}
	return nil
}
