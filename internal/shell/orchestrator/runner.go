// Package orchestrator wraps the docker compose CLI for deployment lifecycle.
// The core never inspects compose exit status; failures propagate as wrapped
// errors and abort the whole pipeline.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// =============================================================================
// Runner
// =============================================================================

// Runner drives the compose CLI for a single deployment project.
type Runner struct {
	dockerBin string
	logger    *slog.Logger
}

// NewRunner creates a runner that invokes dockerBin (default "docker").
func NewRunner(dockerBin string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if dockerBin == "" {
		dockerBin = "docker"
	}
	return &Runner{
		dockerBin: dockerBin,
		logger:    logger,
	}
}

// Teardown destroys the previous deployment under the same project name,
// volumes included. Destructive and non-reversible: any data the previous
// cluster held is gone afterward.
func (r *Runner) Teardown(ctx context.Context, project, manifestPath string) error {
	r.logger.Warn("tearing down previous deployment, volumes included",
		"project", project,
	)
	return r.compose(ctx, project, manifestPath, "down", "--volumes", "--remove-orphans")
}

// Up starts the deployment described by the manifest.
func (r *Runner) Up(ctx context.Context, project, manifestPath string, detach bool) error {
	args := []string{"up"}
	if detach {
		args = append(args, "--detach")
	}
	return r.compose(ctx, project, manifestPath, args...)
}

// Redeploy is the explicit teardown-then-startup operation: whatever ran under
// this project name before is destroyed, then the new topology starts.
func (r *Runner) Redeploy(ctx context.Context, project, manifestPath string, detach bool) error {
	if err := r.Teardown(ctx, project, manifestPath); err != nil {
		return err
	}
	return r.Up(ctx, project, manifestPath, detach)
}

// compose runs a single compose subcommand, streaming output to the caller's
// terminal.
func (r *Runner) compose(ctx context.Context, project, manifestPath string, args ...string) error {
	full := append([]string{"compose", "-p", project, "-f", manifestPath}, args...)

	r.logger.Debug("running compose",
		"command", r.dockerBin+" "+strings.Join(full, " "),
	)

	cmd := exec.CommandContext(ctx, r.dockerBin, full...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("compose %s failed for project %s: %w", args[0], project, err)
	}
	return nil
}
