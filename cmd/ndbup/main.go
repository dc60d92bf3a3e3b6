package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/artpar/ndbup/internal/core/compose"
	"github.com/artpar/ndbup/internal/core/deployment"
	"github.com/artpar/ndbup/internal/core/topology"
	"github.com/artpar/ndbup/internal/shell/artifact"
	"github.com/artpar/ndbup/internal/shell/image"
	"github.com/artpar/ndbup/internal/shell/orchestrator"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitValidationError = 1
	ExitWriteError      = 2
	ExitDockerError     = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	clusterVersion := flag.String("cluster-version", "latest", "Cluster software version (image tag)")
	glibcVersion := flag.String("glibc", "", "glibc version passed through to the image build")
	mgmNodes := flag.Int("mgm-nodes", 1, "Number of management nodes")
	dataNodes := flag.Int("data-nodes", 1, "Number of data nodes")
	replicationFactor := flag.Int("replication-factor", 1, "Data node replicas per node group")
	mysqlNodes := flag.Int("mysql-nodes", 0, "Number of SQL gateway nodes")
	apiNodes := flag.Int("api-nodes", 0, "Number of API nodes")
	buildImage := flag.Bool("build", false, "Build the cluster image before deploying")
	detach := flag.Bool("detach", false, "Start the deployment in the background")
	dryRun := flag.Bool("dry-run", false, "Write artifacts only, skip image build and deployment")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("ndbup %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	// Load configuration
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitValidationError
	}

	// Setup logger
	logger := SetupLogger(cfg)

	spec := topology.ClusterSpec{
		MgmCount:          *mgmNodes,
		DataCount:         *dataNodes,
		ReplicationFactor: *replicationFactor,
		MySQLCount:        *mysqlNodes,
		APICount:          *apiNodes,
		Version:           *clusterVersion,
	}
	imageTag := cfg.Image.Repository + ":" + *clusterVersion

	logger.Info("planning cluster deployment",
		"version", Version,
		"mgm_nodes", spec.MgmCount,
		"data_nodes", spec.DataCount,
		"replication_factor", spec.ReplicationFactor,
		"mysql_nodes", spec.MySQLCount,
		"api_nodes", spec.APICount,
		"image", imageTag,
	)

	// Plan and render. Nothing is written unless the whole bundle succeeds.
	bundle, err := deployment.Generate(spec, imageTag)
	if err != nil {
		logger.Error("invalid cluster spec", "error", err)
		return ExitValidationError
	}

	writer := artifact.NewWriter(cfg.Work.Dir, logger)
	dir, err := writer.Write(bundle)
	if err != nil {
		logger.Error("failed to write artifacts", "error", err)
		return ExitWriteError
	}
	logger.Info("artifacts written", "deployment_id", bundle.ID, "dir", dir)

	if *dryRun {
		logger.Info("dry run, skipping image build and deployment")
		return ExitSuccess
	}

	ctx := context.Background()

	if *buildImage {
		builder := image.NewBuilder(cfg.Docker.Bin, logger)
		if err := builder.Build(ctx, cfg.Image.BuildContext, imageTag, *clusterVersion, *glibcVersion); err != nil {
			logger.Error("image build failed", "error", err)
			return ExitDockerError
		}
	}

	runner := orchestrator.NewRunner(cfg.Docker.Bin, logger)
	manifestPath := filepath.Join(dir, compose.ManifestFileName)
	if err := runner.Redeploy(ctx, bundle.ID, manifestPath, *detach); err != nil {
		logger.Error("deployment failed", "error", err)
		return ExitDockerError
	}

	logger.Info("deployment started", "deployment_id", bundle.ID)
	return ExitSuccess
}
