package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubecarto/kubecarto/internal/render"
	"github.com/kubecarto/kubecarto/pkg/manifest"
	"github.com/kubecarto/kubecarto/pkg/resource"
	"github.com/kubecarto/kubecarto/pkg/topology"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate PlantUML diagrams from a manifest source",
	Example: `  kubecarto generate --json cluster-dump.json
  kubecarto generate --yaml rendered-chart.yaml --outdir diagrams
  kubecarto generate --dir ./manifests --include-pods`,
	RunE: runGenerate,
}

func init() {
	flags := generateCmd.Flags()
	flags.String("json", "", "kubectl get ... -o json dump")
	flags.String("yaml", "", "multi-document manifest file (helm template output)")
	flags.String("dir", "", "directory with yaml manifests")
	flags.String("cue", "", "CUE file or package directory")
	flags.String("outdir", "diagrams", "output folder")
	flags.Bool("include-pods", false, "expand pods in the low-level view")
	flags.Bool("debug", false, "enable debug logging")

	generateCmd.MarkFlagsOneRequired("json", "yaml", "dir", "cue")
	generateCmd.MarkFlagsMutuallyExclusive("json", "yaml", "dir", "cue")

	viper.SetEnvPrefix("KUBECARTO")
	viper.AutomaticEnv()
	for _, name := range []string{"json", "yaml", "dir", "cue", "outdir", "include-pods", "debug"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", name, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	opts := manifest.Options{
		JSONPath: viper.GetString("json"),
		YAMLPath: viper.GetString("yaml"),
		DirPath:  viper.GetString("dir"),
		CUEPath:  viper.GetString("cue"),
	}

	objs, err := manifest.Load(opts)
	if err != nil {
		return fmt.Errorf("failed to load manifests: %w", err)
	}

	set := resource.BuildSet(objs)
	logger.Info("loaded resources",
		zap.Int("documents", len(objs)),
		zap.Int("accepted", set.Len()),
		zap.Int("workloads", len(set.Workloads)),
		zap.Int("services", len(set.Services)),
		zap.Int("ingresses", len(set.Ingresses)),
		zap.Int("pods", len(set.Pods)))

	g := topology.Resolve(set)
	logger.Info("resolved relationships",
		zap.Int("service_backends", len(g.ServiceBackends())),
		zap.Int("ingress_routes", len(g.IngressRoutes())),
		zap.Int("pod_ownerships", len(g.PodOwnerships())),
		zap.String("graph_hash", g.Hash()))

	renderer := &render.Renderer{
		OutDir:      viper.GetString("outdir"),
		IncludePods: viper.GetBool("include-pods"),
	}
	paths, err := renderer.Render(g)
	if err != nil {
		return fmt.Errorf("failed to render diagrams: %w", err)
	}

	for _, path := range paths {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}

// newLogger builds the CLI logger. Libraries stay silent; only the command
// layer logs.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
