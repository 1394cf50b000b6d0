// Package cli wires the kubecarto command-line interface: flag parsing,
// configuration and logging around the load/resolve/render pipeline.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kubecarto",
	Short: "Diagram Kubernetes resource relationships from static manifests",
	Long: `kubecarto reads Kubernetes resource descriptions from a JSON API dump,
a multi-document manifest, a directory of manifests or a CUE package,
resolves which workloads back which Services, which Services each Ingress
routes to and which Pods belong to which workload, and renders the result
as PlantUML diagrams at three levels of detail.

It never talks to a cluster; resolution runs over the given files only.`,
	Version: "0.2.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
