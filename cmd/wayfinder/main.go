package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath    string
	snapshotFiles []string
)

func main() {
	root := &cobra.Command{
		Use:          "wayfinder",
		Short:        "Campus wayfinding: outdoor, indoor and lecture routes",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "wayfinder.yaml", "Project config file")
	root.PersistentFlags().StringSliceVar(&snapshotFiles, "files", nil, "Route straight from snapshot files or directories instead of the database")

	root.AddCommand(initCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(routeCmd())
	root.AddCommand(indoorCmd())
	root.AddCommand(lectureCmd())
	root.AddCommand(locationsCmd())
	root.AddCommand(batchCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(httpCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
