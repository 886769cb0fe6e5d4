package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wayfinder/internal/route"
)

func batchCmd() *cobra.Command {
	var parallel int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Route every request listed in a YAML file",
		Long: `Route every request listed in a YAML file, concurrently, over one campus
snapshot. The file is a list of requests:

  - start: A
    target: { location_id: C }
  - start: B
    target: { room: "A101" }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], parallel, asJSON)
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", 4, "Maximum routes computed at once")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the outcomes as JSON")
	return cmd
}

func loadBatch(path string) ([]route.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var requests []route.Request
	if err := yaml.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	for i, req := range requests {
		if req.Start == "" {
			return nil, fmt.Errorf("request %d: start is required", i)
		}
		if req.Target.LocationID == "" && !req.Target.IsRoom() {
			return nil, fmt.Errorf("request %d: target needs location_id or room", i)
		}
	}
	return requests, nil
}

func runBatch(path string, parallel int, asJSON bool) error {
	ctx := context.Background()

	requests, err := loadBatch(path)
	if err != nil {
		return err
	}

	planner, _, done, err := plannerFor(ctx)
	if err != nil {
		return err
	}
	defer done()

	outcomes, err := planner.Batch(ctx, requests, parallel)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(outcomes)
	}

	failed := 0
	for _, o := range outcomes {
		label := fmt.Sprintf("%s -> %s", o.Request.Start, o.Request.Target)
		switch {
		case o.Err != nil:
			failed++
			fmt.Fprintf(os.Stdout, "%s: error: %v\n", label, o.Err)
		case !o.Result.Reachable:
			fmt.Fprintf(os.Stdout, "%s: unreachable\n", label)
		default:
			fmt.Fprintf(os.Stdout, "%s: %.0f m, %d min via %s\n", label, o.Result.TotalDistance, o.Result.EstimatedTime, strings.Join(o.Result.Path, " -> "))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d routes failed", failed, len(outcomes))
	}
	return nil
}
