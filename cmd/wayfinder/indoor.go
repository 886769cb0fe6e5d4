package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"wayfinder/internal/route"
)

func indoorCmd() *cobra.Command {
	var req route.IndoorRequest
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "indoor <building> <start-room> <end-room>",
		Short: "Route between two rooms of a building",
		Long:  "Route between two rooms of a building. Use \"entrance\" as a room to start or end at the floor's entrance.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.StartRoom = args[1]
			req.EndRoom = args[2]
			return runIndoor(args[0], req, asJSON)
		},
	}
	cmd.Flags().IntVar(&req.StartFloor, "start-floor", 0, "Floor of the start room")
	cmd.Flags().IntVar(&req.EndFloor, "end-floor", 0, "Floor of the end room")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the route as JSON")
	return cmd
}

func runIndoor(buildingID string, req route.IndoorRequest, asJSON bool) error {
	ctx := context.Background()

	planner, _, done, err := plannerFor(ctx)
	if err != nil {
		return err
	}
	defer done()

	res, err := planner.Indoor(ctx, buildingID, req)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(res)
	}
	printResult(os.Stdout, res)
	return nil
}
