package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wayfinder/internal/route"
)

func routeCmd() *cobra.Command {
	var room string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "route <start> [end]",
		Short: "Walking route between two campus locations",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := route.ToRoom(room)
			if room == "" {
				if len(args) < 2 {
					return fmt.Errorf("an end location or --room is required")
				}
				target = route.ToLocation(args[1])
			}
			return runRoute(args[0], target, asJSON)
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "Route to the location hosting this room number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the route as JSON")
	return cmd
}

func runRoute(startID string, target route.Target, asJSON bool) error {
	ctx := context.Background()

	planner, _, done, err := plannerFor(ctx)
	if err != nil {
		return err
	}
	defer done()

	res, err := planner.Outdoor(ctx, startID, target)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(res)
	}
	printResult(os.Stdout, res)
	return nil
}

func printResult(out io.Writer, res *route.Result) {
	if !res.Reachable {
		fmt.Fprintln(out, "No route found.")
		return
	}
	if res.Partial {
		fmt.Fprintln(out, "Partial route: a stairwell or elevator does not reach every floor.")
	}
	fmt.Fprintf(out, "Route: %s\n", strings.Join(res.Path, " -> "))
	fmt.Fprintf(out, "Distance: %.0f m (about %d min)\n", res.TotalDistance, res.EstimatedTime)
	if len(res.Directions) > 0 {
		fmt.Fprintln(out, "\nDirections:")
		for i, d := range res.Directions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, d)
		}
	}
	if len(res.Facilities) > 0 {
		fmt.Fprintln(out, "\nOn the way:")
		for _, f := range res.Facilities {
			if f.Description != "" {
				fmt.Fprintf(out, "  - %s near %s: %s\n", f.Name, f.Location, f.Description)
				continue
			}
			fmt.Fprintf(out, "  - %s near %s\n", f.Name, f.Location)
		}
	}
}

func printJSON(v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}
