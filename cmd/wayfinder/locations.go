package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wayfinder/internal/route"
)

func locationsCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List campus locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocations(route.LocationRole(role))
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Only valid starts (start) or destinations (destination)")
	return cmd
}

func runLocations(role route.LocationRole) error {
	ctx := context.Background()

	planner, _, done, err := plannerFor(ctx)
	if err != nil {
		return err
	}
	defer done()

	locations, err := planner.Locations(ctx, role)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		fmt.Fprintln(os.Stdout, "No locations found.")
		return nil
	}

	for _, loc := range locations {
		if len(loc.RoomNumbers) > 0 {
			fmt.Fprintf(os.Stdout, "%s  %s (%s) rooms: %s\n", loc.ID, loc.Name, loc.Type, strings.Join(loc.RoomNumbers, ", "))
			continue
		}
		fmt.Fprintf(os.Stdout, "%s  %s (%s)\n", loc.ID, loc.Name, loc.Type)
	}
	return nil
}
