package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func queryBuildingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildings",
		Short: "List buildings with floor plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryBuildings()
		},
	}
	return cmd
}

func runQueryBuildings() error {
	ctx := context.Background()

	_, repo, done, err := plannerFor(ctx)
	if err != nil {
		return err
	}
	defer done()

	buildings, err := repo.ListBuildings(ctx)
	if err != nil {
		return err
	}
	if len(buildings) == 0 {
		fmt.Fprintln(os.Stdout, "No buildings found.")
		return nil
	}

	for _, b := range buildings {
		fmt.Fprintf(os.Stdout, "%s (%s) floors: %d points: %d [%s]\n", b.ID, b.Name, b.Floors, b.Points, b.SourceFile)
	}
	return nil
}
