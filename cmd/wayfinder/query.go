package main

import "github.com/spf13/cobra"

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the database from the CLI",
	}
	cmd.AddCommand(querySQLCmd())
	cmd.AddCommand(queryBuildingsCmd())
	return cmd
}
