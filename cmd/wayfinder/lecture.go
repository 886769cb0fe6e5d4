package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func lectureCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "lecture <lecture-id> <start>",
		Short: "Route from a campus location to a lecture's room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLecture(args[0], args[1], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the route as JSON")
	return cmd
}

func runLecture(lectureID, startID string, asJSON bool) error {
	ctx := context.Background()

	planner, _, done, err := plannerFor(ctx)
	if err != nil {
		return err
	}
	defer done()

	lr, err := planner.Lecture(ctx, lectureID, startID)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(lr)
	}

	fmt.Fprintf(os.Stdout, "%s: room %s in %s\n\n", lectureTitle(lr.Lecture.SubjectName, lr.Lecture.LectureName, lr.Lecture.ID), lr.Lecture.RoomNumber, lr.Location.Name)
	printResult(os.Stdout, lr.Outdoor)
	if lr.Indoor != nil {
		fmt.Fprintf(os.Stdout, "\nInside %s:\n", lr.Location.Name)
		printResult(os.Stdout, lr.Indoor)
	}
	if lr.IndoorError != "" {
		fmt.Fprintf(os.Stdout, "\nNo route inside %s: %s\n", lr.Location.Name, lr.IndoorError)
	}
	return nil
}

func lectureTitle(subject, name, id string) string {
	switch {
	case subject != "" && name != "":
		return subject + " " + name
	case subject != "":
		return subject
	case name != "":
		return name
	}
	return id
}
