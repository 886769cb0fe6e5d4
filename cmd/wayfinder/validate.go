package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wayfinder/internal/config"
	"wayfinder/internal/validate"
)

func validateCmd() *cobra.Command {
	var policyPath string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run consistency checks against the campus and floor plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(policyPath, asJSON)
		},
	}
	cmd.Flags().StringVar(&policyPath, "policy", "", "Severity policy file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func runValidate(policyPath string, asJSON bool) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var policy *config.Policy
	if policyPath != "" {
		if policy, err = config.LoadPolicy(policyPath); err != nil {
			return err
		}
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	report, err := validate.Run(ctx, repo, policy)
	if err != nil {
		return err
	}

	if asJSON {
		if err := printJSON(report); err != nil {
			return err
		}
		if report.HasErrors() {
			return fmt.Errorf("validation found errors")
		}
		return nil
	}

	var errorIssues []validate.Issue
	var warnIssues []validate.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case validate.SeverityError:
			errorIssues = append(errorIssues, issue)
		case validate.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}

	if len(errorIssues) > 0 {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

func printIssues(out io.Writer, issues []validate.Issue) {
	for _, issue := range issues {
		location := issue.Node
		switch {
		case issue.Building != "" && location != "":
			location = fmt.Sprintf("%s [%s]", issue.Node, issue.Building)
		case issue.Building != "":
			location = issue.Building
		case location == "":
			location = "campus"
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
