package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields/pkg/definition"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <openapi>...",
		Short: "Report unsupported x-formfields hints in OpenAPI documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				issues, err := definition.LintOpenAPI(cmd.Context(), data)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				for _, issue := range issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, issue)
				}
				a.logger.Debug("linted document", "path", path, "issues", len(issues))
				total += len(issues)
			}
			if total > 0 {
				return fmt.Errorf("%d unsupported hint(s) found", total)
			}
			return nil
		},
	}
}
