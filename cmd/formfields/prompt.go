package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var openapi, values string
	cmd := &cobra.Command{
		Use:   "prompt <definition>",
		Short: "Fill a definition in the terminal and print the values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			def, err := loadDefinition(ctx, args[0], openapi)
			if err != nil {
				return err
			}
			prefill, err := readValues(values)
			if err != nil {
				return err
			}
			format, ok := tui.ParseOutputFormat(a.cfg.Format)
			if !ok {
				return fmt.Errorf("unknown output format %q", a.cfg.Format)
			}

			session := tui.New(
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithOutputFormat(format),
				tui.WithValues(prefill),
				tui.WithFormOptions(formOptions(def, a.logger)...),
				tui.WithMaxAttempts(a.cfg.MaxAttempts),
				tui.WithLogger(a.logger),
			)
			output, err := session.Run(ctx, def)
			if err != nil {
				return err
			}
			return writeOutput(cmd, a.cfg.Output, append(output, '\n'))
		},
	}
	cmd.Flags().StringVar(&openapi, "openapi", "", "treat the input as OpenAPI and prompt this schema or operationId")
	cmd.Flags().StringVar(&values, "values", "", "JSON or YAML file with initial values")
	cmd.Flags().String("format", "", "output format: json, form, pretty")
	cmd.Flags().Int("max-attempts", 0, "re-prompt an invalid field at most this many times (0 = unbounded)")
	return cmd
}
