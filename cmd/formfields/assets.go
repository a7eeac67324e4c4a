package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields/pkg/model"
)

func newAssetsCmd(a *app) *cobra.Command {
	var kinds []string
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Print the stylesheet and script tags the HTML renderer needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newVanilla(a.cfg)
			if err != nil {
				return err
			}
			var selected []model.FieldKind
			if len(kinds) == 0 {
				selected = model.Kinds()
			}
			for _, raw := range kinds {
				kind, ok := model.ParseFieldKind(raw)
				if !ok {
					a.logger.Warn("ignoring unknown kind", "kind", raw)
					continue
				}
				selected = append(selected, kind)
			}

			stylesheets, scripts := renderer.Assets(a.cfg.Theme.RendererConfig(), selected...)
			var out strings.Builder
			for _, href := range stylesheets {
				out.WriteString(`<link rel="stylesheet" href="` + href + "\">\n")
			}
			for _, script := range scripts {
				if script.Src != "" {
					out.WriteString(`<script src="` + script.Src + "\"></script>\n")
				}
			}
			return writeOutput(cmd, a.cfg.Output, []byte(out.String()))
		},
	}
	cmd.Flags().StringSliceVar(&kinds, "kinds", nil, "field kinds to include (default all)")
	cmd.Flags().String("asset-prefix", "", "URL prefix for bundled stylesheets")
	return cmd
}
