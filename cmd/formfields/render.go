package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
)

type renderFlags struct {
	openapi  string
	values   string
	errors   string
	method   string
	csrf     string
	renderer string
	fragment bool
}

func newRenderCmd(a *app) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render a definition as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, flags, args[0])
		},
	}
	cmd.Flags().StringVar(&flags.openapi, "openapi", "", "treat the input as OpenAPI and render this schema or operationId")
	cmd.Flags().StringVar(&flags.values, "values", "", "JSON or YAML file with field values")
	cmd.Flags().StringVar(&flags.errors, "errors", "", "JSON or YAML file with a server error payload")
	cmd.Flags().StringVar(&flags.method, "method", "", "form method (overrides the definition)")
	cmd.Flags().StringVar(&flags.csrf, "csrf", "", "CSRF token emitted as a hidden _csrf input")
	cmd.Flags().StringVar(&flags.renderer, "renderer", "vanilla", "renderer name")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "emit field markup only")
	cmd.Flags().String("templates", "", "template directory overriding the embedded templates")
	cmd.Flags().String("asset-prefix", "", "URL prefix for bundled stylesheets")
	cmd.Flags().String("theme", "", "theme name")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, flags *renderFlags, path string) error {
	ctx := cmd.Context()
	def, err := loadDefinition(ctx, path, flags.openapi)
	if err != nil {
		return err
	}
	values, err := readValues(flags.values)
	if err != nil {
		return err
	}
	payload, err := readErrors(flags.errors)
	if err != nil {
		return err
	}

	mapping := render.MapErrorPayload(def.Names(), payload)
	host := form.NewHost(form.WithValues(values), form.WithErrors(mapping.Fields), form.WithHostLogger(a.logger))
	built, err := form.Build(def, host, formOptions(def, a.logger)...)
	if err != nil {
		return err
	}
	defer built.Close()

	registry, err := newRendererRegistry(a.cfg)
	if err != nil {
		return err
	}
	renderer, err := registry.Get(flags.renderer)
	if err != nil {
		return err
	}

	opts := render.RenderOptions{
		Method:     flags.method,
		FormErrors: mapping.Form,
		Theme:      a.cfg.Theme.RendererConfig(),
		Fragment:   flags.fragment,
	}
	if flags.csrf != "" {
		opts.Hidden = render.MergeHiddenFields(nil, render.CSRFToken("_csrf", flags.csrf))
	}

	a.logger.Debug("rendering form", "definition", def.ID, "renderer", renderer.Name(), "fields", len(def.Fields))
	output, err := renderer.Render(ctx, built.RenderView(), opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", def.ID, err)
	}
	return writeOutput(cmd, a.cfg.Output, output)
}

func newVanilla(cfg *Config) (*vanilla.Renderer, error) {
	var options []vanilla.Option
	if cfg.Templates != "" {
		options = append(options, vanilla.WithTemplatesDir(cfg.Templates))
	}
	if cfg.AssetPrefix != "" {
		options = append(options, vanilla.WithAssetPrefix(cfg.AssetPrefix))
	}
	return vanilla.New(options...)
}

func newRendererRegistry(cfg *Config) (*render.Registry, error) {
	html, err := newVanilla(cfg)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(html)
}
