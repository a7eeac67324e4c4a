package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/definition"
)

type app struct {
	configPath string
	cfg        *Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "formfields",
		Short:         "Render and fill form definitions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./formfields.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringP("output", "o", "", "output file (stdout if empty)")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newPromptCmd(a))
	root.AddCommand(newAssetsCmd(a))
	root.AddCommand(newLintCmd(a))
	return root
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// loadDefinition reads a definition file, or converts an OpenAPI document
// when target names a schema or operation.
func loadDefinition(ctx context.Context, path, target string) (definition.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return definition.Definition{}, fmt.Errorf("read definition: %w", err)
	}
	if target != "" {
		return definition.FromOpenAPI(ctx, data, target)
	}
	return definition.Parse(data, path)
}

// readValues decodes a YAML or JSON object. YAML is a superset of JSON, so
// one decoder serves both.
func readValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// readErrors decodes a server error payload: field (or form) keys mapped to
// one or more messages, optionally wrapped in an "errors" object.
func readErrors(path string) (map[string][]string, error) {
	raw, err := readValues(path)
	if err != nil || raw == nil {
		return nil, err
	}
	if inner, ok := raw["errors"].(map[string]any); ok && len(raw) == 1 {
		raw = inner
	}
	out := make(map[string][]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			out[key] = []string{v}
		case []any:
			for _, item := range v {
				out[key] = append(out[key], fmt.Sprint(item))
			}
		default:
			out[key] = []string{fmt.Sprint(v)}
		}
	}
	return out, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", path)
	return nil
}
