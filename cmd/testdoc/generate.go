package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/specvital/testdoc/pkg/config"
	"github.com/specvital/testdoc/pkg/docmodel"
	"github.com/specvital/testdoc/pkg/domain"
	"github.com/specvital/testdoc/pkg/naming"
	"github.com/specvital/testdoc/pkg/records"
)

type generateFlags struct {
	inputs []string
	output string
	root   string
}

func newGenerateCmd(global *globalFlags) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the documentation model from hand-off records",
		Long: `Reads the method records written by a source parser, applies the configured
filters and writes the documentation model as JSON.

Examples:
  testdoc generate --root build --input "testdoc/**/*.yaml"
  testdoc generate --config ci/testdoc.yaml --output docs/model.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGenerate(cmd, global, flags)
			if err != nil {
				_, _ = errorColor.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&flags.inputs, "input", "i", nil, "glob of hand-off files relative to --root (repeatable)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&flags.root, "root", ".", "directory inputs are resolved against")

	return cmd
}

func runGenerate(cmd *cobra.Command, global *globalFlags, flags *generateFlags) error {
	zl, err := newLogger(global.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := zl.Sugar()

	cfg, err := loadConfig(global.configFile, flags.root)
	if err != nil {
		return err
	}

	inputs := cfg.Inputs
	if len(flags.inputs) > 0 {
		inputs = flags.inputs
	}

	loaded, err := records.Load(os.DirFS(flags.root), inputs)
	if err != nil {
		return err
	}
	logger.Debugw("loaded records",
		"files", len(loaded.Files),
		"classes", len(loaded.Classes),
		"methods", loaded.CountMethods(),
	)

	built, err := cfg.Build(logger)
	if err != nil {
		return err
	}

	cache, err := naming.NewCache(naming.DefaultCacheSize)
	if err != nil {
		return err
	}

	assembler := docmodel.New(built,
		docmodel.WithDecomposer(cache),
		docmodel.WithLogger(logger),
		docmodel.WithWorkers(cfg.Workers),
	)

	model, err := assembler.Assemble(cmd.Context(), loaded.Classes)
	if err != nil {
		return err
	}

	if err := writeModel(cmd.OutOrStdout(), flags.output, model); err != nil {
		return err
	}

	printSummary(cmd.ErrOrStderr(), loaded, model)
	return nil
}

func loadConfig(file, root string) (*config.Config, error) {
	if file != "" {
		return config.Load(config.WithFile(file))
	}
	return config.Load(config.WithSearchPath(root))
}

func writeModel(stdout io.Writer, path string, model *domain.DocumentModel) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func printSummary(w io.Writer, loaded *records.Result, model *domain.DocumentModel) {
	_, _ = successColor.Fprintf(w, "Documented %d methods in %d classes", model.TotalMethods, len(model.Classes))
	_, _ = infoColor.Fprintf(w, " (%d files, %d records read)\n", len(loaded.Files), loaded.CountMethods())
}
