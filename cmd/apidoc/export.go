package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vitalvas/apidoc/internal/config"
	"github.com/vitalvas/apidoc/internal/petstore"
	"github.com/vitalvas/apidoc/openapi"
)

// Export formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	exportFormat string
	exportOutput string
)

// buildDocument documents the API routes on a router that is never served
// and assembles the result.
func buildDocument(cfg *config.Config, logger zerolog.Logger) (*openapi.Document, error) {
	store := openapi.NewStore(openapi.WithLogger(logger))
	if err := petstore.New(petstore.NewRepository()).MountChi(chi.NewRouter(), store); err != nil {
		return nil, fmt.Errorf("failed to document routes: %w", err)
	}
	return store.Assemble(petstore.Shell(cfg.Docs.Title), openapi.WithSchemas(petstore.Schemas())), nil
}

func encodeDocument(doc *openapi.Document, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		return openapi.MarshalJSON(doc)
	case formatYAML:
		return openapi.MarshalYAML(doc)
	}
	return nil, fmt.Errorf("unsupported format %q, want %s or %s", format, formatJSON, formatYAML)
}

func writeDocument(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := w.Write([]byte{'\n'})
		return err
	}
	return nil
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the assembled OpenAPI document as JSON or YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Log, os.Stderr)

		doc, err := buildDocument(cfg, logger)
		if err != nil {
			return err
		}
		data, err := encodeDocument(doc, exportFormat)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			return writeDocument(cmd.OutOrStdout(), data)
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := writeDocument(f, data); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		logger.Info().Str("path", exportOutput).Str("format", exportFormat).Int("paths", doc.Paths.Len()).Msg("document exported")
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Assemble the OpenAPI document and check it against the OpenAPI 3.0 rules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Log, os.Stderr)

		doc, err := buildDocument(cfg, logger)
		if err != nil {
			return err
		}
		if err := openapi.Validate(cmd.Context(), doc); err != nil {
			return err
		}

		logger.Info().Int("paths", doc.Paths.Len()).Msg("document is valid")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatJSON, "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")

	rootCmd.AddCommand(exportCmd, validateCmd)
}
