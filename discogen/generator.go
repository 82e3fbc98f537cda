package discogen

import (
	"context"
	"fmt"

	"golang.org/x/tools/imports"

	"github.com/discokit/disco/discogen/golang"
	"github.com/discokit/disco/discogen/sink"
	"github.com/discokit/disco/discovery"
)

// Generate emits the client package for doc into cfg.OutDir.
// The output is a single file named "<package>.gen.go".
func Generate(doc *discovery.Document, cfg *Config) error {
	if cfg.OutDir == "" {
		return fmt.Errorf("OutDir is required")
	}
	out := sink.NewFilesystemSink(cfg.OutDir)
	return GenerateTo(context.Background(), doc, cfg, out)
}

// GenerateTo emits the client package for doc into an arbitrary sink.
func GenerateTo(ctx context.Context, doc *discovery.Document, cfg *Config, out sink.OutputSink) error {
	if doc == nil {
		return fmt.Errorf("document is required")
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	cfg = applyConfigDefaults(cfg, doc)

	src, err := golang.Emit(doc, golang.Options{
		Package:       cfg.Package,
		RuntimeImport: cfg.RuntimeImport,
	})
	if err != nil {
		return fmt.Errorf("emit client for %s: %w", doc.Name, err)
	}

	filename := cfg.Package + ".gen.go"
	if !cfg.SkipFormat {
		formatted, err := imports.Process(filename, src, nil)
		if err != nil {
			// The emitter produced syntactically invalid Go; the raw
			// source is the only useful diagnostic.
			return fmt.Errorf("format generated source: %w", err)
		}
		src = formatted
	}

	if err := out.WriteFile(ctx, filename, src); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
