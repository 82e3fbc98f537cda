// Package discogen generates Go client packages from API discovery
// documents. The generated code builds calls through the disco runtime.
package discogen

import (
	"strings"

	"github.com/discokit/disco/discovery"
)

// Config holds the configuration for code generation.
type Config struct {
	// OutDir is the directory where the generated file is written.
	OutDir string

	// Package is the name of the generated package.
	// Defaults to the document name.
	Package string

	// RuntimeImport overrides the import path of the disco runtime.
	// Useful only for tests and vendored setups.
	RuntimeImport string

	// SkipFormat leaves the emitted source unformatted.
	// Generation fails if formatting fails, so this is mainly useful to
	// inspect emitter output while debugging.
	SkipFormat bool
}

// Generator provides a fluent API for code generation.
// Create with FromDocument and configure with method chaining.
//
// Example:
//
//	discogen.FromDocument(doc).
//	    Package("zoo").
//	    ToDir("./zoo")
type Generator struct {
	doc *discovery.Document
	cfg Config
}

// FromDocument creates a new Generator for the given document.
func FromDocument(doc *discovery.Document) *Generator {
	return &Generator{doc: doc}
}

// Package sets the generated package name.
func (g *Generator) Package(name string) *Generator {
	g.cfg.Package = name
	return g
}

// WithoutFormatting disables gofmt/goimports on the emitted source.
func (g *Generator) WithoutFormatting() *Generator {
	g.cfg.SkipFormat = true
	return g
}

// ToDir generates the client package into the given directory.
func (g *Generator) ToDir(dir string) error {
	cfg := g.cfg
	cfg.OutDir = dir
	return Generate(g.doc, &cfg)
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config, doc *discovery.Document) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Package == "" {
		result.Package = packageName(doc.Name)
	}
	if result.RuntimeImport == "" {
		result.RuntimeImport = "github.com/discokit/disco"
	}
	return &result
}

// packageName lowers a document name into a plausible Go package name.
func packageName(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 || b.String()[0] >= '0' && b.String()[0] <= '9' {
		return "api" + b.String()
	}
	return b.String()
}
