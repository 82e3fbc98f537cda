// Package check implements the `disco check` subcommand.
package check

import (
	"fmt"

	"github.com/discokit/disco/discovery"
)

type Cmd struct {
	Doc string `arg:"" help:"Path to the API discovery document (JSON)."`
}

func (c *Cmd) Run() error {
	doc, err := discovery.LoadFile(c.Doc)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.Doc, err)
	}

	fmt.Printf("✓ %s %s (%s)\n", doc.Name, doc.Version, doc.BaseURL)

	methods := doc.AllMethods()
	for _, ref := range methods {
		fmt.Printf("  %-6s %-40s %s\n", ref.Method.HTTPMethod, ref.Method.ID, ref.Method.Path)
	}
	fmt.Printf("✓ %d methods, all templates and patterns valid\n", len(methods))

	return nil
}
