// Package gen implements the `disco gen` subcommand.
package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/discokit/disco/discogen"
	"github.com/discokit/disco/discovery"
)

type Cmd struct {
	Doc      string `arg:"" help:"Path to the API discovery document (JSON)."`
	Out      string `arg:"" help:"Output directory for the generated package."`
	Package  string `help:"Generated package name (default: document name)." short:"p"`
	NoFormat bool   `help:"Skip gofmt/goimports on the generated source."`
	Watch    bool   `help:"Watch the document and regenerate on change." short:"w"`
}

func (c *Cmd) Run() error {
	outDir, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	cfg := &discogen.Config{
		OutDir:     outDir,
		Package:    c.Package,
		SkipFormat: c.NoFormat,
	}

	if err := generate(c.Doc, cfg); err != nil {
		if !c.Watch {
			return err
		}
		// In watch mode an initial failure is not fatal; the next save
		// may fix the document.
		slog.Error("generation failed", "doc", c.Doc, "error", err)
	}

	if !c.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watch(ctx, c.Doc, cfg)
}

func generate(docPath string, cfg *discogen.Config) error {
	doc, err := discovery.LoadFile(docPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", docPath, err)
	}
	if err := discogen.Generate(doc, cfg); err != nil {
		return err
	}
	slog.Info("generated client package",
		"api", doc.Name,
		"version", doc.Version,
		"out", cfg.OutDir)
	return nil
}

// watch regenerates the client whenever the document changes. The
// containing directory is watched rather than the file itself because
// most editors replace files on save, which drops a file-level watch.
func watch(ctx context.Context, docPath string, cfg *discogen.Config) error {
	absDoc, err := filepath.Abs(docPath)
	if err != nil {
		return fmt.Errorf("resolve document path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absDoc)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absDoc), err)
	}
	slog.Info("watching for changes", "doc", absDoc)

	// Debounce bursts of events from a single save.
	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			slog.Info("watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absDoc {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(200 * time.Millisecond)
			} else {
				timer.Reset(200 * time.Millisecond)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if err := generate(docPath, cfg); err != nil {
				slog.Error("generation failed", "doc", docPath, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}
