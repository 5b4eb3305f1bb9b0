package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/watcher"
)

// Subdirectories files are moved into after an import attempt.
const (
	processedDirName = "processed"
	failedDirName    = "failed"
)

// DropImporter feeds files from the watched drop directory into the import
// service. Each file is imported once and then moved out of the drop
// directory so it is never picked up again.
type DropImporter struct {
	imports *ImportService
	watch   *watcher.Watcher
	logger  *logger.Logger
}

// NewDropImporter creates a drop importer.
func NewDropImporter(imports *ImportService, watch *watcher.Watcher, log *logger.Logger) *DropImporter {
	return &DropImporter{
		imports: imports,
		watch:   watch,
		logger:  log.WithComponent("drop-importer"),
	}
}

// Run consumes watcher events until the context is canceled. The watcher
// itself is started by the caller.
func (d *DropImporter) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.watch.Events():
			if !ok {
				return
			}
			d.handle(ctx, event)
		case err, ok := <-d.watch.Errors():
			if !ok {
				return
			}
			d.logger.WithError(err).Error("drop directory watch error")
		}
	}
}

// handle imports one dropped file and files it under processed/ or failed/.
func (d *DropImporter) handle(ctx context.Context, event watcher.Event) {
	result, err := d.importFile(ctx, event)
	if err != nil {
		d.logger.WithError(err).Error("drop import failed", "path", event.Path)
		d.moveTo(event.Path, failedDirName)
		return
	}

	d.logger.Info("drop import complete",
		"path", event.Path,
		"document_id", result.DocumentID,
		"imported", result.Imported,
		"warnings", len(result.Warnings))
	d.moveTo(event.Path, processedDirName)
}

func (d *DropImporter) importFile(ctx context.Context, event watcher.Event) (*domain.ImportResult, error) {
	f, err := os.Open(event.Path)
	if err != nil {
		return nil, fmt.Errorf("open dropped file: %w", err)
	}
	defer f.Close()

	return d.imports.ImportDocument(ctx, filepath.Base(event.Path), event.Size, f)
}

// moveTo relocates a handled file into a sibling subdirectory. A move failure
// is logged but not fatal; the next restart will retry the import.
func (d *DropImporter) moveTo(path, subdir string) {
	dir := filepath.Join(filepath.Dir(path), subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		d.logger.WithError(err).Error("creating drop subdirectory", "dir", dir)
		return
	}

	target := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, target); err != nil {
		d.logger.WithError(err).Error("moving dropped file", "from", path, "to", target)
	}
}
