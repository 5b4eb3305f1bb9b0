package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/config"
	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
	"github.com/stakemetrics/stakemetrics-server/internal/watcher"
)

// DropWatcherHandle wraps the drop-directory watcher with its lifecycle. The
// watcher is nil when no drop path is configured.
type DropWatcherHandle struct {
	Watcher *watcher.Watcher
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *DropWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideDropWatcher provides the drop-directory import pipeline: a settle
// watcher feeding the import service, with handled files filed away into
// processed/ and failed/ subdirectories.
func ProvideDropWatcher(i do.Injector) (*DropWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Import.DropPath == "" {
		log.Info("Drop directory watcher disabled")
		return &DropWatcherHandle{}, nil
	}

	imports := do.MustInvoke[*service.ImportService](i)

	w, err := watcher.New(log.Logger, cfg.Import.DropPath, watcher.Options{})
	if err != nil {
		return nil, err
	}

	drop := service.NewDropImporter(imports, w, log)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Start(ctx); err != nil {
			log.WithError(err).Error("drop watcher stopped")
		}
	}()
	go drop.Run(ctx)

	return &DropWatcherHandle{Watcher: w, cancel: cancel}, nil
}
