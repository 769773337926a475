package gazetteer

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultReloadDebounce = 400 * time.Millisecond

// Provider hands out the current gazetteer snapshot. Reload is an atomic
// swap-in of a new immutable Snapshot; in-flight searches keep comparing
// against the snapshot they started with.
type Provider struct {
	current atomic.Pointer[Snapshot]
	logger  *zap.Logger

	mu          sync.Mutex
	reloadTimer *time.Timer
}

// NewProvider creates a provider seeded with snap.
func NewProvider(snap *Snapshot, logger *zap.Logger) *Provider {
	p := &Provider{logger: logger}
	if snap == nil {
		snap = NewSnapshot(nil, logger)
	}
	p.current.Store(snap)
	return p
}

// Snapshot returns the current immutable snapshot.
func (p *Provider) Snapshot() *Snapshot {
	return p.current.Load()
}

// Swap replaces the current snapshot atomically.
func (p *Provider) Swap(snap *Snapshot) {
	if snap == nil {
		return
	}
	p.current.Store(snap)
	if p.logger != nil {
		p.logger.Info("gazetteer snapshot swapped", zap.Int("entries", snap.Len()))
	}
}

// WatchFile watches the gazetteer YAML file and swaps in a fresh snapshot on
// change, debounced so editors that write in bursts trigger one reload. It
// runs until ctx is cancelled. A reload that fails to parse keeps the old
// snapshot in place.
func (p *Provider) WatchFile(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace files, which breaks per-file watches.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				p.stopReloadTimer()
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				p.debounceReload(path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if err != nil && p.logger != nil {
					p.logger.Debug("gazetteer watcher error", zap.Error(err))
				}
			}
		}
	}()
	return nil
}

func (p *Provider) debounceReload(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reloadTimer != nil {
		p.reloadTimer.Stop()
	}
	p.reloadTimer = time.AfterFunc(defaultReloadDebounce, func() {
		p.reload(path)
	})
}

func (p *Provider) stopReloadTimer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reloadTimer != nil {
		p.reloadTimer.Stop()
		p.reloadTimer = nil
	}
}

func (p *Provider) reload(path string) {
	entries, err := LoadFile(path)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("gazetteer reload failed, keeping previous snapshot", zap.String("path", path), zap.Error(err))
		}
		return
	}
	p.Swap(NewSnapshot(entries, p.logger))
}
