// Package watch keeps a window at the bottom of the stacking order.
package watch

import (
	"context"
	"sync"
	"time"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"go.uber.org/zap"
)

// DefaultInterval is the poll interval used when none is given.
const DefaultInterval = 500 * time.Millisecond

// System is the part of platform.WindowSystem the watcher needs.
type System interface {
	TopLevelWindows() ([]platform.WindowRef, error)
	IsWindow(h model.Handle) bool
	SetZOrder(h model.Handle, z platform.ZOrder) error
}

// BottomWatcher polls the stacking order and sends its window to the bottom
// whenever something has been placed below it. There is at most one polling
// goroutine per watcher.
type BottomWatcher struct {
	sys      System
	hwnd     model.Handle
	interval time.Duration
	logger   *zap.SugaredLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns an idle watcher. A non-positive interval selects
// DefaultInterval; a nil logger disables logging.
func New(sys System, hwnd model.Handle, interval time.Duration, logger *zap.SugaredLogger) *BottomWatcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BottomWatcher{
		sys:      sys,
		hwnd:     hwnd,
		interval: interval,
		logger:   logger.Named("watch").With("window", hwnd),
	}
}

// Interval returns the poll interval.
func (w *BottomWatcher) Interval() time.Duration { return w.interval }

// Enable starts the polling loop. It returns false if a loop is already
// running. A loop that was disabled but has not finished yet is waited for
// first.
func (w *BottomWatcher) Enable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.runningLocked() {
		return false
	}
	w.startLocked()
	return true
}

// Disable asks the loop to stop. A sleeping loop wakes immediately and exits
// without repositioning the window. Disable on an idle watcher does nothing.
func (w *BottomWatcher) Disable() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
		w.logger.Debug("Stopping always-on-bottom")
	}
}

// Restart stops any running loop, waits for it to exit, and starts a new one.
func (w *BottomWatcher) Restart() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.startLocked()
	return true
}

// Running reports whether a loop is active.
func (w *BottomWatcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runningLocked()
}

// Wait blocks until the current loop exits or ctx is done. It returns nil
// immediately when no loop has been started.
func (w *BottomWatcher) Wait(ctx context.Context) error {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *BottomWatcher) runningLocked() bool {
	if w.cancel == nil || w.done == nil {
		return false
	}
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

// startLocked waits for the previous loop, if any, and launches a new one.
func (w *BottomWatcher) startLocked() {
	if w.done != nil {
		<-w.done
	}
	if w.cancel != nil {
		w.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	w.cancel = cancel
	w.done = done
	w.logger.Debugw("Starting always-on-bottom", "interval", w.interval)
	go w.run(ctx, done)
}

func (w *BottomWatcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if ctx.Err() != nil {
			return
		}
		if !w.sys.IsWindow(w.hwnd) {
			w.logger.Debug("Window is gone, stopping always-on-bottom")
			return
		}
		if !w.isLast() {
			if err := w.sys.SetZOrder(w.hwnd, platform.ZBottom); err != nil {
				w.logger.Debugw("Failed to send window to bottom", "error", err)
			}
		}

		timer := time.NewTimer(w.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// isLast reports whether the window is the bottom-most enumerated window.
// An enumeration failure counts as "last" so nothing is done on bad data.
func (w *BottomWatcher) isLast() bool {
	refs, err := w.sys.TopLevelWindows()
	if err != nil {
		w.logger.Debugw("Failed to enumerate windows", "error", err)
		return true
	}
	if len(refs) == 0 {
		return false
	}
	return refs[len(refs)-1].Handle == w.hwnd
}
