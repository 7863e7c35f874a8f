// Package watcher polls the system clipboard for new content and feeds it
// into the history. The host clipboard offers no change notification, so
// detection is a fixed-cadence poll: read, classify (image before text),
// digest, and dispatch only when the digest differs from the last one seen
// for that kind.
package watcher

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/renvik/clipvault/internal/clipboard"
	"github.com/renvik/clipvault/internal/digest"
	"github.com/renvik/clipvault/internal/store"
)

// DefaultInterval is the poll period.
const DefaultInterval = 500 * time.Millisecond

// Sink receives newly observed clipboard content. *store.Store satisfies it.
type Sink interface {
	IngestText(text string)
	IngestImage(raw []byte)
}

// Watcher is the clipboard poll loop.
type Watcher struct {
	board    clipboard.Board
	sink     Sink
	interval time.Duration

	mu sync.Mutex
	// suppress skips exactly one tick after an application-originated
	// clipboard write, so the echo of our own write is never re-ingested.
	suppress bool
	// Last observed digest per kind. Tracking them separately means
	// alternating between unchanged text and an unchanged image never
	// reads as a change.
	lastText  string
	lastImage string
}

// New creates a watcher polling board at the given interval and
// dispatching new content to sink. A non-positive interval uses
// DefaultInterval.
func New(board clipboard.Board, sink Sink, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		board:    board,
		sink:     sink,
		interval: interval,
	}
}

// Run polls until ctx is cancelled. Each tick runs to completion before
// the next begins.
func (w *Watcher) Run(ctx context.Context) {
	slog.Info("clipboard watcher started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("clipboard watcher stopped")
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll performs a single observation tick. Images are checked before text;
// a clipboard holding neither is a no-op. Errors never escape a tick: a
// transiently locked clipboard simply reads as empty and the next tick
// retries.
func (w *Watcher) Poll() {
	w.mu.Lock()
	if w.suppress {
		w.suppress = false
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	if img := w.board.ReadImage(); img != nil {
		d := digest.Bytes(img)
		if !w.record(store.KindImage, d) {
			return
		}
		w.sink.IngestImage(img)
		return
	}

	text := w.board.ReadText()
	if len(text) == 0 || strings.TrimSpace(string(text)) == "" {
		return
	}
	d := digest.Bytes(text)
	if !w.record(store.KindText, d) {
		return
	}
	w.sink.IngestText(string(text))
}

// MarkSelfWrite must be called before the application writes its own
// content to the clipboard. It arms the single-shot suppression flag and
// records the digest of the canonical bytes about to be written, so even a
// missed flag is caught by the unchanged-digest check on later ticks.
func (w *Watcher) MarkSelfWrite(kind store.Kind, canonical []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.suppress = true
	switch kind {
	case store.KindImage:
		w.lastImage = digest.Bytes(canonical)
	default:
		w.lastText = digest.Bytes(canonical)
	}
}

// record updates the last observed digest for kind and reports whether the
// digest was new.
func (w *Watcher) record(kind store.Kind, d string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	last := &w.lastText
	if kind == store.KindImage {
		last = &w.lastImage
	}
	if *last == d {
		return false
	}
	*last = d
	return true
}
