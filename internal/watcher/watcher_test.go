package watcher

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/renvik/clipvault/internal/clipboard/mockboard"
	"github.com/renvik/clipvault/internal/store"
)

// recordingSink captures dispatched content without a real store. The
// mutex matters only for tests that run the watcher loop concurrently.
type recordingSink struct {
	mu     sync.Mutex
	texts  []string
	images [][]byte
}

func (s *recordingSink) IngestText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
}

func (s *recordingSink) IngestImage(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, append([]byte(nil), raw...))
}

func (s *recordingSink) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

func newTestWatcher() (*Watcher, *mockboard.MockBoard, *recordingSink) {
	board := mockboard.New()
	sink := &recordingSink{}
	return New(board, sink, DefaultInterval), board, sink
}

func TestPollDispatchesNewText(t *testing.T) {
	w, board, sink := newTestWatcher()

	board.SetText([]byte("hello"))
	w.Poll()

	if len(sink.texts) != 1 || sink.texts[0] != "hello" {
		t.Fatalf("texts = %v, want [hello]", sink.texts)
	}
}

func TestPollIgnoresUnchangedContent(t *testing.T) {
	w, board, sink := newTestWatcher()

	board.SetText([]byte("hello"))
	w.Poll()
	w.Poll()
	w.Poll()

	if len(sink.texts) != 1 {
		t.Errorf("unchanged content dispatched %d times, want 1", len(sink.texts))
	}
}

func TestPollEmptyClipboardIsNoop(t *testing.T) {
	w, _, sink := newTestWatcher()

	w.Poll()

	if len(sink.texts) != 0 || len(sink.images) != 0 {
		t.Error("empty clipboard tick must dispatch nothing")
	}
}

func TestPollIgnoresWhitespaceOnlyText(t *testing.T) {
	w, board, sink := newTestWatcher()

	board.SetText([]byte("  \n\t "))
	w.Poll()

	if len(sink.texts) != 0 {
		t.Error("whitespace-only text must not be dispatched")
	}
}

func TestPollPrefersImageOverText(t *testing.T) {
	w, board, sink := newTestWatcher()

	board.SetImage([]byte{0x89, 0x50, 0x4E, 0x47})
	w.Poll()

	if len(sink.images) != 1 {
		t.Fatalf("images = %d, want 1", len(sink.images))
	}
	if len(sink.texts) != 0 {
		t.Error("image tick must not dispatch text")
	}
}

func TestPollTracksKindsIndependently(t *testing.T) {
	w, board, sink := newTestWatcher()

	img := []byte{0x89, 0x50, 0x4E, 0x47}
	board.SetText([]byte("hello"))
	w.Poll()
	board.SetImage(img)
	w.Poll()
	// Back to the same text: its digest is unchanged for the text kind,
	// so switching kinds must not make it look new again.
	board.SetText([]byte("hello"))
	w.Poll()
	board.SetImage(img)
	w.Poll()

	if len(sink.texts) != 1 {
		t.Errorf("text dispatched %d times, want 1 (per-kind digest tracking)", len(sink.texts))
	}
	if len(sink.images) != 1 {
		t.Errorf("image dispatched %d times, want 1 (per-kind digest tracking)", len(sink.images))
	}
}

func TestMarkSelfWriteSkipsExactlyOneTick(t *testing.T) {
	w, board, sink := newTestWatcher()

	w.MarkSelfWrite(store.KindText, []byte("echo"))
	board.SetText([]byte("echo"))

	// The suppressed tick sees nothing at all.
	w.Poll()
	if len(sink.texts) != 0 {
		t.Fatal("suppressed tick must not dispatch")
	}

	// Later ticks over the echo are caught by the recorded digest.
	w.Poll()
	w.Poll()
	if len(sink.texts) != 0 {
		t.Error("echo of a self-write must never be re-ingested")
	}

	// A genuinely new external copy still comes through.
	board.SetText([]byte("external"))
	w.Poll()
	if len(sink.texts) != 1 || sink.texts[0] != "external" {
		t.Errorf("texts = %v, want [external]", sink.texts)
	}
}

func TestMarkSelfWriteSuppressionIsSingleShot(t *testing.T) {
	w, board, sink := newTestWatcher()

	w.MarkSelfWrite(store.KindText, []byte("echo"))
	w.Poll() // consumed here

	board.SetText([]byte("fresh"))
	w.Poll()

	if len(sink.texts) != 1 {
		t.Error("suppression must only cover one tick")
	}
}

func TestPollLockedClipboardHasNoSideEffects(t *testing.T) {
	w, board, sink := newTestWatcher()

	board.SetText([]byte("hidden"))
	board.SetLocked(true)
	w.Poll()

	if len(sink.texts) != 0 {
		t.Error("locked clipboard tick must dispatch nothing")
	}

	// Unlock: the content is observed as new on the next tick.
	board.SetLocked(false)
	w.Poll()
	if len(sink.texts) != 1 {
		t.Error("content must be picked up once the clipboard is readable again")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	board := mockboard.New()
	sink := &recordingSink{}
	w := New(board, sink, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	board.SetText([]byte("from the loop"))
	deadline := time.After(2 * time.Second)
	for len(sink.Texts()) == 0 {
		select {
		case <-deadline:
			t.Fatal("watcher never picked up clipboard content")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}

	if got := sink.Texts()[0]; !bytes.Equal([]byte(got), []byte("from the loop")) {
		t.Errorf("dispatched %q, want %q", got, "from the loop")
	}
}
