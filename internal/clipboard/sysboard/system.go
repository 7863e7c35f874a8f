// Package sysboard implements clipboard.Board on top of
// golang.design/x/clipboard, which talks to the native clipboard on
// Linux (X11/Wayland), macOS, and Windows. Initialization can fail on
// headless hosts; the board then reports unavailable and all reads
// return nil.
package sysboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// SystemBoard is the production clipboard backed by the OS.
type SystemBoard struct {
	available bool
}

var (
	initOnce sync.Once
	initErr  error
)

// New initializes the system clipboard and returns a board for it.
// clipboard.Init is process-global, so repeated calls share one
// initialization.
func New() *SystemBoard {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	return &SystemBoard{available: initErr == nil}
}

// Available reports whether the OS clipboard could be initialized.
func (s *SystemBoard) Available() bool {
	return s.available
}

// ReadText returns the clipboard's text contents, or nil.
func (s *SystemBoard) ReadText() []byte {
	if !s.available {
		return nil
	}
	return clipboard.Read(clipboard.FmtText)
}

// ReadImage returns the clipboard's image contents as PNG bytes, or nil.
func (s *SystemBoard) ReadImage() []byte {
	if !s.available {
		return nil
	}
	return clipboard.Read(clipboard.FmtImage)
}

// WriteText replaces the clipboard contents with text.
func (s *SystemBoard) WriteText(data []byte) error {
	if !s.available {
		return fmt.Errorf("clipboard unavailable: %w", initErr)
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

// WriteImage replaces the clipboard contents with a PNG image.
func (s *SystemBoard) WriteImage(data []byte) error {
	if !s.available {
		return fmt.Errorf("clipboard unavailable: %w", initErr)
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}
