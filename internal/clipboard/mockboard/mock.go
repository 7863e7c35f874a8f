// Package mockboard provides an in-memory clipboard.Board for testing.
package mockboard

import "sync"

// MockBoard implements clipboard.Board with settable contents.
// It optionally simulates a clipboard held by another process: while
// Locked, reads return nil and writes fail silently by recording nothing.
type MockBoard struct {
	mu     sync.Mutex
	text   []byte
	image  []byte
	locked bool

	// TextWrites and ImageWrites record every successful write, oldest first.
	TextWrites  [][]byte
	ImageWrites [][]byte
}

// New creates an empty mock clipboard.
func New() *MockBoard {
	return &MockBoard{}
}

// Available always reports true for the mock.
func (m *MockBoard) Available() bool { return true }

// ReadText returns the mock's text contents.
func (m *MockBoard) ReadText() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked {
		return nil
	}
	return m.text
}

// ReadImage returns the mock's image contents.
func (m *MockBoard) ReadImage() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked {
		return nil
	}
	return m.image
}

// WriteText sets the text contents and clears any image, mirroring how a
// real clipboard replaces its contents wholesale on write.
func (m *MockBoard) WriteText(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = append([]byte(nil), data...)
	m.image = nil
	m.TextWrites = append(m.TextWrites, m.text)
	return nil
}

// WriteImage sets the image contents and clears any text.
func (m *MockBoard) WriteImage(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = append([]byte(nil), data...)
	m.text = nil
	m.ImageWrites = append(m.ImageWrites, m.image)
	return nil
}

// SetText simulates an external process copying text.
func (m *MockBoard) SetText(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = append([]byte(nil), data...)
	m.image = nil
}

// SetImage simulates an external process copying an image.
func (m *MockBoard) SetImage(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.image = append([]byte(nil), data...)
	m.text = nil
}

// SetLocked toggles the simulated "held by another process" state.
func (m *MockBoard) SetLocked(locked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = locked
}
