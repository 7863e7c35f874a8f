// Package clipboard defines the interface to the system clipboard. The
// clipboard is a shared OS resource with no locking contract: reads can
// transiently fail or return nothing while another process holds it, and
// callers treat every failure as retryable.
package clipboard

// Board is the contract all clipboard implementations satisfy.
// Reads return nil when the clipboard holds no content of the requested
// format; a clipboard can hold both a text and an image representation,
// and callers decide precedence.
type Board interface {
	// ReadText returns the current text contents as UTF-8 bytes, or nil.
	ReadText() []byte

	// ReadImage returns the current image contents as PNG-encoded bytes,
	// or nil.
	ReadImage() []byte

	// WriteText replaces the clipboard contents with the given text.
	WriteText(data []byte) error

	// WriteImage replaces the clipboard contents with the given
	// PNG-encoded image.
	WriteImage(data []byte) error

	// Available reports whether the clipboard can be used at all
	// (e.g. false on a headless host with no display server).
	Available() bool
}
