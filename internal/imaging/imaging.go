// Package imaging converts captured clipboard images into the two encodings
// the history keeps: a small thumbnail for list rendering and a bounded
// "storage variant" that is both persisted and hashed. The original capture
// bytes are never stored.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Clipboard captures arrive as PNG; pasted files may be JPEG or GIF.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// ThumbnailSize is the bounding box the thumbnail is scaled to fit.
	ThumbnailSize = 80

	// MaxStoredDimension caps the larger dimension of the storage variant.
	MaxStoredDimension = 800

	// StorageQuality is the JPEG quality of the storage variant.
	StorageQuality = 75
)

// Result holds the output of processing one captured image.
type Result struct {
	// Thumbnail is a JPEG scaled to fit within ThumbnailSize on both axes.
	Thumbnail []byte

	// Stored is the JPEG storage variant. Its bytes are the item's identity:
	// the content digest is computed over them, not over the raw capture.
	Stored []byte

	OriginalWidth  int
	OriginalHeight int
	StoredWidth    int
	StoredHeight   int
}

// Process decodes raw image bytes and produces the thumbnail and storage
// variant. The input is not modified. A decode failure returns an error;
// callers treat it like a transient clipboard read failure and drop the
// capture.
func Process(raw []byte) (*Result, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		return nil, fmt.Errorf("image has empty bounds")
	}

	thumb, err := encodeScaled(src, fitScale(origW, origH, ThumbnailSize, ThumbnailSize))
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	scale := 1.0
	if origW > MaxStoredDimension || origH > MaxStoredDimension {
		scale = fitScale(origW, origH, MaxStoredDimension, MaxStoredDimension)
	}
	stored, err := encodeScaled(src, scale)
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage variant: %w", err)
	}

	return &Result{
		Thumbnail:      thumb,
		Stored:         stored,
		OriginalWidth:  origW,
		OriginalHeight: origH,
		StoredWidth:    scaled(origW, scale),
		StoredHeight:   scaled(origH, scale),
	}, nil
}

// fitScale returns the uniform scale that fits w×h inside maxW×maxH.
// The scale is never above 1: images smaller than the box pass through.
func fitScale(w, h, maxW, maxH int) float64 {
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if scale > 1 {
		return 1
	}
	return scale
}

func scaled(dim int, scale float64) int {
	out := int(float64(dim) * scale)
	if out < 1 {
		out = 1
	}
	return out
}

// encodeScaled resamples src by the given uniform scale and encodes it as a
// JPEG at StorageQuality. A scale of 1 skips resampling.
func encodeScaled(src image.Image, scale float64) ([]byte, error) {
	out := src
	if scale != 1 {
		bounds := src.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0,
			scaled(bounds.Dx(), scale), scaled(bounds.Dy(), scale)))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: StorageQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
