package store

import "time"

// Kind distinguishes the two item collections. Hashes are unique per kind,
// not globally: a text item and an image item may share a digest without
// colliding.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// TextStats holds the derived statistics computed once when a text item is
// captured. They are never recomputed on later reads.
type TextStats struct {
	CharCount int       `json:"char_count"`
	WordCount int       `json:"word_count"`
	LineCount int       `json:"line_count"`
	SizeBytes int       `json:"size_bytes"`
	Created   time.Time `json:"created"`
}

// ImageStats holds the derived statistics computed once when an image item
// is captured.
type ImageStats struct {
	OriginalWidth  int       `json:"original_width"`
	OriginalHeight int       `json:"original_height"`
	StoredWidth    int       `json:"stored_width"`
	StoredHeight   int       `json:"stored_height"`
	Format         string    `json:"format"`
	Created        time.Time `json:"created"`
}

// ClipItem is a single captured clipboard entry. Exactly one of TextStats
// and ImageStats is set, matching Kind.
type ClipItem struct {
	Kind Kind   `json:"kind"`
	Hash string `json:"hash"`

	// Content is the full text for text items, or the base64-encoded
	// storage-variant JPEG for image items. The hash is computed over
	// exactly these bytes (UTF-8 text / decoded storage bytes).
	Content string `json:"content"`

	// Thumbnail is a base64-encoded JPEG for image items.
	Thumbnail string `json:"thumbnail,omitempty"`

	// Preview is the truncated display form of text items.
	Preview string `json:"preview,omitempty"`

	Timestamp time.Time `json:"timestamp"`
	Starred   bool      `json:"starred"`

	TextStats  *TextStats  `json:"text_stats,omitempty"`
	ImageStats *ImageStats `json:"image_stats,omitempty"`

	// GroupID is a derived cache of group membership. The authoritative
	// record is Group.MemberHashes; GroupID is recomputed on load and
	// maintained only by store operations, so it is excluded from the
	// snapshot.
	GroupID string `json:"-"`
}

// Group is a user-defined named bucket of items, referenced by hash.
type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`

	// MemberHashes is the single source of truth for membership.
	MemberHashes []string `json:"member_hashes"`

	CreatedAt time.Time `json:"created_at"`

	// Expanded is a display flag. It is persisted, so a collapsed group
	// stays collapsed across restarts.
	Expanded bool `json:"expanded"`
}

// Snapshot is the serialized form of the whole store: both item
// collections (most-recent-first) and all groups.
type Snapshot struct {
	Version int         `json:"version"`
	Text    []*ClipItem `json:"text"`
	Images  []*ClipItem `json:"images"`
	Groups  []*Group    `json:"groups"`
}

// SnapshotVersion is written to every saved snapshot.
const SnapshotVersion = 1
