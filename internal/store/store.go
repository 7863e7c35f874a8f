// Package store holds the in-memory clipboard history: text items, image
// items, and groups. It owns the dedup policy, most-recent-first ordering,
// starring, group membership, and deletion, and mirrors every mutation to a
// persister synchronously.
package store

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renvik/clipvault/internal/digest"
	"github.com/renvik/clipvault/internal/imaging"
)

// PreviewLimit is the number of runes kept in a text item's preview.
const PreviewLimit = 100

// Defaults applied by CreateGroup when the caller leaves a field empty.
const (
	DefaultGroupName  = "New Group"
	DefaultGroupColor = "#A855F7"
	DefaultGroupIcon  = "📁"
)

// Persister mirrors the store to durable storage. Save failures degrade the
// session to memory-only; they never abort a mutation.
type Persister interface {
	Save(*Snapshot) error
}

// Store is the root aggregate. All mutations are serialized by its mutex,
// run to completion (mutate → persist → notify), and never interleave.
type Store struct {
	mu     sync.Mutex
	text   []*ClipItem
	images []*ClipItem
	groups []*Group

	persister Persister
	onChange  func()
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the capture-timestamp source. Tests use it to make
// ordering deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store mirrored to the given persister.
// A nil persister keeps the store memory-only.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromSnapshot restores a store from a loaded snapshot. Group membership is
// the source of truth: every item's GroupID is recomputed from
// MemberHashes, later groups lose hashes already claimed by an earlier
// group, and hashes that resolve to no item are dropped. Null entries in a
// hand-edited or damaged snapshot are skipped rather than crashing startup.
func FromSnapshot(snap *Snapshot, p Persister, opts ...Option) *Store {
	s := New(p, opts...)
	if snap == nil {
		return s
	}

	for _, item := range snap.Text {
		if item != nil {
			s.text = append(s.text, item)
		}
	}
	for _, item := range snap.Images {
		if item != nil {
			s.images = append(s.images, item)
		}
	}
	for _, g := range snap.Groups {
		if g != nil {
			s.groups = append(s.groups, g)
		}
	}

	byHash := make(map[string]*ClipItem)
	for _, item := range append(append([]*ClipItem{}, s.text...), s.images...) {
		item.GroupID = ""
		if _, ok := byHash[item.Hash]; !ok {
			byHash[item.Hash] = item
		}
	}

	for _, g := range s.groups {
		kept := g.MemberHashes[:0]
		for _, h := range g.MemberHashes {
			item, ok := byHash[h]
			if !ok || item.GroupID != "" {
				continue
			}
			item.GroupID = g.ID
			kept = append(kept, h)
		}
		g.MemberHashes = kept
	}

	return s
}

// OnChange registers the change notification fired after every successful
// mutation. The store holds no lock while calling it.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// IngestText captures a text payload. Empty or all-whitespace strings are
// rejected. An existing item with the same digest is replaced, which moves
// the content to the front and resets its starred state, the opposite of
// the image policy in IngestImage.
func (s *Store) IngestText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	hash := digest.String(text)
	now := s.now()
	item := &ClipItem{
		Kind:      KindText,
		Hash:      hash,
		Content:   text,
		Preview:   Preview(text),
		Timestamp: now,
		TextStats: &TextStats{
			CharCount: len([]rune(text)),
			WordCount: len(strings.Fields(text)),
			LineCount: strings.Count(text, "\n") + 1,
			SizeBytes: len(text),
			Created:   now,
		},
	}

	s.mu.Lock()
	s.text = removeByHash(s.text, hash)
	// Membership is keyed by hash, so a refreshed duplicate stays in its
	// group even though starring resets.
	item.GroupID = s.groupOfLocked(hash)
	s.text = append([]*ClipItem{item}, s.text...)
	s.finishMutationLocked()
}

// IngestImage captures a raw image payload. The codec pipeline produces the
// storage variant whose bytes define the item's identity; an undecodable
// payload is dropped silently like any transient clipboard failure. A
// duplicate digest is a no-op, so prior starred and group state survives
// re-capture.
func (s *Store) IngestImage(raw []byte) {
	res, err := imaging.Process(raw)
	if err != nil {
		slog.Debug("dropping undecodable clipboard image", "err", err)
		return
	}

	hash := digest.Bytes(res.Stored)
	now := s.now()
	item := &ClipItem{
		Kind:      KindImage,
		Hash:      hash,
		Content:   base64.StdEncoding.EncodeToString(res.Stored),
		Thumbnail: base64.StdEncoding.EncodeToString(res.Thumbnail),
		Preview:   fmt.Sprintf("[image %d×%d]", res.StoredWidth, res.StoredHeight),
		Timestamp: now,
		ImageStats: &ImageStats{
			OriginalWidth:  res.OriginalWidth,
			OriginalHeight: res.OriginalHeight,
			StoredWidth:    res.StoredWidth,
			StoredHeight:   res.StoredHeight,
			Format:         "JPEG",
			Created:        now,
		},
	}

	s.mu.Lock()
	if findByHash(s.images, hash) != nil {
		s.mu.Unlock()
		return
	}
	item.GroupID = s.groupOfLocked(hash)
	s.images = append([]*ClipItem{item}, s.images...)
	s.finishMutationLocked()
}

// ToggleStar flips the starred flag on the item with the given hash in
// whichever collection holds it. Unknown hashes are a no-op.
func (s *Store) ToggleStar(hash string) {
	s.mu.Lock()
	item := findByHash(s.text, hash)
	if item == nil {
		item = findByHash(s.images, hash)
	}
	if item == nil {
		s.mu.Unlock()
		return
	}
	item.Starred = !item.Starred
	s.finishMutationLocked()
}

// DeleteMany removes all items whose hash appears in hashes from both
// collections, and scrubs those hashes from every group so no stale
// membership references accumulate.
func (s *Store) DeleteMany(hashes []string) {
	if len(hashes) == 0 {
		return
	}
	set := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		set[h] = struct{}{}
	}

	s.mu.Lock()
	changed := false
	s.text = filterOut(s.text, set, &changed)
	s.images = filterOut(s.images, set, &changed)
	for _, g := range s.groups {
		kept := g.MemberHashes[:0]
		for _, h := range g.MemberHashes {
			if _, gone := set[h]; gone {
				changed = true
				continue
			}
			kept = append(kept, h)
		}
		g.MemberHashes = kept
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.finishMutationLocked()
}

// DeleteAll clears both item collections and every group's membership.
// The groups themselves remain.
func (s *Store) DeleteAll() {
	s.mu.Lock()
	s.text = nil
	s.images = nil
	for _, g := range s.groups {
		g.MemberHashes = nil
	}
	s.finishMutationLocked()
}

// CreateGroup appends a new empty group and returns a copy of it.
func (s *Store) CreateGroup(name, color, icon string) Group {
	if name == "" {
		name = DefaultGroupName
	}
	if color == "" {
		color = DefaultGroupColor
	}
	if icon == "" {
		icon = DefaultGroupIcon
	}
	g := &Group{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      icon,
		Color:     color,
		CreatedAt: s.now(),
		Expanded:  true,
	}

	s.mu.Lock()
	s.groups = append(s.groups, g)
	out := copyGroup(g)
	s.finishMutationLocked()
	return out
}

// DeleteGroup removes the group and clears GroupID on every item that
// referenced it. Unknown IDs are a no-op.
func (s *Store) DeleteGroup(id string) {
	s.mu.Lock()
	idx := -1
	for i, g := range s.groups {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.groups = append(s.groups[:idx], s.groups[idx+1:]...)
	for _, item := range s.text {
		if item.GroupID == id {
			item.GroupID = ""
		}
	}
	for _, item := range s.images {
		if item.GroupID == id {
			item.GroupID = ""
		}
	}
	s.finishMutationLocked()
}

// AddToGroup records the item with the given hash as a member of the group.
// An item belongs to at most one group: joining a new group leaves the old
// one. Adding an existing member is a no-op.
func (s *Store) AddToGroup(groupID, hash string) error {
	s.mu.Lock()

	var group *Group
	for _, g := range s.groups {
		if g.ID == groupID {
			group = g
			break
		}
	}
	if group == nil {
		s.mu.Unlock()
		return fmt.Errorf("group not found: %s", groupID)
	}

	item := findByHash(s.text, hash)
	if item == nil {
		item = findByHash(s.images, hash)
	}
	if item == nil {
		s.mu.Unlock()
		return fmt.Errorf("item not found: %s", hash)
	}

	if item.GroupID == groupID {
		s.mu.Unlock()
		return nil
	}

	if item.GroupID != "" {
		for _, g := range s.groups {
			if g.ID == item.GroupID {
				g.MemberHashes = removeString(g.MemberHashes, hash)
			}
		}
	}

	group.MemberHashes = append(group.MemberHashes, hash)
	item.GroupID = groupID
	s.finishMutationLocked()
	return nil
}

// SearchText filters text items by case-insensitive substring match against
// the full content. An empty query returns the whole collection.
func (s *Store) SearchText(query string) []ClipItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		return copyItems(s.text)
	}
	needle := strings.ToLower(query)
	var out []ClipItem
	for _, item := range s.text {
		if strings.Contains(strings.ToLower(item.Content), needle) {
			out = append(out, *item)
		}
	}
	return out
}

// Starred returns all starred items of both kinds ordered by timestamp
// descending.
func (s *Store) Starred() []ClipItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []ClipItem
	for _, item := range s.text {
		if item.Starred {
			out = append(out, *item)
		}
	}
	for _, item := range s.images {
		if item.Starred {
			out = append(out, *item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Texts returns a copy of the text collection, most recent first.
func (s *Store) Texts() []ClipItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.text)
}

// Images returns a copy of the image collection, most recent first.
func (s *Store) Images() []ClipItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.images)
}

// Groups returns a copy of all groups in creation order.
func (s *Store) Groups() []Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, copyGroup(g))
	}
	return out
}

// Find returns the item with the given hash from either collection.
func (s *Store) Find(hash string) (ClipItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item := findByHash(s.text, hash); item != nil {
		return *item, true
	}
	if item := findByHash(s.images, hash); item != nil {
		return *item, true
	}
	return ClipItem{}, false
}

// GroupItems returns the members of a group, text items before images,
// each collection in its own order.
func (s *Store) GroupItems(groupID string) []ClipItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ClipItem
	for _, item := range s.text {
		if item.GroupID == groupID {
			out = append(out, *item)
		}
	}
	for _, item := range s.images {
		if item.GroupID == groupID {
			out = append(out, *item)
		}
	}
	return out
}

// Snapshot returns a deep copy of the store's current state for
// serialization.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Preview returns the truncated display form of a text payload: the first
// PreviewLimit runes, with "..." appended when truncation occurred.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLimit {
		return text
	}
	return string(runes[:PreviewLimit]) + "..."
}

// finishMutationLocked persists the snapshot and fires the change
// notification. It must be entered with the mutex held and releases it.
// The save runs while the mutex is still held, so snapshots reach the
// persister in mutation order and the file on disk never regresses to an
// older state; only the notification runs unlocked. A persist failure is
// logged and the in-memory state stays authoritative for the rest of the
// session.
func (s *Store) finishMutationLocked() {
	if s.persister != nil {
		if err := s.persister.Save(s.snapshotLocked()); err != nil {
			slog.Warn("failed to persist clipboard history", "err", err)
		}
	}
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (s *Store) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Version: SnapshotVersion,
		Text:    make([]*ClipItem, len(s.text)),
		Images:  make([]*ClipItem, len(s.images)),
		Groups:  make([]*Group, len(s.groups)),
	}
	for i, item := range s.text {
		c := *item
		snap.Text[i] = &c
	}
	for i, item := range s.images {
		c := *item
		snap.Images[i] = &c
	}
	for i, g := range s.groups {
		c := copyGroup(g)
		snap.Groups[i] = &c
	}
	return snap
}

// groupOfLocked returns the ID of the group whose MemberHashes contains
// hash, or "".
func (s *Store) groupOfLocked(hash string) string {
	for _, g := range s.groups {
		for _, h := range g.MemberHashes {
			if h == hash {
				return g.ID
			}
		}
	}
	return ""
}

func findByHash(items []*ClipItem, hash string) *ClipItem {
	for _, item := range items {
		if item.Hash == hash {
			return item
		}
	}
	return nil
}

func removeByHash(items []*ClipItem, hash string) []*ClipItem {
	out := items[:0]
	for _, item := range items {
		if item.Hash != hash {
			out = append(out, item)
		}
	}
	return out
}

func filterOut(items []*ClipItem, hashes map[string]struct{}, changed *bool) []*ClipItem {
	out := items[:0]
	for _, item := range items {
		if _, gone := hashes[item.Hash]; gone {
			*changed = true
			continue
		}
		out = append(out, item)
	}
	return out
}

func removeString(ss []string, s string) []string {
	out := ss[:0]
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func copyItems(items []*ClipItem) []ClipItem {
	out := make([]ClipItem, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out
}

func copyGroup(g *Group) Group {
	c := *g
	c.MemberHashes = append([]string(nil), g.MemberHashes...)
	return c
}
