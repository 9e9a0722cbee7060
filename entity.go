package biome

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// Entity is one post in a reply thread. It is immutable after construction;
// the parent is referenced by id and resolved by the owning Biome.
type Entity struct {
	ID        string
	Username  string
	AvatarRef string
	Text      string
	CreatedAt time.Time
	// ParentID is the id of the post this one replies to. Empty means none.
	ParentID string

	attachments []Attachment
}

// EntityOption configures an Entity at construction.
type EntityOption func(*Entity)

// WithParent sets the id of the entity being replied to.
func WithParent(parentID string) EntityOption {
	return func(e *Entity) { e.ParentID = parentID }
}

// WithAttachments appends attachments in the given order.
func WithAttachments(attachments ...Attachment) EntityOption {
	return func(e *Entity) { e.attachments = append(e.attachments, attachments...) }
}

// NewEntity builds an Entity. It never fails: ids, text and parents are not validated.
func NewEntity(id, username, avatarRef, text string, createdAt time.Time, opts ...EntityOption) Entity {
	e := Entity{
		ID:        id,
		Username:  username,
		AvatarRef: avatarRef,
		Text:      text,
		CreatedAt: createdAt,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// HasParent reports whether the entity cites a parent.
func (e Entity) HasParent() bool { return e.ParentID != "" }

// Attachments returns a copy of the attachment list.
func (e Entity) Attachments() []Attachment {
	return slices.Clone(e.attachments)
}

// WithAttachment returns a copy of e with a appended. e is left unchanged.
func (e Entity) WithAttachment(a Attachment) Entity {
	out := e
	out.attachments = append(slices.Clone(e.attachments), a)
	return out
}

// Equal compares every scalar field, the parent id and the number of attachments.
// Attachment contents are not compared.
func (e Entity) Equal(other Entity) bool {
	return e.ID == other.ID &&
		e.Username == other.Username &&
		e.AvatarRef == other.AvatarRef &&
		e.Text == other.Text &&
		e.CreatedAt.Equal(other.CreatedAt) &&
		len(e.attachments) == len(other.attachments) &&
		e.ParentID == other.ParentID
}

// SongAttachment returns the first Song, scanning left to right.
func (e Entity) SongAttachment() (Song, bool) {
	for _, a := range e.attachments {
		if s, ok := a.(Song); ok {
			return s, true
		}
	}
	return Song{}, false
}

// VoiceAttachment returns the first Voice. A post carries at most one voice note.
func (e Entity) VoiceAttachment() (Voice, bool) {
	for _, a := range e.attachments {
		if v, ok := a.(Voice); ok {
			return v, true
		}
	}
	return Voice{}, false
}

// PhotoAttachments returns every Photo in order.
func (e Entity) PhotoAttachments() []Photo {
	return lo.FilterMap(e.attachments, func(a Attachment, _ int) (Photo, bool) {
		p, ok := a.(Photo)
		return p, ok
	})
}
