package biome

import "time"

// Sound is the track an entry reacts to.
type Sound struct {
	ID         string
	Name       string
	ArtistName string
	ArtworkURL string
	ColorHex   string
}

// UserSummary is the author block embedded in an entry.
type UserSummary struct {
	ID        string
	Username  string
	AvatarURL string
}

// ViewerState holds the requesting user's own reactions to an entry.
type ViewerState struct {
	HeartTapped      bool
	FlameTapped      bool
	ThumbsDownTapped bool
}

// Entry is a top-level post in a feed. Identity is the ID alone.
type Entry struct {
	ID              string
	SoundID         string
	Sound           *Sound
	AuthorID        string
	Text            string
	Rating          float64
	Loved           bool
	Replay          bool
	HeartCount      int
	FlameCount      int
	ThumbsDownCount int
	// CreatedAt is zero when the wire timestamp could not be parsed.
	CreatedAt time.Time
	// CreatedAtRaw is the timestamp exactly as transmitted.
	CreatedAtRaw string
	Author       UserSummary
	Viewer       ViewerState
}

// Equal reports whether both entries have the same ID.
func (e Entry) Equal(other Entry) bool { return e.ID == other.ID }

// Key returns the value to use when entries are kept in maps or sets.
func (e Entry) Key() string { return e.ID }

// Pagination is the server's page metadata.
type Pagination struct {
	CurrentPage int
	HasNextPage bool
	NextPage    *int
}

// Page is one page of a user's feed.
type Page struct {
	Entries    []Entry
	Pagination Pagination
}

// FeedRequest addresses one page of a feed.
type FeedRequest struct {
	UserID     string
	PageUserID string
	Page       int
}

// Reaction is a tap on an entry.
type Reaction string

const (
	ReactionHeart      Reaction = "heart"
	ReactionFlame      Reaction = "flame"
	ReactionThumbsDown Reaction = "thumbs_down"
)

// Valid reports whether r is a known reaction.
func (r Reaction) Valid() bool {
	switch r {
	case ReactionHeart, ReactionFlame, ReactionThumbsDown:
		return true
	}
	return false
}
