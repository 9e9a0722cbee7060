package biome

// AttachmentKind is the wire tag of an attachment variant.
type AttachmentKind string

const (
	KindSong  AttachmentKind = "song"
	KindPhoto AttachmentKind = "photo"
	KindVoice AttachmentKind = "voice"
)

// Attachment is media carried by an Entity. The concrete type is the variant:
// Song, Photo or Voice. The interface is sealed.
type Attachment interface {
	AttachmentID() string
	Kind() AttachmentKind
	attachment()
}

// Song is a track reference shared with a post.
type Song struct {
	ID         string
	ArtworkURL string
	Name       string
	ArtistName string
	ColorHex   string
}

// Photo is an image attached to a post.
type Photo struct {
	ID  string
	URL string
}

// Voice is a recorded voice note.
type Voice struct {
	ID  string
	URL string
}

func (s Song) AttachmentID() string { return s.ID }
func (s Song) Kind() AttachmentKind { return KindSong }
func (Song) attachment() {}
func (p Photo) AttachmentID() string { return p.ID }
func (p Photo) Kind() AttachmentKind { return KindPhoto }
func (Photo) attachment() {}
func (v Voice) AttachmentID() string { return v.ID }
func (v Voice) Kind() AttachmentKind { return KindVoice }
func (Voice) attachment() {}
