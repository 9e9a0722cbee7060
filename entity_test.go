package biome

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureTime = time.Date(2024, 5, 14, 18, 30, 0, 0, time.UTC)

func TestEntityEqual(t *testing.T) {
	a := NewEntity("e1", "mira", "https://cdn.example/a.jpg", "this bridge", fixtureTime)
	b := NewEntity("e1", "mira", "https://cdn.example/a.jpg", "this bridge", fixtureTime)
	assert.True(t, a.Equal(b))

	c := NewEntity("e1", "mira", "https://cdn.example/a.jpg", "this chorus", fixtureTime)
	assert.False(t, a.Equal(c), "text differs")

	d := NewEntity("e1", "mira", "https://cdn.example/a.jpg", "this bridge", fixtureTime, WithParent("root"))
	assert.False(t, a.Equal(d), "parent differs")
	assert.True(t, d.HasParent())
	assert.False(t, a.HasParent())

	e := NewEntity("e1", "mira", "https://cdn.example/a.jpg", "this bridge", fixtureTime.In(time.FixedZone("X", 3600)))
	assert.True(t, a.Equal(e), "same instant in another zone")
}

func TestEntityEqual_AttachmentCountOnly(t *testing.T) {
	a := NewEntity("e1", "mira", "", "hi", fixtureTime, WithAttachments(Photo{ID: "p1", URL: "u1"}))
	b := NewEntity("e1", "mira", "", "hi", fixtureTime, WithAttachments(Song{ID: "s9", Name: "other"}))
	assert.True(t, a.Equal(b), "contents differ but count matches")

	c := a.WithAttachment(Voice{ID: "v1"})
	assert.False(t, a.Equal(c), "count differs")
}

func TestEntityWithAttachment_LeavesReceiverUnchanged(t *testing.T) {
	a := NewEntity("e1", "mira", "", "hi", fixtureTime, WithAttachments(Photo{ID: "p1"}))
	b := a.WithAttachment(Photo{ID: "p2"})

	require.Len(t, a.Attachments(), 1)
	require.Len(t, b.Attachments(), 2)

	got := a.Attachments()
	got[0] = Voice{ID: "mutated"}
	assert.Equal(t, "p1", a.Attachments()[0].AttachmentID(), "Attachments returns a copy")
}

func TestSongAttachment_FirstMatch(t *testing.T) {
	e := NewEntity("e1", "mira", "", "", fixtureTime, WithAttachments(
		Photo{ID: "p1"},
		Song{ID: "s1", Name: "Teardrop"},
		Song{ID: "s2", Name: "Angel"},
	))

	s, ok := e.SongAttachment()
	require.True(t, ok)
	assert.Equal(t, "s1", s.ID)

	_, ok = NewEntity("e2", "", "", "", fixtureTime).SongAttachment()
	assert.False(t, ok)
}

func TestPhotoAndVoiceAttachments(t *testing.T) {
	e := NewEntity("e1", "mira", "", "", fixtureTime, WithAttachments(
		Photo{ID: "p1"},
		Voice{ID: "v1"},
		Song{ID: "s1"},
		Photo{ID: "p2"},
		Voice{ID: "v2"},
	))

	photos := e.PhotoAttachments()
	require.Len(t, photos, 2)
	assert.Equal(t, "p1", photos[0].ID)
	assert.Equal(t, "p2", photos[1].ID)

	v, ok := e.VoiceAttachment()
	require.True(t, ok)
	assert.Equal(t, "v1", v.ID)
}

func TestAttachmentKinds(t *testing.T) {
	assert.Equal(t, KindSong, Song{}.Kind())
	assert.Equal(t, KindPhoto, Photo{}.Kind())
	assert.Equal(t, KindVoice, Voice{}.Kind())
}
