package biome

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedPageBody = `{
	"entries": [
		{
			"id": "en_1",
			"sound": {
				"id": "snd_9",
				"name": "Roads",
				"artist_name": "Portishead",
				"artwork_url": "https://cdn.example/roads.jpg",
				"color_hex": "#1a2b3c"
			},
			"author_id": "usr_1",
			"text": "still gives me chills",
			"rating": 9.5,
			"loved": true,
			"replay": false,
			"heart_count": 12,
			"flame_count": 3,
			"thumbs_down_count": 1,
			"created_at": "2024-05-14T18:30:00.123Z",
			"author": {"id": "usr_1", "username": "mira", "avatar_url": "https://cdn.example/mira.jpg"},
			"is_heart_tapped": true
		},
		{"id": "", "text": "dropped"},
		{"id": "en_2", "sound_id": "snd_2", "created_at": "yesterday"}
	],
	"pagination": {"current_page": 1, "has_next_page": true, "next_page": 2}
}`

func TestParseFeedPage(t *testing.T) {
	page, err := parseFeedPage([]byte(feedPageBody))
	require.NoError(t, err)
	require.Len(t, page.Entries, 2, "entries without id are dropped")

	e := page.Entries[0]
	assert.Equal(t, "en_1", e.ID)
	assert.Equal(t, "snd_9", e.SoundID, "sound id falls back to embedded sound")
	require.NotNil(t, e.Sound)
	assert.Equal(t, "Portishead", e.Sound.ArtistName)
	assert.Equal(t, "#1a2b3c", e.Sound.ColorHex)
	assert.Equal(t, "usr_1", e.AuthorID)
	assert.InDelta(t, 9.5, e.Rating, 0.001)
	assert.True(t, e.Loved)
	assert.False(t, e.Replay)
	assert.Equal(t, 12, e.HeartCount)
	assert.Equal(t, 3, e.FlameCount)
	assert.Equal(t, 1, e.ThumbsDownCount)
	assert.Equal(t, "mira", e.Author.Username)
	assert.True(t, e.Viewer.HeartTapped)
	assert.False(t, e.Viewer.FlameTapped)
	assert.Equal(t, "2024-05-14T18:30:00.123Z", e.CreatedAtRaw)
	assert.True(t, e.CreatedAt.Equal(time.Date(2024, 5, 14, 18, 30, 0, 123000000, time.UTC)))

	bad := page.Entries[1]
	assert.Equal(t, "snd_2", bad.SoundID)
	assert.Nil(t, bad.Sound)
	assert.True(t, bad.CreatedAt.IsZero(), "unparseable timestamp keeps zero time")
	assert.Equal(t, "yesterday", bad.CreatedAtRaw)

	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.True(t, page.Pagination.HasNextPage)
	require.NotNil(t, page.Pagination.NextPage)
	assert.Equal(t, 2, *page.Pagination.NextPage)
}

func TestParseFeedPage_LastPage(t *testing.T) {
	page, err := parseFeedPage([]byte(`{"entries":[],"pagination":{"current_page":3,"has_next_page":false,"next_page":null}}`))
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.False(t, page.Pagination.HasNextPage)
	assert.Nil(t, page.Pagination.NextPage)
}

func TestParseFeedPage_Invalid(t *testing.T) {
	_, err := parseFeedPage([]byte(`{invalid`))
	assert.Error(t, err)
}

const threadBody = `{
	"entities": [
		{
			"id": "root",
			"username": "mira",
			"avatar_url": "https://cdn.example/mira.jpg",
			"text": "new Portishead just dropped",
			"created_at": "2024-05-14T18:30:00Z",
			"attachments": [
				{"type": "photo", "id": "p1", "url": "https://cdn.example/p1.jpg"},
				{"type": "song", "id": "s1", "name": "Roads", "artist_name": "Portishead", "artwork_url": "https://cdn.example/roads.jpg", "color_hex": "#000000"},
				{"type": "hologram", "id": "h1"},
				{"type": "voice", "id": "v1", "url": "https://cdn.example/v1.m4a"}
			]
		},
		{"id": "r1", "username": "jon", "text": "finally", "created_at": "2024-05-14T18:31:00Z", "parent_id": "root"},
		{"id": "", "username": "ghost"},
		{"id": "r2", "username": "ana", "text": "who?", "parent_id": "not-here"}
	]
}`

func TestParseThread(t *testing.T) {
	b, err := parseThread([]byte(threadBody))
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())

	root, ok := b.Root()
	require.True(t, ok)
	assert.Equal(t, "root", root.ID)
	assert.Equal(t, "https://cdn.example/mira.jpg", root.AvatarRef)
	require.Len(t, root.Attachments(), 3, "unknown attachment types are skipped")

	song, ok := root.SongAttachment()
	require.True(t, ok)
	assert.Equal(t, "Roads", song.Name)
	assert.Equal(t, "Portishead", song.ArtistName)

	photos := root.PhotoAttachments()
	require.Len(t, photos, 1)
	assert.Equal(t, "https://cdn.example/p1.jpg", photos[0].URL)

	voice, ok := root.VoiceAttachment()
	require.True(t, ok)
	assert.Equal(t, "v1", voice.ID)

	parent, ok := b.Parent(1)
	require.True(t, ok)
	assert.Equal(t, "root", parent.ID)

	_, ok = b.Parent(2)
	assert.False(t, ok, "dangling parent survives decoding")
	assert.Equal(t, "not-here", b.At(2).ParentID)
	assert.True(t, b.At(2).CreatedAt.IsZero())
}

func TestParseAPIError(t *testing.T) {
	code, msg := parseAPIError([]byte(`{"error":{"code":"rate_limited","message":"slow down"}}`))
	assert.Equal(t, "rate_limited", code)
	assert.Equal(t, "slow down", msg)

	code, msg = parseAPIError([]byte(`<html>bad gateway</html>`))
	assert.Empty(t, code)
	assert.Empty(t, msg)
}
