package biome

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// parseFeedPage parses the user feed response.
func parseFeedPage(body []byte) (*Page, error) {
	var raw struct {
		Entries    []entryResult `json:"entries"`
		Pagination struct {
			CurrentPage int  `json:"current_page"`
			HasNextPage bool `json:"has_next_page"`
			NextPage    *int `json:"next_page"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal feed page: %w", err)
	}

	page := &Page{
		Entries: make([]Entry, 0, len(raw.Entries)),
		Pagination: Pagination{
			CurrentPage: raw.Pagination.CurrentPage,
			HasNextPage: raw.Pagination.HasNextPage,
			NextPage:    raw.Pagination.NextPage,
		},
	}
	for _, r := range raw.Entries {
		e, err := parseEntryResult(r)
		if err != nil {
			slog.Debug("skip entry parse error", slog.Any("error", err))
			continue
		}
		page.Entries = append(page.Entries, *e)
	}
	return page, nil
}

// parseThread parses an entry's reply thread into a Biome, keeping server order.
func parseThread(body []byte) (*Biome, error) {
	var raw struct {
		Entities []entityResult `json:"entities"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal thread: %w", err)
	}

	entities := make([]Entity, 0, len(raw.Entities))
	for _, r := range raw.Entities {
		e, err := parseEntityResult(r)
		if err != nil {
			slog.Debug("skip entity parse error", slog.Any("error", err))
			continue
		}
		entities = append(entities, e)
	}
	return NewBiome(entities), nil
}

// parseAPIError extracts the error envelope from a failed response.
func parseAPIError(body []byte) (code, message string) {
	var raw struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &raw) != nil {
		return "", ""
	}
	return raw.Error.Code, raw.Error.Message
}

// --- Wire types ---

type entryResult struct {
	ID                 string       `json:"id"`
	SoundID            string       `json:"sound_id"`
	Sound              *soundResult `json:"sound"`
	AuthorID           string       `json:"author_id"`
	Text               string       `json:"text"`
	Rating             float64      `json:"rating"`
	Loved              bool         `json:"loved"`
	Replay             bool         `json:"replay"`
	HeartCount         int          `json:"heart_count"`
	FlameCount         int          `json:"flame_count"`
	ThumbsDownCount    int          `json:"thumbs_down_count"`
	CreatedAt          string       `json:"created_at"`
	Author             authorResult `json:"author"`
	IsHeartTapped      bool         `json:"is_heart_tapped"`
	IsFlameTapped      bool         `json:"is_flame_tapped"`
	IsThumbsDownTapped bool         `json:"is_thumbs_down_tapped"`
}

type soundResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArtistName string `json:"artist_name"`
	ArtworkURL string `json:"artwork_url"`
	ColorHex   string `json:"color_hex"`
}

type authorResult struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type entityResult struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	AvatarURL   string            `json:"avatar_url"`
	Text        string            `json:"text"`
	CreatedAt   string            `json:"created_at"`
	ParentID    string            `json:"parent_id"`
	Attachments []json.RawMessage `json:"attachments"`
}

type attachmentResult struct {
	Type       AttachmentKind `json:"type"`
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	ArtworkURL string         `json:"artwork_url"`
	Name       string         `json:"name"`
	ArtistName string         `json:"artist_name"`
	ColorHex   string         `json:"color_hex"`
}

// --- Extraction helpers ---

func parseEntryResult(r entryResult) (*Entry, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("empty entry id")
	}

	e := &Entry{
		ID:              r.ID,
		SoundID:         r.SoundID,
		AuthorID:        r.AuthorID,
		Text:            r.Text,
		Rating:          r.Rating,
		Loved:           r.Loved,
		Replay:          r.Replay,
		HeartCount:      r.HeartCount,
		FlameCount:      r.FlameCount,
		ThumbsDownCount: r.ThumbsDownCount,
		CreatedAt:       parseTimestamp(r.CreatedAt),
		CreatedAtRaw:    r.CreatedAt,
		Author: UserSummary{
			ID:        r.Author.ID,
			Username:  r.Author.Username,
			AvatarURL: r.Author.AvatarURL,
		},
		Viewer: ViewerState{
			HeartTapped:      r.IsHeartTapped,
			FlameTapped:      r.IsFlameTapped,
			ThumbsDownTapped: r.IsThumbsDownTapped,
		},
	}
	if r.Sound != nil {
		e.Sound = &Sound{
			ID:         r.Sound.ID,
			Name:       r.Sound.Name,
			ArtistName: r.Sound.ArtistName,
			ArtworkURL: r.Sound.ArtworkURL,
			ColorHex:   r.Sound.ColorHex,
		}
		if e.SoundID == "" {
			e.SoundID = r.Sound.ID
		}
	}
	return e, nil
}

func parseEntityResult(r entityResult) (Entity, error) {
	if r.ID == "" {
		return Entity{}, fmt.Errorf("empty entity id")
	}

	var attachments []Attachment
	for _, rawAtt := range r.Attachments {
		a, err := parseAttachment(rawAtt)
		if err != nil {
			slog.Debug("skip attachment", slog.String("entity", r.ID), slog.Any("error", err))
			continue
		}
		attachments = append(attachments, a)
	}

	return NewEntity(r.ID, r.Username, r.AvatarURL, r.Text, parseTimestamp(r.CreatedAt),
		WithParent(r.ParentID),
		WithAttachments(attachments...),
	), nil
}

func parseAttachment(body json.RawMessage) (Attachment, error) {
	var r attachmentResult
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("unmarshal attachment: %w", err)
	}
	switch r.Type {
	case KindSong:
		return Song{ID: r.ID, ArtworkURL: r.ArtworkURL, Name: r.Name, ArtistName: r.ArtistName, ColorHex: r.ColorHex}, nil
	case KindPhoto:
		return Photo{ID: r.ID, URL: r.URL}, nil
	case KindVoice:
		return Voice{ID: r.ID, URL: r.URL}, nil
	}
	return nil, fmt.Errorf("unknown attachment type %q", r.Type)
}

// parseTimestamp accepts RFC 3339 with or without fractional seconds.
// Anything else yields the zero time.
func parseTimestamp(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		slog.Debug("unparseable timestamp", slog.String("value", v))
		return time.Time{}
	}
	return t
}
