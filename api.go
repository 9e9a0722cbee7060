package biome

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// FetchFeedPage fetches one page of a user's feed. It implements PageFetcher.
func (c *Client) FetchFeedPage(ctx context.Context, req FeedRequest) (*Page, error) {
	if req.Page < 1 {
		return nil, fmt.Errorf("UserFeed: invalid page %d", req.Page)
	}
	query := url.Values{
		"page":      {strconv.Itoa(req.Page)},
		"page_size": {strconv.Itoa(c.cfg.PageSize)},
	}
	if req.PageUserID != "" {
		query.Set("page_user_id", req.PageUserID)
	}
	ep, u, err := c.endpointURL("UserFeed", req.UserID, query)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, ep, u, nil)
	if err != nil {
		return nil, fmt.Errorf("UserFeed: %w", err)
	}
	return parseFeedPage(body)
}

// GetFeed walks a user's feed from the first page until it is exhausted or
// maxCount entries are collected. maxCount <= 0 means no limit. On error the
// entries fetched so far are returned with it.
func (c *Client) GetFeed(ctx context.Context, userID, pageUserID string, maxCount int) ([]Entry, error) {
	cursor := NewFeedCursor(c, userID, pageUserID)

	for cursor.CanLoadMore() {
		if maxCount > 0 && len(cursor.Entries()) >= maxCount {
			break
		}
		if err := cursor.FetchEntries(ctx); err != nil {
			return truncateEntries(cursor.Entries(), maxCount), err
		}
	}
	return truncateEntries(cursor.Entries(), maxCount), nil
}

// GetThread fetches the reply thread rooted at an entry.
func (c *Client) GetThread(ctx context.Context, entryID string) (*Biome, error) {
	ep, u, err := c.endpointURL("EntryThread", entryID, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, ep, u, nil)
	if err != nil {
		return nil, fmt.Errorf("EntryThread: %w", err)
	}
	return parseThread(body)
}

// DeleteEntry deletes one of the caller's entries.
func (c *Client) DeleteEntry(ctx context.Context, entryID string) error {
	ep, u, err := c.endpointURL("DeleteEntry", entryID, nil)
	if err != nil {
		return err
	}

	if _, err := c.do(ctx, ep, u, nil); err != nil {
		return fmt.Errorf("DeleteEntry: %w", err)
	}
	return nil
}

// React toggles a reaction on an entry.
func (c *Client) React(ctx context.Context, entryID string, reaction Reaction) error {
	if !reaction.Valid() {
		return fmt.Errorf("React: unknown reaction %q", reaction)
	}
	payload, err := json.Marshal(map[string]any{"reaction": reaction})
	if err != nil {
		return fmt.Errorf("marshal reaction: %w", err)
	}
	ep, u, err := c.endpointURL("React", entryID, nil)
	if err != nil {
		return err
	}

	if _, err := c.do(ctx, ep, u, payload); err != nil {
		return fmt.Errorf("React: %w", err)
	}
	return nil
}

func truncateEntries(entries []Entry, maxCount int) []Entry {
	if maxCount > 0 && len(entries) > maxCount {
		return entries[:maxCount]
	}
	return entries
}
