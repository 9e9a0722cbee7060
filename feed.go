package biome

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// PageFetcher loads one page of a feed. *Client implements it.
type PageFetcher interface {
	FetchFeedPage(ctx context.Context, req FeedRequest) (*Page, error)
}

// FeedState is the pagination state of a FeedCursor.
type FeedState int

const (
	// StateIdle: not loading, more pages may exist.
	StateIdle FeedState = iota
	// StateLoading: a page fetch is in flight.
	StateLoading
	// StateExhausted: the server reported no further pages. Terminal.
	StateExhausted
	// StateErrored: the last fetch failed. Only Retry leaves this state.
	StateErrored
)

func (s FeedState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateExhausted:
		return "exhausted"
	case StateErrored:
		return "errored"
	}
	return fmt.Sprintf("FeedState(%d)", int(s))
}

// FeedCursor pages through one user's feed, appending each page in order.
// At most one fetch is in flight at a time; overlapping calls are dropped.
// A cursor is bound to a single (userID, pageUserID) pair.
type FeedCursor struct {
	fetcher    PageFetcher
	userID     string
	pageUserID string

	mu          sync.Mutex
	entries     []Entry
	state       FeedState
	currentPage int
	errMsg      string
	hasErr      bool
}

// NewFeedCursor creates a cursor positioned at page 1.
func NewFeedCursor(fetcher PageFetcher, userID, pageUserID string) *FeedCursor {
	return &FeedCursor{
		fetcher:     fetcher,
		userID:      userID,
		pageUserID:  pageUserID,
		state:       StateIdle,
		currentPage: 1,
	}
}

// FetchEntries loads the next page. It is a no-op returning nil while a fetch
// is in flight or once the cursor can no longer load.
//
// A failed fetch records the error message and stops pagination until Retry.
// If ctx is cancelled the result is discarded and the cursor stays where it was.
func (f *FeedCursor) FetchEntries(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return nil
	}
	f.state = StateLoading
	req := FeedRequest{UserID: f.userID, PageUserID: f.pageUserID, Page: f.currentPage}
	f.mu.Unlock()

	page, err := f.fetcher.FetchFeedPage(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if ctxErr := ctx.Err(); ctxErr != nil {
		f.state = StateIdle
		slog.Debug("feed fetch cancelled, discarding result", slog.String("user", f.userID), slog.Int("page", req.Page))
		return ctxErr
	}

	if err != nil {
		f.state = StateErrored
		f.errMsg = err.Error()
		f.hasErr = true
		slog.Warn("feed fetch failed", slog.String("user", f.userID), slog.Int("page", req.Page), slog.Any("error", err))
		return fmt.Errorf("fetch feed page %d: %w", req.Page, err)
	}

	if page == nil {
		page = &Page{}
	}
	f.entries = append(f.entries, page.Entries...)

	if sp := page.Pagination.CurrentPage; sp != 0 && sp != req.Page {
		slog.Warn("feed page drift", slog.String("user", f.userID), slog.Int("requested", req.Page), slog.Int("server", sp))
	}

	if !page.Pagination.HasNextPage {
		f.currentPage = req.Page + 1
		f.state = StateExhausted
		return nil
	}
	f.currentPage = nextPage(req.Page, page.Pagination.NextPage)
	f.state = StateIdle
	return nil
}

// Retry clears a fetch error and loads the page that failed.
// It returns ErrNotRetryable unless the cursor is in StateErrored.
func (f *FeedCursor) Retry(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateErrored {
		f.mu.Unlock()
		return ErrNotRetryable
	}
	f.state = StateIdle
	f.errMsg = ""
	f.hasErr = false
	f.mu.Unlock()

	return f.FetchEntries(ctx)
}

// RemoveEntry drops every entry with the given id, in any state.
func (f *FeedCursor) RemoveEntry(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = lo.Reject(f.entries, func(e Entry, _ int) bool {
		return e.ID == id
	})
}

// Entries returns a copy of the loaded entries in load order.
func (f *FeedCursor) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.entries)
}

// State returns the current pagination state.
func (f *FeedCursor) State() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// IsLoading reports whether a fetch is in flight.
func (f *FeedCursor) IsLoading() bool {
	return f.State() == StateLoading
}

// CanLoadMore reports whether further pages may be requested.
func (f *FeedCursor) CanLoadMore() bool {
	s := f.State()
	return s == StateIdle || s == StateLoading
}

// CurrentPage returns the page the next fetch will request.
func (f *FeedCursor) CurrentPage() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentPage
}

// ErrorMessage returns the last fetch error, if any.
func (f *FeedCursor) ErrorMessage() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg, f.hasErr
}

// nextPage prefers the server's next page and falls back to current+1 when it
// is missing or does not move forward.
func nextPage(current int, server *int) int {
	if server == nil {
		return current + 1
	}
	if *server <= current {
		slog.Warn("server next page does not advance, incrementing", slog.Int("current", current), slog.Int("server_next", *server))
		return current + 1
	}
	return *server
}
