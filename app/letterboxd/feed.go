package letterboxd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// ErrProfileNotFound means the profile does not exist or is not public.
var ErrProfileNotFound = errors.New("letterboxd profile not found")

const (
	defaultBaseURL     = "https://letterboxd.com"
	fetchTimeout       = 15 * time.Second
	reviewGUIDPrefix   = "letterboxd-review-"
	extensionNamespace = "letterboxd"
)

// Entry is one parsed feed item. Lifetime is a single poll cycle; nothing
// here is persisted except the GUID, which becomes the watermark.
type Entry struct {
	GUID        string
	Link        string
	Title       string
	FilmTitle   string
	FilmYear    string
	Rating      *float64
	Rewatch     bool
	Description string
}

// Qualifies reports whether an entry should be announced: it carries a
// positive rating, or its identifier marks it as a review. Plain diary
// entries with neither are dropped silently.
func (e Entry) Qualifies() bool {
	if e.Rating != nil && *e.Rating > 0 {
		return true
	}
	return strings.HasPrefix(e.GUID, reviewGUIDPrefix)
}

// Fetcher retrieves and parses a profile's RSS feed. Items come back in feed
// order, which Letterboxd serves newest-first.
type Fetcher struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	userAgent  string
	baseURL    string
}

func NewFetcher(httpClient *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		userAgent:  userAgent,
		baseURL:    defaultBaseURL,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, username string) ([]Entry, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/rss/", f.baseURL, username)
	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProfileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	feed, err := f.parser.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, entryFromItem(item))
	}
	return entries, nil
}

func entryFromItem(item *gofeed.Item) Entry {
	e := Entry{
		GUID:        item.GUID,
		Link:        item.Link,
		Title:       item.Title,
		FilmTitle:   extensionValue(item, "filmTitle"),
		FilmYear:    extensionValue(item, "filmYear"),
		Rewatch:     extensionValue(item, "rewatch") == "Yes",
		Description: item.Description,
	}

	if text := extensionValue(item, "memberRating"); text != "" {
		if rating, err := strconv.ParseFloat(text, 64); err == nil {
			e.Rating = &rating
		}
	}

	return e
}

func extensionValue(item *gofeed.Item, name string) string {
	ext, ok := item.Extensions[extensionNamespace]
	if !ok {
		return ""
	}
	values, ok := ext[name]
	if !ok || len(values) == 0 {
		return ""
	}
	return values[0].Value
}
