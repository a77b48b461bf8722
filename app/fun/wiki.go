package fun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultWikiBaseURL = "https://en.wikipedia.org/w/api.php"
	wikiTimeout        = 10 * time.Second
)

// Article is a random Wikipedia article with enough data for an embed.
type Article struct {
	Title     string
	Extract   string
	ImageName string // first image title, e.g. "File:Foo.jpg"
}

// URL is the canonical article link.
func (a Article) URL() string {
	return "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(a.Title, " ", "_")
}

// ImageURL resolves the article's first image through the Commons file
// redirector, or "" when the article has none.
func (a Article) ImageURL() string {
	if a.ImageName == "" {
		return ""
	}
	return "https://commons.wikimedia.org/wiki/Special:FilePath/" +
		strings.ReplaceAll(a.ImageName, " ", "_")
}

// WikiClient fetches random articles from the MediaWiki action API.
type WikiClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewWikiClient(userAgent string) *WikiClient {
	return &WikiClient{
		httpClient: &http.Client{Timeout: wikiTimeout},
		baseURL:    defaultWikiBaseURL,
		userAgent:  userAgent,
	}
}

// RandomArticle fetches one random main-namespace, non-redirect article
// with its intro extract and first image.
func (c *WikiClient) RandomArticle(ctx context.Context) (*Article, error) {
	params := url.Values{
		"action":          {"query"},
		"format":          {"json"},
		"formatversion":   {"2"},
		"generator":       {"random"},
		"grnnamespace":    {"0"},
		"grnfilterredir":  {"nonredirects"},
		"grnlimit":        {"1"},
		"prop":            {"images|description|extracts"},
		"imlimit":         {"1"},
		"exlimit":         {"1"},
		"exintro":         {"1"},
		"explaintext":     {"1"},
		"exsectionformat": {"plain"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Query struct {
			Pages []struct {
				Title   string `json:"title"`
				Extract string `json:"extract"`
				Images  []struct {
					Title string `json:"title"`
				} `json:"images"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode wikipedia response: %w", err)
	}
	if len(body.Query.Pages) == 0 {
		return nil, fmt.Errorf("wikipedia returned no pages")
	}

	page := body.Query.Pages[0]
	article := &Article{Title: page.Title, Extract: page.Extract}
	if len(page.Images) > 0 {
		article.ImageName = page.Images[0].Title
	}
	return article, nil
}
