// Package twitch is a minimal Twitch Helix client used to enrich stream
// announcements with profile data. It authenticates with an app access
// token obtained via the client-credentials flow, so tokens refresh
// themselves instead of expiring out from under the bot.
package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var ErrUserNotFound = errors.New("twitch user not found")

const (
	defaultBaseURL = "https://api.twitch.tv/helix"
	tokenURL       = "https://id.twitch.tv/oauth2/token"
	requestTimeout = 10 * time.Second
)

type User struct {
	ID              string `json:"id"`
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

type Client struct {
	clientID   string
	tokens     oauth2.TokenSource
	httpClient *http.Client
	baseURL    string
}

func NewClient(clientID, clientSecret string) *Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &Client{
		clientID:   clientID,
		tokens:     cfg.TokenSource(context.Background()),
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
	}
}

// UserByLogin resolves a Twitch login name to its profile.
func (c *Client) UserByLogin(ctx context.Context, login string) (*User, error) {
	if login == "" {
		return nil, fmt.Errorf("login is empty")
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain app token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("login", login)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("helix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("helix returned HTTP %d for login %s", resp.StatusCode, login)
	}

	var body struct {
		Data []User `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode helix response: %w", err)
	}
	if len(body.Data) == 0 {
		return nil, ErrUserNotFound
	}

	return &body.Data[0], nil
}

// PreviewURL returns the live stream thumbnail for a login. The CDN serves
// a placeholder image when the channel is offline, so this never needs an
// API call.
func PreviewURL(login string) string {
	return fmt.Sprintf("https://static-cdn.jtvnw.net/previews-ttv/live_user_%s-440x248.jpg", login)
}
