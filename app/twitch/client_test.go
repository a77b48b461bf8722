package twitch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		clientID:   "test-client-id",
		tokens:     oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
	}
}

func TestUserByLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("login"); got != "streamer" {
			t.Errorf("unexpected login query %q", got)
		}
		if got := r.Header.Get("Client-Id"); got != "test-client-id" {
			t.Errorf("unexpected Client-Id header %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected Authorization header %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"123","login":"streamer","display_name":"Streamer",` +
			`"profile_image_url":"https://cdn.example/streamer.png"}]}`))
	}))
	defer server.Close()

	user, err := newTestClient(server.URL).UserByLogin(context.Background(), "streamer")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if user.ID != "123" || user.DisplayName != "Streamer" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.ProfileImageURL != "https://cdn.example/streamer.png" {
		t.Errorf("unexpected profile image %q", user.ProfileImageURL)
	}
}

func TestUserByLogin_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).UserByLogin(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserByLogin_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).UserByLogin(context.Background(), "streamer")
	if err == nil {
		t.Fatal("expected an error for HTTP 401")
	}
	if errors.Is(err, ErrUserNotFound) {
		t.Error("HTTP errors must stay distinguishable from a missing user")
	}
}

func TestUserByLogin_EmptyLogin(t *testing.T) {
	if _, err := newTestClient("http://unused").UserByLogin(context.Background(), ""); err == nil {
		t.Fatal("expected an error for an empty login")
	}
}

func TestPreviewURL(t *testing.T) {
	want := "https://static-cdn.jtvnw.net/previews-ttv/live_user_streamer-440x248.jpg"
	if got := PreviewURL("streamer"); got != want {
		t.Errorf("PreviewURL = %q, expected %q", got, want)
	}
}
