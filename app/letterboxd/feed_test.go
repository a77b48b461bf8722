package letterboxd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:letterboxd="https://letterboxd.com" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Letterboxd - moviefan</title>
<item>
<title>Heat, 1995 - ★★★★½</title>
<link>https://letterboxd.com/moviefan/film/heat/</link>
<guid isPermaLink="false">letterboxd-review-200</guid>
<letterboxd:filmTitle>Heat</letterboxd:filmTitle>
<letterboxd:filmYear>1995</letterboxd:filmYear>
<letterboxd:memberRating>4.5</letterboxd:memberRating>
<letterboxd:rewatch>Yes</letterboxd:rewatch>
<description><![CDATA[<p><img src="https://a.ltrbxd.com/heat.jpg"/></p><p>Pacino and De Niro.</p>]]></description>
</item>
<item>
<title>Alien, 1979</title>
<link>https://letterboxd.com/moviefan/film/alien/</link>
<guid isPermaLink="false">letterboxd-watch-100</guid>
<letterboxd:filmTitle>Alien</letterboxd:filmTitle>
<letterboxd:filmYear>1979</letterboxd:filmYear>
<letterboxd:rewatch>No</letterboxd:rewatch>
<description><![CDATA[<p><img src="https://a.ltrbxd.com/alien.jpg"/></p><p>Watched on Tuesday.</p>]]></description>
</item>
</channel>
</rss>`

func TestFetcher_ParsesEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/moviefan/rss/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "ImpBot/test" {
			t.Errorf("unexpected user agent %q", ua)
		}
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client(), "ImpBot/test")
	fetcher.baseURL = srv.URL

	entries, err := fetcher.Fetch(context.Background(), "moviefan")
	if err != nil {
		t.Fatalf("failed to fetch feed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.GUID != "letterboxd-review-200" {
		t.Errorf("expected newest entry first, got guid %q", first.GUID)
	}
	if first.FilmTitle != "Heat" || first.FilmYear != "1995" {
		t.Errorf("expected film metadata Heat/1995, got %q/%q", first.FilmTitle, first.FilmYear)
	}
	if first.Rating == nil || *first.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", first.Rating)
	}
	if !first.Rewatch {
		t.Error("expected rewatch flag to be set")
	}

	second := entries[1]
	if second.Rating != nil {
		t.Errorf("expected no rating for plain watch entry, got %v", *second.Rating)
	}
	if second.Rewatch {
		t.Error("expected rewatch flag to be unset")
	}
}

func TestFetcher_ProfileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client(), "ImpBot/test")
	fetcher.baseURL = srv.URL

	_, err := fetcher.Fetch(context.Background(), "ghost")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestFetcher_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client(), "ImpBot/test")
	fetcher.baseURL = srv.URL

	_, err := fetcher.Fetch(context.Background(), "moviefan")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if errors.Is(err, ErrProfileNotFound) {
		t.Error("server errors must stay distinguishable from a missing profile")
	}
}

func TestFetcher_MalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not xml"))
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client(), "ImpBot/test")
	fetcher.baseURL = srv.URL

	if _, err := fetcher.Fetch(context.Background(), "moviefan"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
