package letterboxd

import (
	"strings"
	"testing"
)

func TestStars(t *testing.T) {
	cases := []struct {
		rating   float64
		expected string
	}{
		{0.5, "½☆☆☆☆"},
		{1.0, "★☆☆☆☆"},
		{2.5, "★★½☆☆"},
		{3.5, "★★★½☆"},
		{4.0, "★★★★☆"},
		{4.5, "★★★★½"},
		{5.0, "★★★★★"},
		// out-of-range feed values clamp instead of panicking
		{-1.0, "☆☆☆☆☆"},
		{6.0, "★★★★★"},
		{10.0, "★★★★★"},
	}

	for _, c := range cases {
		got := Stars(c.rating)
		if got != c.expected {
			t.Errorf("Stars(%v) = %q, expected %q", c.rating, got, c.expected)
		}
		if n := len([]rune(got)); n != 5 {
			t.Errorf("Stars(%v) rendered %d glyphs, expected 5", c.rating, n)
		}
	}
}

func TestExtractReview_SkipsImageAndWatchedCaption(t *testing.T) {
	description := `<p><img src="https://a.ltrbxd.com/resized/poster.jpg"/></p>` +
		`<p>Watched on Saturday March 1, 2025.</p>` +
		`<p>An absolute <em>masterpiece</em> of pacing.</p>` +
		`<p>Second paragraph here.</p>`

	got := ExtractReview(description)
	expected := "An absolute masterpiece of pacing.\n\nSecond paragraph here."
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestExtractReview_NoReviewBody(t *testing.T) {
	description := `<p><img src="https://a.ltrbxd.com/poster.jpg"/></p>` +
		`<p>Watched on Friday February 28, 2025.</p>`

	if got := ExtractReview(description); got != "" {
		t.Errorf("expected empty review, got %q", got)
	}
}

func TestExtractReview_TruncatesAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 120) // 600 chars
	got := ExtractReview("<p>" + strings.TrimSpace(long) + "</p>")

	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated review to end with ellipsis, got %q", got[len(got)-10:])
	}
	if len([]rune(got)) > maxReviewLength+3 {
		t.Errorf("review exceeds budget: %d runes", len([]rune(got)))
	}
	body := strings.TrimSuffix(got, "...")
	if strings.HasSuffix(body, " ") || !strings.HasSuffix(body, "word") {
		t.Errorf("expected truncation aligned to a word boundary, got %q", body[len(body)-10:])
	}
}

func TestExtractPosterURL(t *testing.T) {
	description := `<p><img src="https://a.ltrbxd.com/resized/poster.jpg"/></p><p>Review text.</p>`
	if got := ExtractPosterURL(description); got != "https://a.ltrbxd.com/resized/poster.jpg" {
		t.Errorf("expected poster URL, got %q", got)
	}

	if got := ExtractPosterURL("<p>No image here.</p>"); got != "" {
		t.Errorf("expected empty poster URL, got %q", got)
	}
}

func TestEntryQualifies(t *testing.T) {
	rating := func(v float64) *float64 { return &v }

	cases := []struct {
		name     string
		entry    Entry
		expected bool
	}{
		{"positive rating", Entry{GUID: "letterboxd-watch-1", Rating: rating(3.5)}, true},
		{"review guid without rating", Entry{GUID: "letterboxd-review-2"}, true},
		{"no rating plain watch", Entry{GUID: "letterboxd-watch-3"}, false},
		{"zero rating", Entry{GUID: "letterboxd-watch-4", Rating: rating(0)}, false},
	}

	for _, c := range cases {
		if got := c.entry.Qualifies(); got != c.expected {
			t.Errorf("%s: Qualifies() = %v, expected %v", c.name, got, c.expected)
		}
	}
}
