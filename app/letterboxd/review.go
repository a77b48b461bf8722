package letterboxd

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	starFull  = "★"
	starHalf  = "½"
	starEmpty = "☆"

	maxReviewLength = 400
)

// Stars renders a 0-5 rating as five glyphs: floored full stars, a half-star
// glyph when the remainder is at least 0.5, empty stars for the rest.
// Ratings outside 0-5 are clamped so a malformed feed can't feed
// strings.Repeat a negative count.
func Stars(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(rating)
	half := rating-float64(full) >= 0.5
	empty := 5 - full
	if half {
		empty--
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(starFull, full))
	if half {
		b.WriteString(starHalf)
	}
	b.WriteString(strings.Repeat(starEmpty, empty))
	return b.String()
}

// ExtractReview pulls the free-text review out of an item's description
// markup. Paragraphs that are just the poster image or the "Watched on"
// caption are dropped; the rest is concatenated and truncated to a word
// boundary within the length budget.
func ExtractReview(description string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return ""
	}

	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if p.Find("img").Length() > 0 {
			return
		}
		text := strings.TrimSpace(p.Text())
		if text == "" || strings.HasPrefix(text, "Watched on") {
			return
		}
		parts = append(parts, text)
	})

	review := strings.Join(parts, "\n\n")
	return truncateAtWord(review, maxReviewLength)
}

// ExtractPosterURL returns the first embedded image reference, if any.
func ExtractPosterURL(description string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

func truncateAtWord(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
