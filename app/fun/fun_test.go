package fun

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeVariantsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "variants.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadVariants(t *testing.T) {
	path := writeVariantsFile(t, `
variants:
  "115199971535355908":
    chance: 2
    message: "> Larry throws the d20 but it's too tiny to tell the result! :microscope:"
  "154027809587593216":
    chance: 2
    message: "> The d20 explodes into a million little pieces. :boom:"
`)

	table, err := LoadVariants(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	v, ok := table.Lookup("115199971535355908")
	if !ok || v.Chance != 2 {
		t.Errorf("unexpected variant %+v (ok=%v)", v, ok)
	}
	if !strings.Contains(v.Message, "microscope") {
		t.Errorf("unexpected message %q", v.Message)
	}
	if _, ok := table.Lookup("unknown"); ok {
		t.Error("expected no variant for an unconfigured user")
	}
}

func TestLoadVariants_MissingFileIsEmptyTable(t *testing.T) {
	table, err := LoadVariants(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("expected a missing file to load as empty, got %v", err)
	}
	if len(table.Variants) != 0 {
		t.Errorf("expected empty table, got %v", table.Variants)
	}
}

func TestLoadVariants_RejectsBadChance(t *testing.T) {
	path := writeVariantsFile(t, `
variants:
  "1":
    chance: 11
    message: "too eager"
`)

	if _, err := LoadVariants(path); err == nil {
		t.Fatal("expected chance outside 0-10 to be rejected")
	}
}

func TestRollMessage(t *testing.T) {
	table := &VariantTable{Variants: map[string]Variant{
		"larry": {Chance: 2, Message: "the d20 is too tiny"},
	}}

	tests := []struct {
		name   string
		userID string
		rolls  []int // d20 result, then variant roll if consulted
		want   string
	}{
		{
			name:   "NoVariantConfigured",
			userID: "someone",
			rolls:  []int{17},
			want:   "> tester rolled a **17**! :game_die:",
		},
		{
			name:   "VariantFires",
			userID: "larry",
			rolls:  []int{17, 1},
			want:   "the d20 is too tiny",
		},
		{
			name:   "VariantMisses",
			userID: "larry",
			rolls:  []int{17, 9},
			want:   "> tester rolled a **17**! :game_die:",
		},
		{
			name:   "VariantBoundary",
			userID: "larry",
			rolls:  []int{3, 2},
			want:   "the d20 is too tiny",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCommands(table, nil)
			calls := 0
			c.roll = func(sides int) int {
				v := tt.rolls[calls]
				calls++
				return v
			}

			if got := c.rollMessage(tt.userID, "tester"); got != tt.want {
				t.Errorf("rollMessage = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestRandomArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("generator") != "random" || q.Get("grnnamespace") != "0" {
			t.Errorf("unexpected query %v", q)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query":{"pages":[{
			"title":"Gorgonzola",
			"extract":"Gorgonzola is a blue cheese.",
			"images":[{"title":"File:Gorgonzola wheel.jpg"}]
		}]}}`))
	}))
	defer server.Close()

	client := NewWikiClient("TestAgent/1.0")
	client.baseURL = server.URL

	article, err := client.RandomArticle(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if article.Title != "Gorgonzola" {
		t.Errorf("unexpected title %q", article.Title)
	}
	if article.URL() != "https://en.wikipedia.org/wiki/Gorgonzola" {
		t.Errorf("unexpected url %q", article.URL())
	}
	want := "https://commons.wikimedia.org/wiki/Special:FilePath/File:Gorgonzola_wheel.jpg"
	if article.ImageURL() != want {
		t.Errorf("unexpected image url %q", article.ImageURL())
	}
}

func TestRandomArticle_NoImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query":{"pages":[{"title":"Obscure Topic","extract":"Short."}]}}`))
	}))
	defer server.Close()

	client := NewWikiClient("TestAgent/1.0")
	client.baseURL = server.URL

	article, err := client.RandomArticle(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if article.ImageURL() != "" {
		t.Errorf("expected no image url, got %q", article.ImageURL())
	}
}

func TestRandomArticle_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewWikiClient("TestAgent/1.0")
	client.baseURL = server.URL

	if _, err := client.RandomArticle(context.Background()); err == nil {
		t.Fatal("expected an error for HTTP 502")
	}
}
