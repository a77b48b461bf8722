package player

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".flac": true,
	".m4a":  true,
}

// Library reads albums from a local directory tree: each immediate
// subdirectory is an album, and its audio files are the tracks.
type Library struct {
	dir string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Albums lists the album names, sorted. A missing library directory is
// treated as an empty library, not an error.
func (l *Library) Albums() []string {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil
	}

	var albums []string
	for _, entry := range entries {
		if entry.IsDir() {
			albums = append(albums, entry.Name())
		}
	}
	sort.Strings(albums)
	return albums
}

// Tracks returns the full paths of an album's audio files in name order,
// which is the intended playback order for numbered track files.
func (l *Library) Tracks(album string) []string {
	// The album name comes from user input; keep lookups inside the
	// library directory.
	if album != filepath.Base(album) {
		return nil
	}

	entries, err := os.ReadDir(filepath.Join(l.dir, album))
	if err != nil {
		return nil
	}

	var tracks []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			tracks = append(tracks, filepath.Join(l.dir, album, entry.Name()))
		}
	}
	sort.Strings(tracks)
	return tracks
}
