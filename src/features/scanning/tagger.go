package scanning

import (
	"context"
)

// Tags is the subset of embedded metadata the catalog needs. A zero value
// means the field is absent from the file.
type Tags struct {
	Artist      string
	Album       string
	Year        int
	Title       string
	TrackNumber int
}

// HasAlbum reports whether artist, album and year are all present.
// The tag reader yields 0 for a missing year, so year 0 counts as absent.
func (t Tags) HasAlbum() bool {
	return t.Artist != "" && t.Album != "" && t.Year != 0
}

// HasTrack reports whether title and track number are both present.
func (t Tags) HasTrack() bool {
	return t.Title != "" && t.TrackNumber != 0
}

// TagReader is the interface for reading metadata from a music file.
type TagReader interface {
	ReadTags(ctx context.Context, filePath string) (Tags, error)
}
