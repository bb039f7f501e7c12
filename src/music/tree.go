package music

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrSlotTaken is returned when a track number is already occupied in an album.
	ErrSlotTaken = errors.New("track slot already taken")
	// ErrInvalidTrackNumber is returned for track numbers lower than 1.
	ErrInvalidTrackNumber = errors.New("track number must be positive")
)

// MusicTree is the in-memory catalog of a scanned directory: artist name to
// artist, artist to albums, album to sparse track slots.
type MusicTree struct {
	artists    map[string]*Artist
	root       string
	asciiPaths bool
}

// Option configures a MusicTree.
type Option func(*MusicTree)

// WithASCIIPaths transliterates destination path components to ASCII.
func WithASCIIPaths() Option {
	return func(t *MusicTree) { t.asciiPaths = true }
}

// NewMusicTree creates an empty catalog for the given scan root.
func NewMusicTree(root string, opts ...Option) *MusicTree {
	t := &MusicTree{
		artists: make(map[string]*Artist),
		root:    root,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the scan root the catalog was built from.
func (t *MusicTree) Root() string {
	return t.root
}

// Artist returns the artist with the given name.
func (t *MusicTree) Artist(name string) (*Artist, bool) {
	artist, ok := t.artists[name]
	return artist, ok
}

// ArtistNames returns all artist names sorted.
func (t *MusicTree) ArtistNames() []string {
	return slices.Sorted(maps.Keys(t.artists))
}

// Len returns the number of artists in the catalog.
func (t *MusicTree) Len() int {
	return len(t.artists)
}

// AddTrack records a track in its (artist, album, track number) slot. The
// destination path is computed here, once. A second track for the same slot
// is rejected with ErrSlotTaken and the first one is kept.
func (t *MusicTree) AddTrack(file, artistName, albumTitle string, year, trackNumber int, title string) error {
	if trackNumber < 1 {
		return fmt.Errorf("%w: got %d for %s", ErrInvalidTrackNumber, trackNumber, file)
	}
	destination, _ := DestinationPath(file, artistName, albumTitle, year, trackNumber, title, t.asciiPaths)

	artist, ok := t.artists[artistName]
	if !ok {
		artist = NewArtist()
		t.artists[artistName] = artist
	}
	if artist.Albums == nil {
		artist.Albums = make(map[string]*Album)
	}
	album, ok := artist.Albums[albumTitle]
	if !ok {
		album = NewAlbum(year)
		artist.Albums[albumTitle] = album
	}
	album.grow(trackNumber)

	slot := &album.Tracks[trackNumber-1]
	if *slot != nil {
		return fmt.Errorf("%w: %s / %s #%d", ErrSlotTaken, artistName, albumTitle, trackNumber)
	}
	*slot = &Track{
		Title:           title,
		SourceFile:      file,
		DestinationFile: destination,
	}
	return nil
}
