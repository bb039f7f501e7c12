package music

import "iter"

// TrackInfo is one (artist, album, slot) position of the catalog. Track is
// nil for slots that were never recorded.
type TrackInfo struct {
	ArtistName  string
	Artist      *Artist
	AlbumTitle  string
	Album       *Album
	TrackNumber int
	Track       *Track
}

// ArtistInfo is one artist of the catalog.
type ArtistInfo struct {
	ArtistName string
	Artist     *Artist
}

// TrackIterator walks every slot of every album of every artist. Artist and
// album order follow map iteration; track numbers ascend within an album.
// Empty artists and albums are skipped.
type TrackIterator struct {
	tree *MusicTree

	artistNames []string
	artistPos   int
	artistName  string
	artist      *Artist

	albumTitles []string
	albumPos    int
	albumTitle  string
	album       *Album

	trackPos int
}

// TrackIter returns a fresh iterator over all track slots.
func (t *MusicTree) TrackIter() *TrackIterator {
	names := make([]string, 0, len(t.artists))
	for name := range t.artists {
		names = append(names, name)
	}
	return &TrackIterator{tree: t, artistNames: names}
}

// Next returns the next slot, or false once the catalog is exhausted.
func (it *TrackIterator) Next() (TrackInfo, bool) {
	for {
		if it.album != nil && it.trackPos < len(it.album.Tracks) {
			it.trackPos++
			return TrackInfo{
				ArtistName:  it.artistName,
				Artist:      it.artist,
				AlbumTitle:  it.albumTitle,
				Album:       it.album,
				TrackNumber: it.trackPos,
				Track:       it.album.Tracks[it.trackPos-1],
			}, true
		}
		if it.artist != nil && it.albumPos < len(it.albumTitles) {
			it.albumTitle = it.albumTitles[it.albumPos]
			it.albumPos++
			it.album = it.artist.Albums[it.albumTitle]
			it.trackPos = 0
			continue
		}
		if it.artistPos < len(it.artistNames) {
			it.artistName = it.artistNames[it.artistPos]
			it.artistPos++
			it.artist = it.tree.artists[it.artistName]
			it.albumTitles = it.albumTitles[:0]
			if it.artist != nil {
				for title := range it.artist.Albums {
					it.albumTitles = append(it.albumTitles, title)
				}
			}
			it.albumPos = 0
			it.album = nil
			continue
		}
		it.artist, it.album = nil, nil
		return TrackInfo{}, false
	}
}

// Tracks yields every track slot, holes included.
func (t *MusicTree) Tracks() iter.Seq[TrackInfo] {
	return func(yield func(TrackInfo) bool) {
		it := t.TrackIter()
		for {
			info, ok := it.Next()
			if !ok || !yield(info) {
				return
			}
		}
	}
}

// Artists yields every artist once.
func (t *MusicTree) Artists() iter.Seq[ArtistInfo] {
	return func(yield func(ArtistInfo) bool) {
		for name, artist := range t.artists {
			if !yield(ArtistInfo{ArtistName: name, Artist: artist}) {
				return
			}
		}
	}
}
