package music

// Artist maps album titles to albums.
type Artist struct {
	Albums map[string]*Album `json:"albums" yaml:"albums"`
}

// NewArtist creates an artist without albums.
func NewArtist() *Artist {
	return &Artist{Albums: make(map[string]*Album)}
}

// Album returns the album with the given title. A nil album stored under
// title is reported as missing.
func (a *Artist) Album(title string) (*Album, bool) {
	if a == nil {
		return nil, false
	}
	album, ok := a.Albums[title]
	return album, ok && album != nil
}
