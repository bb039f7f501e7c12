package music

// Album holds the tracks of a release. Tracks is indexed by track number - 1
// and may contain nil holes for numbers that were never recorded.
type Album struct {
	Year   int      `json:"year" yaml:"year"`
	Tracks []*Track `json:"tracks" yaml:"tracks"`
}

// NewAlbum creates an empty album released in year.
func NewAlbum(year int) *Album {
	return &Album{Year: year, Tracks: []*Track{}}
}

// Track returns the track stored at the 1-based track number, or nil.
func (a *Album) Track(number int) *Track {
	if a == nil || number < 1 || number > len(a.Tracks) {
		return nil
	}
	return a.Tracks[number-1]
}

// grow extends the tracks slice with holes until it has at least n slots.
func (a *Album) grow(n int) {
	if len(a.Tracks) >= n {
		return
	}
	a.Tracks = append(a.Tracks, make([]*Track, n-len(a.Tracks))...)
}
