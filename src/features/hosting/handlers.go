package hosting

import (
	"cmp"
	"slices"

	"github.com/contre95/musicrescue/src/music"
	"github.com/gofiber/fiber/v2"
)

type artistSummary struct {
	Name   string `json:"name"`
	Albums int    `json:"albums"`
}

type trackView struct {
	Artist          string `json:"artist"`
	Album           string `json:"album"`
	Year            int    `json:"year"`
	Number          int    `json:"number"`
	Title           string `json:"title"`
	SourceFile      string `json:"source_file"`
	DestinationFile string `json:"destination_file,omitempty"`
}

type albumView struct {
	Title  string      `json:"title"`
	Year   int         `json:"year"`
	Tracks []trackView `json:"tracks"`
}

type artistView struct {
	Name   string      `json:"name"`
	Albums []albumView `json:"albums"`
}

// Handler serves the read-only catalog endpoints.
type Handler struct {
	catalog *Catalog
}

// NewHandler creates a handler over catalog.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListArtists returns every artist with its album count, sorted by name.
func (h *Handler) ListArtists(c *fiber.Ctx) error {
	tree := h.catalog.Tree()
	artists := make([]artistSummary, 0, tree.Len())
	for _, name := range tree.ArtistNames() {
		artist, _ := tree.Artist(name)
		if artist == nil {
			continue
		}
		artists = append(artists, artistSummary{Name: name, Albums: len(artist.Albums)})
	}
	return c.JSON(fiber.Map{"root": tree.Root(), "artists": artists})
}

// GetArtist returns one artist with its albums and recorded tracks.
func (h *Handler) GetArtist(c *fiber.Ctx) error {
	name := c.Params("name")
	artist, ok := h.catalog.Tree().Artist(name)
	if !ok || artist == nil {
		return fiber.NewError(fiber.StatusNotFound, "artist not found: "+name)
	}

	view := artistView{Name: name, Albums: make([]albumView, 0, len(artist.Albums))}
	for title, album := range artist.Albums {
		if album == nil {
			continue
		}
		view.Albums = append(view.Albums, newAlbumView(name, title, album))
	}
	slices.SortFunc(view.Albums, func(a, b albumView) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Title, b.Title))
	})
	return c.JSON(view)
}

// GetAlbum returns one album of an artist with its recorded tracks.
func (h *Handler) GetAlbum(c *fiber.Ctx) error {
	name, title := c.Params("name"), c.Params("album")
	artist, ok := h.catalog.Tree().Artist(name)
	if !ok || artist == nil {
		return fiber.NewError(fiber.StatusNotFound, "artist not found: "+name)
	}
	album, ok := artist.Album(title)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "album not found: "+title)
	}
	return c.JSON(newAlbumView(name, title, album))
}

// ListTracks returns every recorded track. The missing_destination query
// flag restricts the list to tracks that would not be rescued.
func (h *Handler) ListTracks(c *fiber.Ctx) error {
	onlyMissing := c.QueryBool("missing_destination")
	tracks := []trackView{}
	for info := range h.catalog.Tree().Tracks() {
		if info.Track == nil {
			continue
		}
		if onlyMissing && info.Track.HasDestination() {
			continue
		}
		tracks = append(tracks, newTrackView(info.ArtistName, info.AlbumTitle, info.Album.Year, info.TrackNumber, info.Track))
	}
	slices.SortFunc(tracks, func(a, b trackView) int {
		return cmp.Or(
			cmp.Compare(a.Artist, b.Artist),
			cmp.Compare(a.Album, b.Album),
			cmp.Compare(a.Number, b.Number),
		)
	})
	return c.JSON(fiber.Map{"count": len(tracks), "tracks": tracks})
}

func newAlbumView(artist, title string, album *music.Album) albumView {
	view := albumView{Title: title, Year: album.Year, Tracks: []trackView{}}
	for number := 1; number <= len(album.Tracks); number++ {
		if track := album.Track(number); track != nil {
			view.Tracks = append(view.Tracks, newTrackView(artist, title, album.Year, number, track))
		}
	}
	return view
}

func newTrackView(artist, album string, year, number int, track *music.Track) trackView {
	return trackView{
		Artist:          artist,
		Album:           album,
		Year:            year,
		Number:          number,
		Title:           track.Title,
		SourceFile:      track.SourceFile,
		DestinationFile: track.DestinationFile,
	}
}
