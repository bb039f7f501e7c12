package hosting

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/contre95/musicrescue/src/features/config"
	"github.com/contre95/musicrescue/src/features/metrics"
	"github.com/contre95/musicrescue/src/features/reporting"
	"github.com/contre95/musicrescue/src/music"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	tree := music.NewMusicTree("/music")
	add := func(file, artist, album string, year, n int, title string) {
		if err := tree.AddTrack(file, artist, album, year, n, title); err != nil {
			t.Fatal(err)
		}
	}
	add("/music/a.mp3", "Π☺", "X", 2001, 2, "Second")
	add("/music/b.mp3", "Π☺", "X", 2001, 1, "First")
	add("/music/c.mp3", "Π☺", "Early", 1990, 1, "Old")
	add("/music/bare", "Zed", "Y", 2010, 1, "NoExt")

	collector := metrics.NewCollector()
	collector.Reporter(metrics.PhaseScan).Error(reporting.KindUnreadable, "/music/x")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(config.Default(), NewCatalog(tree), collector, logger)
}

func getJSON(t *testing.T, s *Server, target string, wantStatus int, out any) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: expected status %d, got %d", target, wantStatus, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: decode: %v", target, err)
		}
	}
}

func TestHealth(t *testing.T) {
	resp, err := testServer(t).App().Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "OK" {
		t.Errorf("unexpected health response %d %q", resp.StatusCode, body)
	}
}

func TestListArtists(t *testing.T) {
	var got struct {
		Root    string          `json:"root"`
		Artists []artistSummary `json:"artists"`
	}
	getJSON(t, testServer(t), "/artists", 200, &got)

	if got.Root != "/music" {
		t.Errorf("expected root /music, got %q", got.Root)
	}
	if len(got.Artists) != 2 {
		t.Fatalf("expected 2 artists, got %+v", got.Artists)
	}
	if got.Artists[0].Name != "Zed" || got.Artists[1].Albums != 2 {
		t.Errorf("expected artists sorted by name with album counts, got %+v", got.Artists)
	}
}

func TestGetArtist(t *testing.T) {
	var got artistView
	getJSON(t, testServer(t), "/artists/"+url.PathEscape("Π☺"), 200, &got)

	if len(got.Albums) != 2 {
		t.Fatalf("expected 2 albums, got %+v", got.Albums)
	}
	if got.Albums[0].Title != "Early" {
		t.Errorf("expected albums ordered by year, got %+v", got.Albums)
	}
	x := got.Albums[1]
	if len(x.Tracks) != 2 || x.Tracks[0].Title != "First" || x.Tracks[1].Number != 2 {
		t.Errorf("unexpected tracks %+v", x.Tracks)
	}
	if !strings.HasSuffix(x.Tracks[0].DestinationFile, "1 - First.mp3") {
		t.Errorf("unexpected destination %q", x.Tracks[0].DestinationFile)
	}
}

func TestGetArtist_NotFound(t *testing.T) {
	var got map[string]string
	getJSON(t, testServer(t), "/artists/nobody", 404, &got)
	if !strings.Contains(got["error"], "nobody") {
		t.Errorf("expected error to name the artist, got %v", got)
	}
}

func TestListTracks(t *testing.T) {
	var got struct {
		Count  int         `json:"count"`
		Tracks []trackView `json:"tracks"`
	}
	s := testServer(t)
	getJSON(t, s, "/tracks", 200, &got)
	if got.Count != 4 {
		t.Errorf("expected 4 tracks, got %d", got.Count)
	}

	getJSON(t, s, "/tracks?missing_destination=true", 200, &got)
	if got.Count != 1 || got.Tracks[0].Title != "NoExt" {
		t.Errorf("expected only the track without destination, got %+v", got.Tracks)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	resp, err := testServer(t).App().Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `musicrescue_errors_total{kind="unreadable",phase="scan"} 1`) {
		t.Errorf("expected the error counter in /metrics output, got:\n%s", body)
	}
}

func TestCatalogSet(t *testing.T) {
	catalog := NewCatalog(music.NewMusicTree("/a"))
	catalog.Set(music.NewMusicTree("/b"))
	if catalog.Tree().Root() != "/b" {
		t.Errorf("expected the published tree, got %s", catalog.Tree().Root())
	}
}

func TestGetAlbum(t *testing.T) {
	s := testServer(t)
	var got albumView
	getJSON(t, s, "/artists/"+url.PathEscape("Π☺")+"/albums/X", 200, &got)
	if got.Year != 2001 || len(got.Tracks) != 2 || got.Tracks[0].Number != 1 || got.Tracks[1].Title != "Second" {
		t.Errorf("unexpected album %+v", got)
	}
	getJSON(t, s, "/artists/"+url.PathEscape("Π☺")+"/albums/Nope", 404, nil)
	getJSON(t, s, "/artists/nobody/albums/X", 404, nil)
}

func TestHandEditedIndexWithNullEntries(t *testing.T) {
	raw := `{"root":"/","artists":{
		"Ghost":null,
		"Half":{"albums":{"Lost":null,"Kept":{"year":2000,"tracks":[{"title":"t","source_file":"/t.mp3"}]}}}
	}}`
	tree := &music.MusicTree{}
	if err := json.Unmarshal([]byte(raw), tree); err != nil {
		t.Fatal(err)
	}
	s := NewServer(config.Default(), NewCatalog(tree), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var artists struct {
		Artists []artistSummary `json:"artists"`
	}
	getJSON(t, s, "/artists", 200, &artists)
	if len(artists.Artists) != 1 || artists.Artists[0].Name != "Half" {
		t.Errorf("expected only the non-null artist, got %+v", artists.Artists)
	}

	getJSON(t, s, "/artists/Ghost", 404, nil)

	var half artistView
	getJSON(t, s, "/artists/Half", 200, &half)
	if len(half.Albums) != 1 || half.Albums[0].Title != "Kept" {
		t.Errorf("expected only the non-null album, got %+v", half.Albums)
	}
	getJSON(t, s, "/artists/Half/albums/Lost", 404, nil)

	var tracks struct {
		Count int `json:"count"`
	}
	getJSON(t, s, "/tracks", 200, &tracks)
	if tracks.Count != 1 {
		t.Errorf("expected 1 track, got %d", tracks.Count)
	}
}
