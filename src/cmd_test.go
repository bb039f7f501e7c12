package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/contre95/musicrescue/src/features/indexing"
	"github.com/contre95/musicrescue/src/infra/database"
)

func writeTagged(t *testing.T, path, artist, album, year, title, track string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(3)
	tag.SetArtist(artist)
	tag.SetAlbum(album)
	tag.SetYear(year)
	tag.SetTitle(title)
	tag.AddTextFrame(tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, track)
	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	buf.Write(bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 32))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// musicDir lays out a small messy collection and returns its root.
func musicDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTagged(t, filepath.Join(root, "dl", "01.mp3"), "Artist", "X", "2001", "Song", "1")
	writeTagged(t, filepath.Join(root, "dl", "nested", "02.mp3"), "Artist", "X", "2001", "Next: Part?", "2")
	writeTagged(t, filepath.Join(root, "other.mp3"), "Other", "Y", "1999", "Alone", "1")
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not music"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("no extension"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestIndexThenRescue(t *testing.T) {
	root := musicDir(t)
	work := t.TempDir()
	index := filepath.Join(work, "rescue_index.json")
	out := filepath.Join(work, "out")

	stdout, err := run(t, "index", "--work-dir", root, "--out-index", index)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(stdout, "Rescued: 3") || !strings.Contains(stdout, "Errors: 2") {
		t.Errorf("unexpected index report:\n%s", stdout)
	}

	if _, err := run(t, "index", "--work-dir", root, "--out-index", index); err == nil {
		t.Error("expected index to refuse an existing index file")
	}

	stdout, err = run(t, "rescue", "--index", index, out)
	if err != nil {
		t.Fatalf("rescue: %v", err)
	}
	if !strings.Contains(stdout, "Rescued: 3") {
		t.Errorf("unexpected rescue report:\n%s", stdout)
	}
	for _, rel := range []string{
		filepath.Join("Artist", "2001 - X", "1 - Song.mp3"),
		filepath.Join("Artist", "2001 - X", "2 - Next Part.mp3"),
		filepath.Join("Other", "1999 - Y", "1 - Alone.mp3"),
	} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("expected %s to be rescued: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "dl", "01.mp3")); err != nil {
		t.Errorf("source must stay in place: %v", err)
	}

	stdout, err = run(t, "rescue", "--index", index, out)
	if err != nil {
		t.Fatalf("second rescue: %v", err)
	}
	if !strings.Contains(stdout, "Rescued: 0") || !strings.Contains(stdout, "Errors: 3") {
		t.Errorf("expected every destination to collide on a second run:\n%s", stdout)
	}
}

func TestRescue_LiveScan(t *testing.T) {
	root := musicDir(t)
	out := filepath.Join(t.TempDir(), "out")

	stdout, err := run(t, "rescue", "--work-dir", root, out)
	if err != nil {
		t.Fatalf("rescue: %v", err)
	}
	// scan and copy both count towards the tally
	if !strings.Contains(stdout, "Rescued: 6") {
		t.Errorf("unexpected report:\n%s", stdout)
	}
}

func TestRescue_RequiresOutDir(t *testing.T) {
	if _, err := run(t, "rescue", "--work-dir", t.TempDir()); err == nil {
		t.Error("expected an error without an output directory")
	}
}

func TestRescue_MissingRootIsFatal(t *testing.T) {
	if _, err := run(t, "rescue", "--work-dir", filepath.Join(t.TempDir(), "gone"), t.TempDir()); err == nil {
		t.Error("expected an error for a missing work directory")
	}
}

func TestExport(t *testing.T) {
	root := musicDir(t)
	work := t.TempDir()
	index := filepath.Join(work, "index.yaml")
	db := filepath.Join(work, "catalog.db")

	if _, err := run(t, "index", "--work-dir", root, "--out-index", index); err != nil {
		t.Fatalf("index: %v", err)
	}
	if _, err := indexing.ReadFile(index); err != nil {
		t.Fatalf("expected a readable YAML index: %v", err)
	}
	if _, err := run(t, "export", "--index", index, "--db", db); err != nil {
		t.Fatalf("export: %v", err)
	}

	catalog, err := database.NewSqliteCatalog(db)
	if err != nil {
		t.Fatal(err)
	}
	defer catalog.Close()
	if n, _ := catalog.GetTotalTracks(t.Context()); n != 3 {
		t.Errorf("expected 3 exported tracks, got %d", n)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var stdout bytes.Buffer
	cmd := newRootCmd(&stdout, &bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "config", "init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "rescue_index.json") {
		t.Errorf("expected default index path in config, got:\n%s", data)
	}
}

func TestIndex_RecordsAbsolutePaths(t *testing.T) {
	root := musicDir(t)
	work := t.TempDir()
	index := filepath.Join(work, "rescue_index.json")

	t.Chdir(filepath.Dir(root))
	if _, err := run(t, "index", "--work-dir", filepath.Base(root), "--out-index", index); err != nil {
		t.Fatalf("index: %v", err)
	}
	doc, err := indexing.ReadFile(index)
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(doc.Tree.Root()) {
		t.Fatalf("expected an absolute root, got %q", doc.Tree.Root())
	}
	for info := range doc.Tree.Tracks() {
		if info.Track != nil && !filepath.IsAbs(info.Track.SourceFile) {
			t.Errorf("expected an absolute source file, got %q", info.Track.SourceFile)
		}
	}

	// the index must still work from an unrelated directory
	t.Chdir(work)
	if _, err := run(t, "rescue", "--index", index, "out"); err != nil {
		t.Fatalf("rescue from another directory: %v", err)
	}
	if _, err := os.Stat(filepath.Join(work, "out", "Artist", "2001 - X", "1 - Song.mp3")); err != nil {
		t.Errorf("expected the track to be rescued: %v", err)
	}
}

func TestIndex_DefaultsToCurrentDirectory(t *testing.T) {
	root := musicDir(t)
	index := filepath.Join(t.TempDir(), "rescue_index.json")

	t.Chdir(root)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "index", "--out-index", index); err != nil {
		t.Fatalf("index: %v", err)
	}
	doc, err := indexing.ReadFile(index)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Tree.Root() != cwd {
		t.Errorf("expected root %q, got %q", cwd, doc.Tree.Root())
	}
}
