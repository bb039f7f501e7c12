package music

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleTree(t *testing.T) *MusicTree {
	t.Helper()
	tree := NewMusicTree("/srv/music")
	for _, tr := range []struct {
		file, artist, album string
		year, n             int
		title               string
	}{
		{"/srv/music/a/1.mp3", "Artist", "Album", 2001, 1, "One"},
		{"/srv/music/a/3.mp3", "Artist", "Album", 2001, 3, "Three"},
		{"/srv/music/b/cover", "Other", "Live", 1977, 2, "No Extension"},
	} {
		if err := tree.AddTrack(tr.file, tr.artist, tr.album, tr.year, tr.n, tr.title); err != nil {
			t.Fatal(err)
		}
	}
	return tree
}

func TestMusicTree_JSONRoundTrip(t *testing.T) {
	tree := sampleTree(t)

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded := &MusicTree{}
	if err := json.Unmarshal(data, loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if loaded.Root() != tree.Root() {
		t.Errorf("expected root %q, got %q", tree.Root(), loaded.Root())
	}
	if !reflect.DeepEqual(loaded.artists, tree.artists) {
		t.Errorf("artists differ after round trip:\n got: %s", data)
	}
	if !strings.Contains(string(data), "null") {
		t.Error("expected holes to be serialized as null")
	}
}

func TestMusicTree_YAMLRoundTrip(t *testing.T) {
	tree := sampleTree(t)

	data, err := yaml.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded := &MusicTree{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if loaded.Root() != tree.Root() {
		t.Errorf("expected root %q, got %q", tree.Root(), loaded.Root())
	}
	if !reflect.DeepEqual(loaded.artists, tree.artists) {
		t.Errorf("artists differ after round trip:\n%s", data)
	}
}

func TestMusicTree_UnmarshalEmptyDocument(t *testing.T) {
	loaded := &MusicTree{}
	if err := json.Unmarshal([]byte(`{"root":"/x"}`), loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 0 || loaded.Root() != "/x" {
		t.Errorf("unexpected tree: len=%d root=%q", loaded.Len(), loaded.Root())
	}
	for range loaded.Tracks() {
		t.Error("expected no tracks")
	}
}

func TestMusicTree_JSONRejectsInvalidUTF8(t *testing.T) {
	latin1 := "/srv/music/caf\xe9.mp3"
	cases := map[string]func(*MusicTree) error{
		"source file": func(tree *MusicTree) error {
			return tree.AddTrack(latin1, "Artist", "Album", 2001, 1, "Cafe")
		},
		"artist": func(tree *MusicTree) error {
			return tree.AddTrack("/srv/music/a.mp3", "Beyonc\xe9", "Album", 2001, 1, "Song")
		},
		"album": func(tree *MusicTree) error {
			return tree.AddTrack("/srv/music/a.mp3", "Artist", "Caf\xe9", 2001, 1, "Song")
		},
	}
	for name, add := range cases {
		t.Run(name, func(t *testing.T) {
			tree := NewMusicTree("/srv/music")
			if err := add(tree); err != nil {
				t.Fatal(err)
			}
			if _, err := json.Marshal(tree); !errors.Is(err, ErrInvalidUTF8) {
				t.Errorf("expected ErrInvalidUTF8, got %v", err)
			}
		})
	}

	if _, err := json.Marshal(NewMusicTree("/srv/m\xfcsic")); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8 for the root, got %v", err)
	}
}
