package music

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// treeSnapshot is the serialized form of a MusicTree.
type treeSnapshot struct {
	Artists map[string]*Artist `json:"artists" yaml:"artists"`
	Root    string             `json:"root" yaml:"root"`
}

func (t *MusicTree) snapshot() treeSnapshot {
	return treeSnapshot{Artists: t.artists, Root: t.root}
}

func (t *MusicTree) restore(s treeSnapshot) {
	t.artists = s.Artists
	if t.artists == nil {
		t.artists = make(map[string]*Artist)
	}
	t.root = s.Root
}

// ErrInvalidUTF8 is returned when a path or name can't be stored in JSON
// without being altered.
var ErrInvalidUTF8 = errors.New("not valid UTF-8")

// checkUTF8 reports the first root, name or path that JSON would rewrite.
func (t *MusicTree) checkUTF8() error {
	if !utf8.ValidString(t.root) {
		return fmt.Errorf("root %q: %w", t.root, ErrInvalidUTF8)
	}
	for artistName, artist := range t.artists {
		if !utf8.ValidString(artistName) {
			return fmt.Errorf("artist %q: %w", artistName, ErrInvalidUTF8)
		}
		if artist == nil {
			continue
		}
		for albumTitle, album := range artist.Albums {
			if !utf8.ValidString(albumTitle) {
				return fmt.Errorf("album %q: %w", albumTitle, ErrInvalidUTF8)
			}
			if album == nil {
				continue
			}
			for _, track := range album.Tracks {
				if track == nil {
					continue
				}
				for _, s := range []string{track.Title, track.SourceFile, track.DestinationFile} {
					if !utf8.ValidString(s) {
						return fmt.Errorf("track %q: %w", s, ErrInvalidUTF8)
					}
				}
			}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Strings that are not valid UTF-8
// are rejected instead of being replaced.
func (t *MusicTree) MarshalJSON() ([]byte, error) {
	if err := t.checkUTF8(); err != nil {
		return nil, err
	}
	return json.Marshal(t.snapshot())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *MusicTree) UnmarshalJSON(data []byte) error {
	var s treeSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t.restore(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t *MusicTree) MarshalYAML() (any, error) {
	return t.snapshot(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *MusicTree) UnmarshalYAML(value *yaml.Node) error {
	var s treeSnapshot
	if err := value.Decode(&s); err != nil {
		return err
	}
	t.restore(s)
	return nil
}
