package music

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/unidecode"
)

// badChars are stripped from every component of a destination path.
const badChars = `<>:"\/|?*.`

// CleanBadChars removes characters that are not safe in a path component.
func CleanBadChars(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(badChars, r) {
			return -1
		}
		return r
	}, s)
}

// Extension returns the extension of the file name without the leading dot.
// Dot files such as ".hidden" have no extension, while "song." has an empty one.
func Extension(path string) (string, bool) {
	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", false
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", false
	}
	return base[i+1:], true
}

// SetExtension replaces the extension of name with ext. An empty ext only
// drops the current extension.
func SetExtension(name, ext string) string {
	if cur, ok := Extension(name); ok {
		name = name[:len(name)-len(cur)-1]
	}
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// DestinationPath renders the library relative path for a track. It returns
// false when the source file has no extension.
func DestinationPath(file, artist, album string, year, trackNumber int, title string, ascii bool) (string, bool) {
	ext, ok := Extension(file)
	if !ok {
		return "", false
	}
	clean := CleanBadChars
	if ascii {
		clean = func(s string) string { return CleanBadChars(unidecode.Unidecode(s)) }
	}
	artistDir := strings.TrimSpace(clean(artist))
	albumDir := strings.TrimSpace(clean(fmt.Sprintf("%d - %s", year, album)))
	leaf := SetExtension(fmt.Sprintf("%d - %s", trackNumber, clean(title)), ext)
	return filepath.Join(artistDir, albumDir, leaf), true
}
