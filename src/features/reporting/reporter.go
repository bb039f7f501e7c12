package reporting

import "fmt"

// ErrorKind categorizes a per-item failure. None of them aborts a run.
type ErrorKind int

const (
	// KindExtension is a file without extension, assumed not to be audio.
	KindExtension ErrorKind = iota
	// KindUnreadable is a file whose tags could not be read.
	KindUnreadable
	// KindAlbumIncomplete is a file missing artist, album or year.
	KindAlbumIncomplete
	// KindTrackIncomplete is a file missing title or track number.
	KindTrackIncomplete
	// KindDuplicateSlot is a track claiming an already filled slot.
	KindDuplicateSlot
	// KindDestinationExists is a rescue target that is already on disk.
	KindDestinationExists
)

// AllKinds lists every error kind in declaration order.
var AllKinds = []ErrorKind{
	KindExtension,
	KindUnreadable,
	KindAlbumIncomplete,
	KindTrackIncomplete,
	KindDuplicateSlot,
	KindDestinationExists,
}

// String returns the label used in logs and metrics.
func (k ErrorKind) String() string {
	switch k {
	case KindExtension:
		return "extension"
	case KindUnreadable:
		return "unreadable"
	case KindAlbumIncomplete:
		return "album_incomplete"
	case KindTrackIncomplete:
		return "track_incomplete"
	case KindDuplicateSlot:
		return "duplicate_slot"
	case KindDestinationExists:
		return "destination_exists"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Reporter receives one signal per processed item.
type Reporter interface {
	// Progress records an item that was cataloged or copied.
	Progress()
	// Error records an item that was skipped.
	Error(kind ErrorKind, path string)
}

// Tee fans signals out to several reporters.
func Tee(reporters ...Reporter) Reporter {
	return tee(reporters)
}

type tee []Reporter

func (t tee) Progress() {
	for _, r := range t {
		r.Progress()
	}
}

func (t tee) Error(kind ErrorKind, path string) {
	for _, r := range t {
		r.Error(kind, path)
	}
}
