package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileEventType represents the type of file system event
type FileEventType string

const (
	FileCreated  FileEventType = "created"
	FileRemoved  FileEventType = "removed"
	FileModified FileEventType = "modified"
)

// FileEvent is emitted once a burst of changes under the watched root has
// settled. Path is the last file that changed.
type FileEvent struct {
	Root      string
	Path      string
	EventType FileEventType
	Timestamp time.Time
}

func eventType(op fsnotify.Op) (FileEventType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return FileCreated, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return FileRemoved, true
	case op.Has(fsnotify.Write):
		return FileModified, true
	default:
		return "", false
	}
}
