package scanning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/contre95/musicrescue/src/features/config"
	"github.com/contre95/musicrescue/src/features/reporting"
	"github.com/contre95/musicrescue/src/music"
)

// Service builds a catalog from a directory of audio files.
type Service struct {
	tagReader TagReader
	config    *config.Manager
	logger    *slog.Logger
}

// NewService creates a new scanning service.
func NewService(tagReader TagReader, cfg *config.Manager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{tagReader: tagReader, config: cfg, logger: logger}
}

// Scan walks root and records every readable track in a fresh catalog. Only a
// missing or non-directory root is fatal; every other problem is reported and
// skipped.
func (s *Service) Scan(ctx context.Context, root string, reporter reporting.Reporter) (*music.MusicTree, error) {
	if err := music.VerifyRoot(root); err != nil {
		return nil, err
	}

	var opts []music.Option
	if s.config != nil && s.config.Get().Scan.ASCIIPaths {
		opts = append(opts, music.WithASCIIPaths())
	}
	tree := music.NewMusicTree(root, opts...)

	s.logger.Info("Service.Scan: starting scan", "root", root)
	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan interrupted: %w", err)
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.Error("Service.Scan: can't read dir", "dir", dir, "error", err)
			// ReadDir may still return the entries read before the failure.
			if len(entries) == 0 {
				continue
			}
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			info, err := s.entryInfo(path, entry)
			if err != nil {
				s.logger.Error("Service.Scan: can't read entry", "dir", dir, "path", path, "error", err)
				continue
			}
			switch {
			case info.Mode().IsRegular():
				s.scanFile(ctx, tree, path, reporter)
			case info.IsDir():
				stack = append(stack, path)
			}
		}
	}
	s.logger.Info("Service.Scan: scan finished", "root", root, "artists", tree.Len())
	return tree, nil
}

// entryInfo resolves symlinks to files. Symlinked directories are not
// followed so a link cycle cannot loop the walk.
func (s *Service) entryInfo(path string, entry os.DirEntry) (os.FileInfo, error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Info()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		s.logger.Debug("Service.Scan: not following symlinked directory", "path", path)
		return nil, errors.New("symlinked directory")
	}
	return info, nil
}

func (s *Service) scanFile(ctx context.Context, tree *music.MusicTree, path string, reporter reporting.Reporter) {
	if _, ok := music.Extension(path); !ok {
		reporter.Error(reporting.KindExtension, path)
		return
	}
	tags, err := s.tagReader.ReadTags(ctx, path)
	if err != nil {
		s.logger.Debug("Service.Scan: could not read tags", "path", path, "error", err)
		reporter.Error(reporting.KindUnreadable, path)
		return
	}
	if !tags.HasAlbum() {
		reporter.Error(reporting.KindAlbumIncomplete, path)
		return
	}
	if !tags.HasTrack() {
		reporter.Error(reporting.KindTrackIncomplete, path)
		return
	}

	err = tree.AddTrack(path, tags.Artist, tags.Album, tags.Year, tags.TrackNumber, tags.Title)
	switch {
	case errors.Is(err, music.ErrSlotTaken):
		reporter.Error(reporting.KindDuplicateSlot, path)
	case errors.Is(err, music.ErrInvalidTrackNumber):
		reporter.Error(reporting.KindTrackIncomplete, path)
	case err != nil:
		s.logger.Error("Service.Scan: could not add track", "path", path, "error", err)
		reporter.Error(reporting.KindTrackIncomplete, path)
	default:
		reporter.Progress()
	}
}
