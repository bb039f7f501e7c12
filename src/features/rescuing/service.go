package rescuing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/contre95/musicrescue/src/features/reporting"
	"github.com/contre95/musicrescue/src/music"
)

// Service copies cataloged tracks into their destination layout.
type Service struct {
	organizer FileOrganizer
	logger    *slog.Logger
}

// NewService creates a new rescuing service.
func NewService(organizer FileOrganizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{organizer: organizer, logger: logger}
}

// Rescue copies every track with a destination under outDir. Existing
// destinations are reported and skipped. Any other failure aborts the run and
// leaves already copied files in place.
func (s *Service) Rescue(ctx context.Context, tree *music.MusicTree, outDir string, reporter reporting.Reporter) error {
	s.logger.Info("Service.Rescue: starting rescue", "root", tree.Root(), "out", outDir)
	for info := range tree.Tracks() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rescue interrupted: %w", err)
		}
		if !info.Track.HasDestination() {
			continue
		}
		if err := s.rescueTrack(ctx, info.Track, outDir, reporter); err != nil {
			return err
		}
	}
	s.logger.Info("Service.Rescue: rescue finished", "out", outDir)
	return nil
}

func (s *Service) rescueTrack(ctx context.Context, track *music.Track, outDir string, reporter reporting.Reporter) error {
	path := filepath.Join(outDir, track.DestinationFile)
	albumDir := filepath.Dir(path)
	if err := s.organizer.EnsureDir(ctx, albumDir); err != nil {
		return fmt.Errorf("can't create dir %s: %w", albumDir, err)
	}

	exists, err := s.organizer.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("can't check destination %s: %w", path, err)
	}
	if exists {
		reporter.Error(reporting.KindDestinationExists, path)
		return nil
	}

	err = s.organizer.CopyFile(ctx, track.SourceFile, path)
	if errors.Is(err, ErrDestinationExists) {
		reporter.Error(reporting.KindDestinationExists, path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("can't copy file %s: %w", track.SourceFile, err)
	}
	s.logger.Debug("Service.Rescue: track copied", "source", track.SourceFile, "destination", path)
	reporter.Progress()
	return nil
}
