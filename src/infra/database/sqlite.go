package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/contre95/musicrescue/src/music"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteCatalog is a SQLite mirror of a MusicTree.
type SqliteCatalog struct {
	db *sql.DB
}

// NewSqliteCatalog opens (or creates) the catalog database at path.
func NewSqliteCatalog(path string) (*SqliteCatalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteCatalog{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS artists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS albums (
			id TEXT PRIMARY KEY,
			artist_id TEXT NOT NULL,
			title TEXT NOT NULL,
			year INTEGER,
			UNIQUE(artist_id, title),
			FOREIGN KEY (artist_id) REFERENCES artists(id)
		);

		CREATE TABLE IF NOT EXISTS tracks (
			id TEXT PRIMARY KEY,
			album_id TEXT NOT NULL,
			track_number INTEGER NOT NULL,
			title TEXT NOT NULL,
			source_file TEXT NOT NULL,
			destination_file TEXT,
			UNIQUE(album_id, track_number),
			FOREIGN KEY (album_id) REFERENCES albums(id)
		);

		CREATE INDEX IF NOT EXISTS idx_albums_artist ON albums(artist_id);
		CREATE INDEX IF NOT EXISTS idx_tracks_album ON tracks(album_id);
	`)
	return err
}

// Export replaces the database content with the given tree in a single
// transaction.
func (d *SqliteCatalog) Export(ctx context.Context, tree *music.MusicTree) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"tracks", "albums", "artists"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	artistIDs := make(map[string]string, tree.Len())
	albumIDs := make(map[*music.Album]string)
	for info := range tree.Artists() {
		if info.Artist == nil {
			continue
		}
		artistID := uuid.NewString()
		artistIDs[info.ArtistName] = artistID
		if _, err := tx.ExecContext(ctx, `INSERT INTO artists (id, name) VALUES (?, ?)`, artistID, info.ArtistName); err != nil {
			return fmt.Errorf("failed to insert artist %s: %w", info.ArtistName, err)
		}
		for title, album := range info.Artist.Albums {
			if album == nil {
				continue
			}
			albumID := uuid.NewString()
			albumIDs[album] = albumID
			if _, err := tx.ExecContext(ctx, `INSERT INTO albums (id, artist_id, title, year) VALUES (?, ?, ?, ?)`,
				albumID, artistID, title, album.Year); err != nil {
				return fmt.Errorf("failed to insert album %s: %w", title, err)
			}
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (id, album_id, track_number, title, source_file, destination_file)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for info := range tree.Tracks() {
		if info.Track == nil {
			continue
		}
		var destination sql.NullString
		if info.Track.HasDestination() {
			destination = sql.NullString{String: info.Track.DestinationFile, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), albumIDs[info.Album], info.TrackNumber,
			info.Track.Title, info.Track.SourceFile, destination); err != nil {
			return fmt.Errorf("failed to insert track %s: %w", info.Track.SourceFile, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("SqliteCatalog.Export: catalog exported", "artists", len(artistIDs), "albums", len(albumIDs))
	return nil
}

// GetTotalArtists returns the number of exported artists.
func (d *SqliteCatalog) GetTotalArtists(ctx context.Context) (int, error) {
	return d.count(ctx, "artists")
}

// GetTotalAlbums returns the number of exported albums.
func (d *SqliteCatalog) GetTotalAlbums(ctx context.Context) (int, error) {
	return d.count(ctx, "albums")
}

// GetTotalTracks returns the number of exported tracks.
func (d *SqliteCatalog) GetTotalTracks(ctx context.Context) (int, error) {
	return d.count(ctx, "tracks")
}

func (d *SqliteCatalog) count(ctx context.Context, table string) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	return count, err
}

// GetAlbumTracks returns the exported track titles of an album ordered by track number.
func (d *SqliteCatalog) GetAlbumTracks(ctx context.Context, artist, album string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT t.title FROM tracks t
		JOIN albums al ON al.id = t.album_id
		JOIN artists ar ON ar.id = al.artist_id
		WHERE ar.name = ? AND al.title = ?
		ORDER BY t.track_number
	`, artist, album)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// Close closes the underlying database.
func (d *SqliteCatalog) Close() error {
	return d.db.Close()
}
