package trackrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/soundvault/vsdwallet/internal/domain"
	"github.com/soundvault/vsdwallet/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, trackID int) (*domain.Track, error) {
	query := `
        SELECT id, artist_id, title, genre, price, plays, uploaded_at
        FROM tracks
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, trackID)

	var track domain.Track
	err := row.Scan(&track.ID, &track.ArtistID, &track.Title, &track.Genre, &track.Price, &track.Plays, &track.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find track", zap.Error(err))
		return nil, err
	}
	return &track, nil
}

func (r *Repository) Save(ctx context.Context, track *domain.Track) (*domain.Track, error) {
	query := `
        INSERT INTO tracks (artist_id, title, genre, price)
        VALUES ($1, $2, $3, $4)
        RETURNING id, artist_id, title, genre, price, plays, uploaded_at
    `
	row := r.db.QueryRow(ctx, query, track.ArtistID, track.Title, track.Genre, track.Price)

	var created domain.Track
	err := row.Scan(&created.ID, &created.ArtistID, &created.Title, &created.Genre, &created.Price, &created.Plays, &created.UploadedAt)
	if err != nil {
		zap.L().Error("can't save track", zap.Error(err))
		return nil, err
	}
	return &created, nil
}

func (r *Repository) FindByArtistID(ctx context.Context, artistID int) ([]domain.Track, error) {
	query := `
        SELECT id, artist_id, title, genre, price, plays, uploaded_at
        FROM tracks
        WHERE artist_id = $1
        ORDER BY uploaded_at DESC
    `
	return r.queryTracks(ctx, query, artistID)
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Track, error) {
	query := `
        SELECT id, artist_id, title, genre, price, plays, uploaded_at
        FROM tracks
        ORDER BY uploaded_at DESC
    `
	return r.queryTracks(ctx, query)
}

func (r *Repository) IncrementPlays(ctx context.Context, trackID int) error {
	query := `
        UPDATE tracks
        SET plays = plays + 1
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, trackID); err != nil {
		zap.L().Error("can't increment track plays", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) queryTracks(ctx context.Context, query string, args ...any) ([]domain.Track, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get tracks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tracks []domain.Track
	for rows.Next() {
		var track domain.Track
		err := rows.Scan(&track.ID, &track.ArtistID, &track.Title, &track.Genre, &track.Price, &track.Plays, &track.UploadedAt)
		if err != nil {
			zap.L().Error("can't scan track row", zap.Error(err))
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}
