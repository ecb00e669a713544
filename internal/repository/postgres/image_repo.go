package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogmedia/internal/domain"
	"blogmedia/internal/port"
)

type imageRepo struct {
	db *sqlx.DB
}

// NewImageRepo creates a new PostgreSQL-backed ImageRepository.
func NewImageRepo(db *sqlx.DB) port.ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) Create(ctx context.Context, img *domain.Image) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	img.UploadedAt = time.Now().UTC()

	query := `INSERT INTO images
		(id, title, thumbnail_url, display_url, original_url, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		img.ID, img.Title, img.ThumbnailURL, img.DisplayURL, img.OriginalURL,
		img.UploadedBy, img.UploadedAt)
	if err != nil {
		return fmt.Errorf("imageRepo.Create: %w", err)
	}
	return nil
}

func (r *imageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	var img domain.Image
	err := r.db.GetContext(ctx, &img, "SELECT * FROM images WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("imageRepo.GetByID: %w", err)
	}
	return &img, nil
}

func (r *imageRepo) List(ctx context.Context, offset, limit int) ([]domain.Image, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM images"); err != nil {
		return nil, 0, fmt.Errorf("imageRepo.List count: %w", err)
	}

	images := []domain.Image{}
	err := r.db.SelectContext(ctx, &images,
		"SELECT * FROM images ORDER BY uploaded_at DESC, id DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("imageRepo.List: %w", err)
	}
	return images, total, nil
}
