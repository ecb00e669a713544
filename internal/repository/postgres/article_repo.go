package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"blogmedia/internal/domain"
	"blogmedia/internal/port"
)

type articleRepo struct {
	db *sqlx.DB
}

// NewArticleRepo creates a new PostgreSQL-backed ArticleRepository.
func NewArticleRepo(db *sqlx.DB) port.ArticleRepository {
	return &articleRepo{db: db}
}

func (r *articleRepo) Create(ctx context.Context, article *domain.Article) error {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	query := `INSERT INTO articles (title, abstract, body, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		article.Title, article.Abstract, article.Body, article.CreatedBy,
		article.CreatedAt, article.UpdatedAt).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("articleRepo.Create: %w", err)
	}
	return nil
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	err := r.db.GetContext(ctx, &article, "SELECT * FROM articles WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("articleRepo.GetByID: %w", err)
	}
	return &article, nil
}

// List returns a page of articles sorted by ordering. Unknown orderings fall
// back to oldest first.
func (r *articleRepo) List(ctx context.Context, ordering domain.ArticleOrdering, offset, limit int) ([]domain.Article, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM articles"); err != nil {
		return nil, 0, fmt.Errorf("articleRepo.List count: %w", err)
	}

	articles := []domain.Article{}
	query := "SELECT * FROM articles ORDER BY " + ordering.SQL() + " LIMIT $1 OFFSET $2"
	if err := r.db.SelectContext(ctx, &articles, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("articleRepo.List: %w", err)
	}
	return articles, total, nil
}

func (r *articleRepo) Update(ctx context.Context, article *domain.Article) error {
	article.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE articles SET title = $1, abstract = $2, body = $3, updated_at = $4
		 WHERE id = $5`,
		article.Title, article.Abstract, article.Body, article.UpdatedAt, article.ID)
	if err != nil {
		return fmt.Errorf("articleRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("articleRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
