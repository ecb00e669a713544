package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"blogmedia/internal/domain"
	"blogmedia/internal/port"
)

// CreateArticleInput is the DTO for creating an article.
type CreateArticleInput struct {
	CreatedBy uuid.UUID
	Title     string
	Abstract  string
	Body      string
}

// UpdateArticleInput is the DTO for full and partial article updates.
// For partial updates nil fields are left unchanged.
type UpdateArticleInput struct {
	ArticleID int64
	UserID    uuid.UUID
	Title     *string
	Abstract  *string
	Body      *string
}

// ArticleService defines the article management contract.
type ArticleService interface {
	Create(ctx context.Context, input *CreateArticleInput) (*domain.Article, error)
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context, ordering domain.ArticleOrdering, offset, limit int) ([]domain.Article, int, error)
	Update(ctx context.Context, input *UpdateArticleInput) (*domain.Article, error)
	PartialUpdate(ctx context.Context, input *UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
}

type articleService struct {
	articleRepo port.ArticleRepository
}

// NewArticleService creates a new ArticleService implementation.
func NewArticleService(articleRepo port.ArticleRepository) ArticleService {
	return &articleService{articleRepo: articleRepo}
}

func validateArticleTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return domain.ErrTitleTooLong
	}
	return nil
}

func (s *articleService) Create(ctx context.Context, input *CreateArticleInput) (*domain.Article, error) {
	article := &domain.Article{
		Title:     strings.TrimSpace(input.Title),
		Abstract:  input.Abstract,
		Body:      input.Body,
		CreatedBy: input.CreatedBy,
	}
	if err := validateArticleTitle(article.Title); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("articleService.Create: %w", err)
	}
	return article, nil
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

func (s *articleService) List(ctx context.Context, ordering domain.ArticleOrdering, offset, limit int) ([]domain.Article, int, error) {
	if ordering == "" {
		ordering = domain.OrderByCreatedAt
	}
	if !domain.ValidArticleOrderings[ordering] {
		return nil, 0, fmt.Errorf("%w: unsupported ordering %q", domain.ErrValidation, ordering)
	}
	return s.articleRepo.List(ctx, ordering, offset, limit)
}

// Update replaces title, abstract and body. Missing fields become empty.
func (s *articleService) Update(ctx context.Context, input *UpdateArticleInput) (*domain.Article, error) {
	article, err := s.ownedArticle(ctx, input.ArticleID, input.UserID)
	if err != nil {
		return nil, err
	}

	article.Title = strings.TrimSpace(deref(input.Title))
	article.Abstract = deref(input.Abstract)
	article.Body = deref(input.Body)
	return s.save(ctx, article)
}

func (s *articleService) PartialUpdate(ctx context.Context, input *UpdateArticleInput) (*domain.Article, error) {
	article, err := s.ownedArticle(ctx, input.ArticleID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Abstract != nil {
		article.Abstract = *input.Abstract
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	return s.save(ctx, article)
}

func (s *articleService) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	if _, err := s.ownedArticle(ctx, id, userID); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, id)
}

// ownedArticle loads an article and checks that userID wrote it.
func (s *articleService) ownedArticle(ctx context.Context, id int64, userID uuid.UUID) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.CreatedBy != userID {
		return nil, domain.ErrForbidden
	}
	return article, nil
}

func (s *articleService) save(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if err := validateArticleTitle(article.Title); err != nil {
		return nil, err
	}
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("articleService.Update: %w", err)
	}
	return article, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
