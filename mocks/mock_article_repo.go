package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"blogmedia/internal/domain"
)

// MockArticleRepo is a mock implementation of port.ArticleRepository.
type MockArticleRepo struct {
	mock.Mock
}

func (m *MockArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepo) List(ctx context.Context, ordering domain.ArticleOrdering, offset, limit int) ([]domain.Article, int, error) {
	args := m.Called(ctx, ordering, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Article), args.Int(1), args.Error(2)
}

func (m *MockArticleRepo) Update(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
