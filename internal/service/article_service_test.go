package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogmedia/internal/domain"
	"blogmedia/internal/service"
	"blogmedia/mocks"
)

func strPtr(s string) *string { return &s }

func TestArticleService_Create(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)
	author := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Article) bool {
		return a.Title == "Hello" && a.CreatedBy == author && a.Body == "body"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Article).ID = 42
	}).Return(nil)

	article, err := svc.Create(context.Background(), &service.CreateArticleInput{
		CreatedBy: author,
		Title:     "  Hello ",
		Abstract:  "short",
		Body:      "body",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), article.ID)
	assert.Equal(t, "Hello", article.Title)
	repo.AssertExpectations(t)
}

func TestArticleService_Create_InvalidTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  error
	}{
		{"empty", "", domain.ErrValidation},
		{"whitespace", "  ", domain.ErrValidation},
		{"too long", strings.Repeat("a", domain.MaxTitleLength+1), domain.ErrTitleTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockArticleRepo)
			svc := service.NewArticleService(repo)

			_, err := svc.Create(context.Background(), &service.CreateArticleInput{CreatedBy: uuid.New(), Title: tt.title})

			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestArticleService_Create_MaxLengthTitleAccepted(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), &service.CreateArticleInput{
		CreatedBy: uuid.New(),
		Title:     strings.Repeat("ü", domain.MaxTitleLength),
	})

	assert.NoError(t, err)
}

func TestArticleService_List(t *testing.T) {
	tests := []struct {
		name     string
		ordering domain.ArticleOrdering
		want     domain.ArticleOrdering
	}{
		{"default", "", domain.OrderByCreatedAt},
		{"newest first", domain.OrderByCreatedAtDesc, domain.OrderByCreatedAtDesc},
		{"by id", domain.OrderByID, domain.OrderByID},
		{"by id desc", domain.OrderByIDDesc, domain.OrderByIDDesc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockArticleRepo)
			svc := service.NewArticleService(repo)
			repo.On("List", mock.Anything, tt.want, 0, 10).Return([]domain.Article{{ID: 1}}, 1, nil)

			articles, total, err := svc.List(context.Background(), tt.ordering, 0, 10)

			require.NoError(t, err)
			assert.Len(t, articles, 1)
			assert.Equal(t, 1, total)
			repo.AssertExpectations(t)
		})
	}
}

func TestArticleService_List_UnknownOrdering(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)

	_, _, err := svc.List(context.Background(), "title; DROP TABLE articles", 0, 10)

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestArticleService_Update_ReplacesAllFields(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)
	author := uuid.New()
	existing := &domain.Article{ID: 7, Title: "Old", Abstract: "old abstract", Body: "old body", CreatedBy: author}

	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	article, err := svc.Update(context.Background(), &service.UpdateArticleInput{
		ArticleID: 7,
		UserID:    author,
		Title:     strPtr("New"),
	})

	require.NoError(t, err)
	assert.Equal(t, "New", article.Title)
	assert.Empty(t, article.Abstract)
	assert.Empty(t, article.Body)
	repo.AssertExpectations(t)
}

func TestArticleService_PartialUpdate_KeepsMissingFields(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)
	author := uuid.New()
	existing := &domain.Article{ID: 7, Title: "Old", Abstract: "old abstract", Body: "old body", CreatedBy: author}

	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	article, err := svc.PartialUpdate(context.Background(), &service.UpdateArticleInput{
		ArticleID: 7,
		UserID:    author,
		Body:      strPtr("new body"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Old", article.Title)
	assert.Equal(t, "old abstract", article.Abstract)
	assert.Equal(t, "new body", article.Body)
}

func TestArticleService_Update_NotOwner(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)
	existing := &domain.Article{ID: 7, Title: "Old", CreatedBy: uuid.New()}

	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)

	_, err := svc.PartialUpdate(context.Background(), &service.UpdateArticleInput{
		ArticleID: 7,
		UserID:    uuid.New(),
		Title:     strPtr("Hijacked"),
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestArticleService_PartialUpdate_BlankTitleRejected(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)
	author := uuid.New()

	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Article{ID: 3, Title: "Keep", CreatedBy: author}, nil)

	_, err := svc.PartialUpdate(context.Background(), &service.UpdateArticleInput{
		ArticleID: 3,
		UserID:    author,
		Title:     strPtr(" "),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestArticleService_Delete(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)
	author := uuid.New()

	repo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Article{ID: 9, CreatedBy: author}, nil)
	repo.On("Delete", mock.Anything, int64(9)).Return(nil)

	err := svc.Delete(context.Background(), 9, author)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestArticleService_Delete_NotFound(t *testing.T) {
	repo := new(mocks.MockArticleRepo)
	svc := service.NewArticleService(repo)

	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, domain.ErrNotFound)

	err := svc.Delete(context.Background(), 9, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
