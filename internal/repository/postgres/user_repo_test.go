package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogmedia/internal/domain"
	"blogmedia/internal/repository/postgres"
)

var userColumns = []string{"id", "email", "password_hash", "full_name", "is_active", "created_at", "updated_at"}

func TestUserRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)
	user := &domain.User{Email: "author@test.com", PasswordHash: "hash", FullName: "Author", IsActive: true}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "author@test.com", "hash", "Author", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), &domain.User{Email: "dup@test.com"})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT \\* FROM users WHERE email = \\$1").
		WithArgs("author@test.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "author@test.com", "hash", "Author", true, now, now))

	user, err := repo.GetByEmail(context.Background(), "Author@Test.com")

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "Author", user.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepo(db)
	id := uuid.New()

	mock.ExpectQuery("SELECT \\* FROM users WHERE id = \\$1").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
