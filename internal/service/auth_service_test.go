package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogmedia/internal/config"
	"blogmedia/internal/domain"
	"blogmedia/internal/service"
	"blogmedia/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "blogmedia-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func testUser() *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Email:        "author@test.com",
		PasswordHash: hashPassword("password123"),
		FullName:     "Test Author",
		IsActive:     true,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@test.com" && u.FullName == "New Author" && u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = uuid.New()
	}).Return(nil)

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "  New@Test.com ",
		Password: "password123",
		FullName: "New Author",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@test.com", out.User.Email)
	assert.NotEmpty(t, out.Tokens.AccessToken)
	assert.NotEmpty(t, out.Tokens.RefreshToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "dup@test.com",
		Password: "password123",
		FullName: "Dup",
	})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()

	userRepo.On("GetByEmail", mock.Anything, "author@test.com").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "Author@test.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "author@test.com").Return(testUser(), nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "author@test.com",
		Password: "wrong-password",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "ghost@test.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "ghost@test.com", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_RepoError(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "author@test.com").Return(nil, errors.New("connection refused"))

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "author@test.com", Password: "password123"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()
	user.IsActive = false

	userRepo.On("GetByEmail", mock.Anything, "author@test.com").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{Email: "author@test.com", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_ValidateToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	tokens, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "blogmedia-test", claims.Issuer)

	_, err = svc.ValidateToken(tokens.RefreshToken)
	assert.Error(t, err, "refresh tokens must not be accepted as access tokens")
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	other := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:             "another-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenExpiry: time.Hour,
	})
	user := testUser()
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	tokens, err := other.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	svc := service.NewAuthService(userRepo, testJWTConfig())
	_, err = svc.ValidateToken(tokens.AccessToken)

	assert.Error(t, err)
}

func TestAuthService_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testJWTConfig())

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{"access"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	tokens, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	userRepo.AssertExpectations(t)
}

func TestAuthService_RefreshToken_DeactivatedUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := testUser()

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	tokens, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	inactive := *user
	inactive.IsActive = false
	userRepo.On("GetByID", mock.Anything, user.ID).Return(&inactive, nil)

	_, err = svc.RefreshToken(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}
