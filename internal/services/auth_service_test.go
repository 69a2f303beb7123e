package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/tuition-api/internal/config"
	"github.com/sjperalta/tuition-api/internal/models"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByUsername func(ctx context.Context, username string) (*models.User, error)
	mockCreate         func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.mockFindByUsername(ctx, username)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.mockCreate(ctx, user)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 2}
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &models.User{ID: 1, Username: "bank01", EncryptedPassword: hash, Role: models.RoleBank, Status: models.StatusActive}
}

func TestAuthService_Login_Success(t *testing.T) {
	user := activeUser(t, "s3cret-pass")
	mockRepo := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) { return user, nil },
	}
	service := NewAuthService(mockRepo, testConfig())
	service.now = func() time.Time { return time.Now() }

	result, err := service.Login(context.Background(), " bank01 ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64(7200), result.ExpiresIn)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "bank01", claims["username"])
	assert.Equal(t, models.RoleBank, claims["role"])
}

func TestAuthService_Login_BadPassword(t *testing.T) {
	user := activeUser(t, "s3cret-pass")
	mockRepo := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) { return user, nil },
	}
	service := NewAuthService(mockRepo, testConfig())

	result, err := service.Login(context.Background(), "bank01", "wrong")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Bad username or password", err.Error())
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return nil, repository.ErrRecordNotFound
		},
	}
	service := NewAuthService(mockRepo, testConfig())

	_, err := service.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: username, Status: models.StatusInactive}, nil
		},
	}
	service := NewAuthService(mockRepo, testConfig())

	result, err := service.Login(context.Background(), "inactive", "password")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestAuthService_Login_StorageError(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) { return nil, errBoom },
	}
	service := NewAuthService(mockRepo, testConfig())

	_, err := service.Login(context.Background(), "bank01", "password")
	assert.ErrorIs(t, err, ErrStorage)
}

func TestAuthService_CreateUser(t *testing.T) {
	var stored *models.User
	mockRepo := &mockUserRepo{
		mockCreate: func(ctx context.Context, user *models.User) error {
			if stored != nil && stored.Username == user.Username {
				return repository.ErrUsernameTaken
			}
			stored = user
			return nil
		},
	}
	service := NewAuthService(mockRepo, testConfig())
	ctx := context.Background()

	user, err := service.CreateUser(ctx, "teller", "long-enough", models.RoleBank)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.True(t, VerifyPassword("long-enough", user.EncryptedPassword))

	_, err = service.CreateUser(ctx, "teller", "long-enough", models.RoleBank)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateUser(ctx, "other", "short", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateUser(ctx, "other", "long-enough", "root")
	assert.ErrorIs(t, err, ErrValidation)
}
