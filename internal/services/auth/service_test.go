package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"note-scribe/internal/config"
	"note-scribe/internal/utils/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig() config.Config {
	return config.Config{
		BcryptCost:          10,
		JWTSecret:           "test-jwt-secret-key-with-32-plus-characters!",
		JWTAlgorithm:        "HS256",
		SessionTokenMinutes: 15,
	}
}

// MockUsersRepo is a mock implementation of UsersRepo
type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUsersRepo) FindByID(ctx context.Context, id bson.ObjectID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestServiceSignUp(t *testing.T) {
	t.Run("successful registration opens a session", func(t *testing.T) {
		repo := new(MockUsersRepo)
		repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, errors.New("not found"))
		repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)

		svc := NewService(repo, testConfig(), silentLogger)
		sess, err := svc.SignUp(context.Background(), SignUpRequest{
			Username: "ada",
			Email:    "Ada@Example.com",
			Password: "Password123",
		})

		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, "ada@example.com", sess.User.Email, "email should be normalized")
		assert.Equal(t, "ada", sess.User.Username)
		assert.NotEmpty(t, sess.Token)
		assert.NotEqual(t, "Password123", sess.User.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email is masked", func(t *testing.T) {
		repo := new(MockUsersRepo)
		repo.On("FindByEmail", mock.Anything, "ada@example.com").
			Return(&User{ID: bson.NewObjectID(), Email: "ada@example.com"}, nil)

		svc := NewService(repo, testConfig(), silentLogger)
		sess, err := svc.SignUp(context.Background(), SignUpRequest{
			Username: "ada",
			Email:    "ada@example.com",
			Password: "Password123",
		})

		assert.Error(t, err)
		assert.NotContains(t, err.Error(), "exists", "error must not reveal the email is taken")
		assert.Nil(t, sess)
	})
}

func TestServiceLogIn(t *testing.T) {
	hash, err := crypto.HashPassword("Password123", 10)
	require.NoError(t, err)

	user := &User{
		ID:           bson.NewObjectID(),
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: hash,
	}

	tests := []struct {
		name     string
		password string
		setup    func(*MockUsersRepo)
		wantErr  error
	}{
		{
			name:     "successful log-in",
			password: "Password123",
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
			},
		},
		{
			name:     "wrong password",
			password: "Password456",
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			password: "Password123",
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, errors.New("not found"))
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			tt.setup(repo)

			svc := NewService(repo, testConfig(), silentLogger)
			sess, err := svc.LogIn(context.Background(), LogInRequest{
				Email:    "ada@example.com",
				Password: tt.password,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
			} else {
				require.NoError(t, err)
				require.NotNil(t, sess)
				assert.Equal(t, user, sess.User)
				assert.NotEmpty(t, sess.Token)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestServiceFetchUser(t *testing.T) {
	userID := bson.NewObjectID()

	t.Run("resolves session user", func(t *testing.T) {
		user := &User{ID: userID, Username: "ada", Email: "ada@example.com"}

		repo := new(MockUsersRepo)
		repo.On("FindByID", mock.Anything, userID).Return(user, nil)

		svc := NewService(repo, testConfig(), silentLogger)
		got, err := svc.FetchUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("deleted user", func(t *testing.T) {
		repo := new(MockUsersRepo)
		repo.On("FindByID", mock.Anything, userID).Return(nil, errors.New("no documents"))

		svc := NewService(repo, testConfig(), silentLogger)
		got, err := svc.FetchUser(context.Background(), userID)

		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, got)
	})
}
