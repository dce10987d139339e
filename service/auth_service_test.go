package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"teamcoin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-not-for-production"

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	svc := NewAuthService(mockFactory, testSecret, time.Hour, 100)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "ada@example.com").Return(nil, nil)
	mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ada@example.com" &&
			u.Role == models.RoleEmployee &&
			u.Coins == 100 &&
			u.Nickname == "Ada"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 7
	})

	user, token, err := svc.SignUp(ctx, " Ada@Example.com ", "correct horse battery", "Ada Lovelace", "Ada")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)
	// The stored hash verifies against the original password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))

	mockUserRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	svc := NewAuthService(mockFactory, testSecret, time.Hour, 0)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "ada@example.com").Return(&models.User{ID: 7}, nil)

	user, token, err := svc.SignUp(ctx, "ada@example.com", "correct horse battery", "Ada", "")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Nil(t, user)
	assert.Empty(t, token)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	svc := NewAuthService(mockFactory, testSecret, time.Hour, 0)

	cases := []struct {
		name                string
		email, pw, fullName string
	}{
		{"missing email", "", "longenoughpw", "Ada"},
		{"malformed email", "not-an-email", "longenoughpw", "Ada"},
		{"short password", "ada@example.com", "short", "Ada"},
		{"missing name", "ada@example.com", "longenoughpw", "  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.SignUp(ctx, tc.email, tc.pw, tc.fullName, "")
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}

	mockFactory.AssertNotCalled(t, "Create")
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	svc := NewAuthService(mockFactory, testSecret, time.Hour, 0)

	hash, err := bcrypt.GenerateFromPassword([]byte("the real password"), bcrypt.MinCost)
	assert.NoError(t, err)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "ada@example.com").Return(&models.User{
		ID:           7,
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}, nil)

	user, token, err := svc.SignIn(ctx, "ada@example.com", "a guess")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	svc := NewAuthService(mockFactory, testSecret, time.Hour, 0)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

	_, _, err := svc.SignIn(ctx, "ghost@example.com", "whatever")

	// Same error as a wrong password, so emails cannot be probed
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestAuthService_AuthenticateRoundTrip(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	svc := NewAuthService(mockFactory, testSecret, time.Hour, 0)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	assert.NoError(t, err)

	existing := &models.User{
		ID:           7,
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleManager,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "ada@example.com").Return(existing, nil)
	mockUserRepo.On("GetByID", ctx, int64(7)).Return(existing, nil)

	_, token, err := svc.SignIn(ctx, "ada@example.com", "correct horse battery")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	user, err := svc.Authenticate(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.IsManager())
}

func TestAuthService_Authenticate_BadToken(t *testing.T) {
	ctx := context.Background()

	svc := NewAuthService(new(MockUnitOfWorkFactory), testSecret, time.Hour, 0)

	_, err := svc.Authenticate(ctx, "not.a.token")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw12345678"), bcrypt.MinCost)
	assert.NoError(t, err)

	existing := &models.User{ID: 7, Email: "ada@example.com", PasswordHash: string(hash)}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByEmail", ctx, "ada@example.com").Return(existing, nil)

	issuer := NewAuthService(mockFactory, "another secret", time.Hour, 0)
	_, token, err := issuer.SignIn(ctx, "ada@example.com", "pw12345678")
	assert.NoError(t, err)

	verifier := NewAuthService(mockFactory, testSecret, time.Hour, 0)
	_, err = verifier.Authenticate(ctx, token)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}
