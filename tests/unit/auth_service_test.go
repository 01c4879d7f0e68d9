package unit

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/security"
	"amenibook-backend/internal/service"
)

func newAuthFixture() (*MockUserRepo, service.AuthService, security.TokenManager) {
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("unit-test-secret-0123456789abcdefghij", 60, 1440)
	return userRepo, service.NewAuthService(userRepo, tokens), tokens
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success returns both tokens", func(t *testing.T) {
		userRepo, svc, tokens := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "new@test.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 9
			}).Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "New User", "New@Test.com", "555-0100", "longenough")
		assert.NoError(t, err)
		assert.Equal(t, "new@test.com", user.Email)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)

		claims, err := tokens.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, int32(9), claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("Duplicate email rejected", func(t *testing.T) {
		userRepo, svc, _ := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "taken@test.com").Return(&domain.User{ID: 2, Email: "taken@test.com"}, nil)

		_, _, _, err := svc.Signup(ctx, "Someone", "taken@test.com", "", "longenough")
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("Short password rejected", func(t *testing.T) {
		_, svc, _ := newAuthFixture()
		_, _, _, err := svc.Signup(ctx, "Someone", "x@test.com", "", "short")
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	user := &domain.User{ID: 4, Email: "res@test.com", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		userRepo, svc, _ := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "res@test.com").Return(user, nil)

		access, refresh, err := svc.Login(ctx, "res@test.com", "correct-horse")
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userRepo, svc, _ := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "res@test.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "res@test.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown account looks like bad credentials", func(t *testing.T) {
		userRepo, svc, _ := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ghost@test.com").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Login(ctx, "ghost@test.com", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Access token cannot refresh", func(t *testing.T) {
		_, svc, tokens := newAuthFixture()
		access, err := tokens.GenerateAccessToken(4, "res@test.com")
		assert.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("Refresh token rotates the pair", func(t *testing.T) {
		userRepo, svc, tokens := newAuthFixture()
		refresh, err := tokens.GenerateRefreshToken(4, "res@test.com")
		assert.NoError(t, err)
		userRepo.On("GetByID", ctx, int32(4)).Return(&domain.User{ID: 4, Email: "res@test.com"}, nil)

		access, newRefresh, err := svc.RefreshToken(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})
}
