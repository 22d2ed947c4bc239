// Package tests contains integration tests for the business flows
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/app/services"
	businessflow "github.com/openmusic/api/business_flow"
	"github.com/openmusic/api/repository"
	testingutil "github.com/openmusic/api/testing"
)

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()

	tokenService, err := services.NewTokenService(
		30*time.Minute,
		24*time.Hour,
		"openmusic-test",
		"openmusic-test-clients",
		false,
		"", "",
		"test-secret-key-with-enough-length!",
	)
	require.NoError(t, err)
	return tokenService
}

func TestUserFlow(t *testing.T) {
	testDB := setupDB(t)

	userRepo := repository.NewUserRepository(testDB.DB)
	userFlow := businessflow.NewUserFlow(userRepo, bcrypt.MinCost, testDB.DB)

	ctx := context.Background()
	metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

	t.Run("CreateUser", func(t *testing.T) {
		created, err := userFlow.CreateUser(ctx, &dto.UserRequest{
			Username: "johndoe",
			Password: "secretpassword",
			Fullname: "John Doe",
		}, metadata)
		require.NoError(t, err)
		assert.NotEmpty(t, created.UserID)

		user, err := userFlow.GetUser(ctx, created.UserID, metadata)
		require.NoError(t, err)
		assert.Equal(t, "johndoe", user.Username)
		assert.Equal(t, "John Doe", user.Fullname)

		// Stored hash verifies against the original password
		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secretpassword"))
		assert.NoError(t, err)
	})

	t.Run("DuplicateUsernameRejected", func(t *testing.T) {
		req := &dto.UserRequest{
			Username: "taken",
			Password: "secretpassword",
			Fullname: "First Claimer",
		}
		_, err := userFlow.CreateUser(ctx, req, metadata)
		require.NoError(t, err)

		_, err = userFlow.CreateUser(ctx, req, metadata)
		assert.True(t, businessflow.IsUsernameTaken(err))
	})

	t.Run("GetUserNotFound", func(t *testing.T) {
		_, err := userFlow.GetUser(ctx, "user-missing", metadata)
		assert.True(t, businessflow.IsUserNotFound(err))
	})
}

func TestAuthFlow(t *testing.T) {
	testDB := setupDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)

	userRepo := repository.NewUserRepository(testDB.DB)
	authRepo := repository.NewAuthenticationRepository(testDB.DB)
	tokenService := newTestTokenService(t)
	authFlow := businessflow.NewAuthFlow(userRepo, authRepo, tokenService, testDB.DB)

	ctx := context.Background()
	metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

	t.Run("SuccessfulLogin", func(t *testing.T) {
		user, err := fixtures.CreateTestUser("loginuser")
		require.NoError(t, err)

		pair, err := authFlow.Login(ctx, &dto.LoginRequest{
			Username: user.Username,
			Password: testingutil.TestPassword,
		}, metadata)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		claims, err := tokenService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)

		// Refresh token is persisted for later renewal
		stored, err := authRepo.TokenExists(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.True(t, stored)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		user, err := fixtures.CreateTestUser("wrongpass")
		require.NoError(t, err)

		_, err = authFlow.Login(ctx, &dto.LoginRequest{
			Username: user.Username,
			Password: "not-the-password",
		}, metadata)
		assert.True(t, businessflow.IsInvalidCredentials(err))
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		_, err := authFlow.Login(ctx, &dto.LoginRequest{
			Username: "ghost",
			Password: "whatever123",
		}, metadata)
		assert.True(t, businessflow.IsInvalidCredentials(err))
	})

	t.Run("RefreshAccessToken", func(t *testing.T) {
		user, err := fixtures.CreateTestUser("refresher")
		require.NoError(t, err)

		pair, err := authFlow.Login(ctx, &dto.LoginRequest{
			Username: user.Username,
			Password: testingutil.TestPassword,
		}, metadata)
		require.NoError(t, err)

		renewed, err := authFlow.RefreshAccessToken(ctx, &dto.RefreshTokenRequest{
			RefreshToken: pair.RefreshToken,
		}, metadata)
		require.NoError(t, err)
		assert.NotEmpty(t, renewed.AccessToken)

		claims, err := tokenService.ValidateAccessToken(renewed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("RefreshRejectsUnknownToken", func(t *testing.T) {
		// A well-formed token that was never persisted must be rejected
		user, err := fixtures.CreateTestUser("outsider")
		require.NoError(t, err)

		unsaved, err := tokenService.GenerateRefreshToken(user.ID)
		require.NoError(t, err)

		_, err = authFlow.RefreshAccessToken(ctx, &dto.RefreshTokenRequest{
			RefreshToken: unsaved,
		}, metadata)
		assert.True(t, businessflow.IsRefreshTokenInvalid(err))
	})

	t.Run("LogoutRevokesRefreshToken", func(t *testing.T) {
		user, err := fixtures.CreateTestUser("leaver")
		require.NoError(t, err)

		pair, err := authFlow.Login(ctx, &dto.LoginRequest{
			Username: user.Username,
			Password: testingutil.TestPassword,
		}, metadata)
		require.NoError(t, err)

		err = authFlow.Logout(ctx, &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken}, metadata)
		require.NoError(t, err)

		// Renewal and a second logout both fail once revoked
		_, err = authFlow.RefreshAccessToken(ctx, &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken}, metadata)
		assert.True(t, businessflow.IsRefreshTokenInvalid(err))

		err = authFlow.Logout(ctx, &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken}, metadata)
		assert.True(t, businessflow.IsRefreshTokenInvalid(err))
	})
}
