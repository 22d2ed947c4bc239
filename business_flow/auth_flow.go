// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/app/services"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow defines the session lifecycle: login, access-token rotation,
// and refresh-token revocation
type AuthFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.TokenPairData, error)
	RefreshAccessToken(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.AccessTokenData, error)
	Logout(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) error
}

// AuthFlowImpl implements AuthFlow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	authRepo     repository.AuthenticationRepository
	tokenService services.TokenService
	db           *gorm.DB
}

// NewAuthFlow constructs an AuthFlow
func NewAuthFlow(
	userRepo repository.UserRepository,
	authRepo repository.AuthenticationRepository,
	tokenService services.TokenService,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:     userRepo,
		authRepo:     authRepo,
		tokenService: tokenService,
		db:           db,
	}
}

// Login verifies credentials, issues a token pair, and persists the
// refresh token so rotation and revocation can check it later
func (a *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.TokenPairData, error) {
	user, err := a.verifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, err := a.tokenService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to generate access token", err)
	}

	refreshToken, err := a.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to generate refresh token", err)
	}

	auth := &models.Authentication{
		Token:     refreshToken,
		CreatedAt: utils.UTCNow(),
	}
	if err := a.authRepo.Save(ctx, auth); err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to persist refresh token", err)
	}

	return &dto.TokenPairData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshAccessToken issues a new access token from a stored, verified
// refresh token. Unknown or forged refresh tokens are rejected.
func (a *AuthFlowImpl) RefreshAccessToken(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.AccessTokenData, error) {
	stored, err := a.authRepo.TokenExists(ctx, req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("REFRESH_TOKEN_FAILED", "Failed to look up refresh token", err)
	}
	if !stored {
		return nil, ErrRefreshTokenInvalid
	}

	claims, err := a.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	accessToken, err := a.tokenService.GenerateAccessToken(claims.UserID)
	if err != nil {
		return nil, NewBusinessError("REFRESH_TOKEN_FAILED", "Failed to generate access token", err)
	}

	return &dto.AccessTokenData{AccessToken: accessToken}, nil
}

// Logout deletes the stored refresh token, ending the session
func (a *AuthFlowImpl) Logout(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) error {
	rows, err := a.authRepo.Delete(ctx, req.RefreshToken)
	if err != nil {
		return NewBusinessError("LOGOUT_FAILED", "Failed to delete refresh token", err)
	}
	if rows == 0 {
		return ErrRefreshTokenInvalid
	}
	return nil
}

// verifyCredentials resolves the username and compares the bcrypt hash.
// Unknown usernames and wrong passwords collapse to the same error.
func (a *AuthFlowImpl) verifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to look up user", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
