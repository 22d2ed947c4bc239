package dto

// LoginRequest is the payload for starting a session
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// RefreshTokenRequest carries the refresh token for renewal or logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenPairData wraps a fresh access/refresh token pair
type TokenPairData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenData wraps a renewed access token
type AccessTokenData struct {
	AccessToken string `json:"accessToken"`
}
