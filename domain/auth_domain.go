package domain

import (
	"errors"
)

var (
	MessageSuccessRefreshToken = "token refreshed"
	MessageSuccessGetProfile   = "profile retrieved successfully"

	MessageFailedRefreshToken = "failed to refresh token"
	MessageFailedGetProfile   = "failed to retrieve profile"

	ErrNoRefreshToken      = errors.New("no refresh token provided")
	ErrRefreshTokenRevoked = errors.New("refresh token is revoked")
	ErrRefreshFailed       = errors.New("failed to refresh token")
	ErrNoIDToken           = errors.New("no id token found")
	ErrStateMismatch       = errors.New("oauth state mismatch")
	ErrMissingAuthCode     = errors.New("missing authorization code")
)

type (
	// ProfileResponse is read from the unverified id_token cookie and is
	// display data only, never an authorization input.
	ProfileResponse struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
		Gender      string `json:"gender"`
	}

	RefreshResponse struct {
		AccessToken string `json:"access_token"`
	}
)
