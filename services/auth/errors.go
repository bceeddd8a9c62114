package auth

import "errors"

// User-facing conditions. Store-layer uniqueness/not-found failures are
// translated into these at the service boundary; anything unrecognised
// during refresh or logout collapses to ErrUnauthorized so callers can
// not probe token state.
var (
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrEmailNotFound           = errors.New("email not found")
	ErrInvalidPassword         = errors.New("invalid password")
	ErrOTPInvalid              = errors.New("invalid OTP code")
	ErrOTPExpired              = errors.New("OTP code has expired")
	ErrTOTPAndCodeRequired     = errors.New("either TOTP code or OTP code is required")
	ErrInvalidTOTP             = errors.New("invalid TOTP code")
	ErrRefreshTokenAlreadyUsed = errors.New("refresh token has already been used")
	ErrTOTPAlreadyEnabled      = errors.New("TOTP is already enabled")
	ErrTOTPNotEnabled          = errors.New("TOTP is not enabled")
	ErrUnauthorized            = errors.New("unauthorized")
)
