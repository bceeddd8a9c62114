package authn

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/giang1412/ecom/services/token"
)

const (
	UserIDKey = "_authn_user_id"
	ClaimsKey = "_authn_claims"
)

// Guard is an opaque predicate over the incoming request: it grants or
// denies access based on the credentials presented.
type Guard interface {
	Authenticate(c echo.Context) error
}

// BearerGuard authenticates a request by its Authorization bearer
// access token and stores the verified claims in the request context.
type BearerGuard struct {
	tokens *token.Service
}

func NewBearerGuard(tokens *token.Service) *BearerGuard {
	return &BearerGuard{tokens: tokens}
}

func (g *BearerGuard) Authenticate(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	claims, err := g.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		switch err {
		case token.ErrExpiredToken:
			return echo.NewHTTPError(http.StatusUnauthorized, "Access token has expired")
		case token.ErrMalformedToken:
			return echo.NewHTTPError(http.StatusUnauthorized, "Malformed access token")
		case token.ErrInvalidSignature:
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token signature")
		default:
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
		}
	}

	c.Set(UserIDKey, claims.UserID)
	c.Set(ClaimsKey, claims)
	return nil
}

// APIKeyGuard authenticates a request by the X-API-Key header.
type APIKeyGuard struct {
	key string
}

func NewAPIKeyGuard(key string) *APIKeyGuard {
	return &APIKeyGuard{key: key}
}

func (g *APIKeyGuard) Authenticate(c echo.Context) error {
	if g.key == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "API key authentication is not configured")
	}

	presented := c.Request().Header.Get("X-API-Key")
	if presented == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "API key required")
	}

	if subtle.ConstantTimeCompare([]byte(presented), []byte(g.key)) != 1 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid API key")
	}
	return nil
}

// NoneGuard always grants access; it marks public endpoints.
type NoneGuard struct{}

func (NoneGuard) Authenticate(echo.Context) error {
	return nil
}

func GetUserID(c echo.Context) uint {
	if userID, ok := c.Get(UserIDKey).(uint); ok {
		return userID
	}
	return 0
}

func GetClaims(c echo.Context) *token.AccessClaims {
	if claims, ok := c.Get(ClaimsKey).(*token.AccessClaims); ok {
		return claims
	}
	return nil
}
