package authn

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/giang1412/ecom/config"
	"github.com/giang1412/ecom/services/token"
)

// GuardType names a credential strategy. The set is closed: each type
// maps to exactly one Guard implementation.
type GuardType string

const (
	Bearer GuardType = "bearer"
	APIKey GuardType = "apikey"
	None   GuardType = "none"
)

// Condition decides how multiple strategy verdicts combine.
type Condition int

const (
	// And requires every declared strategy to pass. The first failure
	// short-circuits with a generic unauthorized so the underlying
	// cause is not leaked.
	And Condition = iota
	// Or grants access on the first strategy that passes; if all fail,
	// the last observed error is raised.
	Or
)

// Policy declares which strategies an endpoint accepts and how their
// verdicts combine. The zero value is not useful; undeclared endpoints
// should use DefaultPolicy.
type Policy struct {
	Types     []GuardType
	Condition Condition
}

func DefaultPolicy() Policy {
	return Policy{Types: []GuardType{Bearer}, Condition: And}
}

func Public() Policy {
	return Policy{Types: []GuardType{None}, Condition: And}
}

// Gate resolves, per endpoint, which guards apply and how to combine
// their verdicts. It knows nothing of guard internals, only verdicts,
// so new credential types slot in without touching the control flow.
type Gate struct {
	bearer *BearerGuard
	apiKey *APIKeyGuard
	none   NoneGuard
}

func NewGate(tokens *token.Service, cfg *config.Config) *Gate {
	return &Gate{
		bearer: NewBearerGuard(tokens),
		apiKey: NewAPIKeyGuard(cfg.Auth.APIKey),
	}
}

func (g *Gate) guard(t GuardType) Guard {
	switch t {
	case Bearer:
		return g.bearer
	case APIKey:
		return g.apiKey
	case None:
		return g.none
	default:
		return nil
	}
}

// Middleware evaluates the policy for every request before handing off
// to the next handler.
func (g *Gate) Middleware(policy Policy) echo.MiddlewareFunc {
	if len(policy.Types) == 0 {
		policy = DefaultPolicy()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if policy.Condition == Or {
				lastErr := error(nil)
				for _, t := range policy.Types {
					guard := g.guard(t)
					if guard == nil {
						continue
					}
					if err := guard.Authenticate(c); err != nil {
						lastErr = err
						continue
					}
					return next(c)
				}
				if lastErr != nil {
					return lastErr
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			for _, t := range policy.Types {
				guard := g.guard(t)
				if guard == nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				}
				if err := guard.Authenticate(c); err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				}
			}
			return next(c)
		}
	}
}
