package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"salescrm/internal/auth"
)

const identityContextKey = "identity"

// Authorize verifies the bearer token and stores the actor's identity in
// the request context for handlers to pick up.
func Authorize(validator *auth.JwtValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHdr := c.Request().Header.Get("Authorization")
			hdrSplit := strings.Split(authHdr, " ")
			if len(hdrSplit) != 2 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid Authorization header format")
			}

			claims, err := validator.Verify(hdrSplit[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(identityContextKey, claims.Identity())
			return next(c)
		}
	}
}

// IdentityFromContext extracts the authenticated actor placed by Authorize
func IdentityFromContext(c echo.Context) (auth.Identity, error) {
	identity, ok := c.Get(identityContextKey).(auth.Identity)
	if !ok {
		return auth.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "request is not authenticated")
	}
	return identity, nil
}
