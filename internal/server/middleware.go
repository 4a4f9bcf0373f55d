package server

import (
	"net/http"
	"strings"

	"veilon-dashboard-go/internal/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// claimsKey is the echo context key the identity middleware stores the
// resolved claims under.
const claimsKey = "identity_claims"

// IdentityMiddleware validates the Bearer token issued by the identity
// provider and lifts the email and name claims into an identity.Claims
// value on the request context. Handlers pass that value explicitly into
// the core services; nothing downstream reads ambient session state.
func IdentityMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			mapClaims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			claims := identity.Claims{
				Email:      stringClaim(mapClaims, "email"),
				GivenName:  stringClaim(mapClaims, "given_name"),
				FamilyName: stringClaim(mapClaims, "family_name"),
			}
			if claims.Email == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token has no email claim"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFromContext returns the identity claims stored by IdentityMiddleware.
func ClaimsFromContext(c echo.Context) (identity.Claims, bool) {
	claims, ok := c.Get(claimsKey).(identity.Claims)
	return claims, ok
}

func stringClaim(claims jwt.MapClaims, name string) string {
	if v, ok := claims[name].(string); ok {
		return v
	}
	return ""
}
