package middleware

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/models"
)

// JWTAuthMiddleware checks for a valid JWT and stores the claims in the echo
// context under "user". API routes get a 401 on failure.
func JWTAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseToken(c)
			if err != nil {
				return err
			}
			c.Set("user", claims)
			return next(c)
		}
	}
}

// JWTFormAuthMiddleware is the browser-form variant: instead of a 401 it
// redirects unauthenticated requests to the sign-in entry point with an
// error message, matching the redirect convention of the form handlers.
func JWTFormAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseToken(c)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/sign-in?error="+url.QueryEscape("You must be signed in"))
			}
			c.Set("user", claims)
			return next(c)
		}
	}
}

// parseToken extracts the JWT from the Authorization header or the "token"
// cookie (browser form posts carry no header) and validates it.
func parseToken(c echo.Context) (*models.JwtCustomClaims, error) {
	tokenString := ""

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
		}
		tokenString = parts[1]
	} else if cookie, err := c.Cookie("token"); err == nil {
		tokenString = cookie.Value
	}

	if tokenString == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}

	// Get JWT Secret from environment or use default
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey" // Must match the secret used for signing
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token signature")
		}
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return claims, nil
}
