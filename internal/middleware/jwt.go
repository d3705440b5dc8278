// internal/middleware/jwt.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"paste-swamp/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// Overridden at startup via Configure; the default only exists so
	// tests can mint tokens without wiring config.
	jwtSecret       = []byte("paste-swamp-dev-secret-change-me")
	tokenExpiration = 24 * time.Hour
)

// Configure sets the signing secret and token lifetime.
func Configure(secret string, ttl time.Duration) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if ttl > 0 {
		tokenExpiration = ttl
	}
}

// Claims represents the JWT claims for our application
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new JWT token for the given user
func GenerateToken(user *models.User) (string, error) {
	expirationTime := time.Now().Add(tokenExpiration)

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "paste-swamp-api",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates the provided JWT token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Define a custom context key type to avoid collisions
type contextKey string

// SessionKey is the key used to store the session claims in the context
const SessionKey contextKey = "session"

// SetSessionInContext saves the validated claims in the request context
func SetSessionInContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, SessionKey, claims)
}

// GetSessionFromContext retrieves the session claims from the context.
// A nil result means the request is anonymous.
func GetSessionFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(SessionKey).(*Claims)
	return claims, ok && claims != nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// session claims in the request context.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(SetSessionInContext(r.Context(), claims)))
	}
}

// RequireAdmin rejects requests that are not an authenticated administrator.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := GetSessionFromContext(r.Context())
		if !claims.IsAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

// OptionalAuth stores session claims when a valid token is supplied but
// lets anonymous requests through untouched.
func OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claims, err := claimsFromRequest(r); err == nil {
			r = r.WithContext(SetSessionInContext(r.Context(), claims))
		}
		next(w, r)
	}
}

func claimsFromRequest(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("Authorization header required")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.New("Invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := ValidateToken(tokenString)
	if err != nil {
		return nil, errors.New("Invalid token")
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, errors.New("Token expired")
	}
	return claims, nil
}
