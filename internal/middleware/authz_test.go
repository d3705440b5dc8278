package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paste-swamp/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizationGates(t *testing.T) {
	owner := &Claims{UserID: 2, Username: "gator"}
	admin := &Claims{UserID: 1, Username: "admin", IsAdmin: true}
	other := &Claims{UserID: 3, Username: "swampy"}
	paste := &models.Paste{ID: 10, UserID: 2}

	assert.False(t, IsAuthenticated(nil))
	assert.True(t, IsAuthenticated(other))

	assert.False(t, IsAdmin(nil))
	assert.False(t, IsAdmin(owner))
	assert.True(t, IsAdmin(admin))

	assert.True(t, CanModifyPaste(owner, paste))
	assert.True(t, CanModifyPaste(admin, paste))
	assert.False(t, CanModifyPaste(other, paste))
	assert.False(t, CanModifyPaste(nil, paste))

	assert.True(t, CanModifyUser(owner, 2))
	assert.True(t, CanModifyUser(admin, 2))
	assert.False(t, CanModifyUser(other, 2))
	assert.False(t, CanModifyUser(nil, 2))
}

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 5, Username: "gator", IsAdmin: true}

	token, err := GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "gator", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenWithoutExpiryIsHandled(t *testing.T) {
	// A validly signed token may omit exp; the request must not panic.
	claims := &Claims{
		UserID:   9,
		Username: "croc",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	assert.NoError(t, err)

	var got *Claims
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(9), got.UserID)
	}
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsRegularUser(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 2, Username: "gator"})
	assert.NoError(t, err)

	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for a non-admin")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOptionalAuthPassesAnonymousThrough(t *testing.T) {
	var sawSession bool
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		_, sawSession = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/pastes", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawSession)
}

func TestOptionalAuthAttachesSessionWhenPresent(t *testing.T) {
	token, err := GenerateToken(&models.User{ID: 4, Username: "croc"})
	assert.NoError(t, err)

	var got *Claims
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/pastes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(4), got.UserID)
	}
}
