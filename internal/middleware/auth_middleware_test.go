package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const jwtSecret = "test-secret-key"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tokens := auth.NewTokenManager([]byte(jwtSecret), time.Hour)

	// Protected route
	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(tokens))

	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Claims not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": userID,
			"email":   claims.Email,
		})
	})

	return r
}

func generateTestToken(userID int64, secret string) string {
	token, _ := auth.NewTokenManager([]byte(secret), time.Hour).Issue(userID, "ana@example.com")
	return token
}

func serve(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected/resource", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	router := setupRouter()
	token := generateTestToken(17, jwtSecret)

	resp := serve(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), `"user_id":17`)
	assert.Contains(t, resp.Body.String(), "ana@example.com")
}

func TestJWTAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	router := setupRouter()

	resp := serve(router, "bearer "+generateTestToken(1, jwtSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestJWTAuthMiddleware_NoToken(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"scheme only", "Bearer"},
		{"scheme with blank token", "Bearer   "},
		{"other scheme", "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(router, tt.header)

			assert.Equal(t, http.StatusUnauthorized, resp.Code)
			assert.JSONEq(t, `{"error":"Access denied. No token provided."}`, resp.Body.String())
		})
	}
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupRouter()

	resp := serve(router, "Bearer invalid-token")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, resp.Body.String())
}

func TestJWTAuthMiddleware_WrongSecret(t *testing.T) {
	router := setupRouter()

	resp := serve(router, "Bearer "+generateTestToken(1, "another-secret"))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	router := setupRouter()

	claims := auth.Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expired, _ := token.SignedString([]byte(jwtSecret))

	resp := serve(router, "Bearer "+expired)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid token")
}
