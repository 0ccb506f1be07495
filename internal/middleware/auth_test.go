package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boskoback/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "9b8f1e0a-0000-0000-0000-000000000001",
		"name":    "Ana Gomez",
		"email":   "ana@example.com",
		"role":    role,
		"exp":     exp.Unix(),
		"iat":     time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	r.GET("/secure", handlers...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	w := doGet(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	w := doGet(protectedRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	token := signToken(t, testSecret, model.RoleCustomer, time.Now().Add(time.Hour))
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, model.RoleCustomer, time.Now().Add(-time.Minute))
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", model.RoleCustomer, time.Now().Add(time.Hour))
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAllows(t *testing.T) {
	token := signToken(t, testSecret, model.RoleEmployee, time.Now().Add(time.Hour))
	w := doGet(protectedRouter(model.RoleAdmin, model.RoleEmployee), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleForbids(t *testing.T) {
	token := signToken(t, testSecret, model.RoleCustomer, time.Now().Add(time.Hour))
	w := doGet(protectedRouter(model.RoleAdmin), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
