package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/internal/auth"
)

const testSecret = "test-secret-key-min-32-chars-for-testing"

func setupAuthTestRouter(jwtManager *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(jwtManager, zap.NewNop()))
	{
		protected.GET("/test", func(c *gin.Context) {
			id, _ := auth.GetIdentity(c)
			c.JSON(http.StatusOK, gin.H{"actorId": id.ActorID, "role": id.Role})
		})
		protected.POST("/admin", RequireRole(auth.RoleAdmin), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})
	}
	return router
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret)
	router := setupAuthTestRouter(jwtManager)

	token, err := jwtManager.GenerateToken("user-1", "user@sweetshop.test", auth.RoleCustomer, time.Minute)
	require.NoError(t, err)

	w := doRequest(router, "GET", "/api/v1/test", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router := setupAuthTestRouter(auth.NewJWTManager(testSecret))

	w := doRequest(router, "GET", "/api/v1/test", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupAuthTestRouter(auth.NewJWTManager(testSecret))

	w := doRequest(router, "GET", "/api/v1/test", "not-a-jwt")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	other := auth.NewJWTManager("another-secret-key-32-chars-long!!")
	token, err := other.GenerateToken("user-1", "user@sweetshop.test", auth.RoleCustomer, time.Minute)
	require.NoError(t, err)

	router := setupAuthTestRouter(auth.NewJWTManager(testSecret))
	w := doRequest(router, "GET", "/api/v1/test", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret)
	token, err := jwtManager.GenerateToken("user-1", "user@sweetshop.test", auth.RoleCustomer, -time.Minute)
	require.NoError(t, err)

	router := setupAuthTestRouter(jwtManager)
	w := doRequest(router, "GET", "/api/v1/test", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AdminOnly(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret)
	router := setupAuthTestRouter(jwtManager)

	adminToken, err := jwtManager.GenerateToken("admin-1", "admin@sweetshop.test", auth.RoleAdmin, time.Minute)
	require.NoError(t, err)
	customerToken, err := jwtManager.GenerateToken("user-1", "user@sweetshop.test", auth.RoleCustomer, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doRequest(router, "POST", "/api/v1/admin", adminToken).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(router, "POST", "/api/v1/admin", customerToken).Code)
}
