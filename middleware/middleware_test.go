package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"free-gift-coupon/models"
	"free-gift-coupon/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, *utils.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := utils.NewTokenIssuer("test-secret", "1h")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("user_id")})
	})
	router.GET("/admin", AuthMiddleware(tokens), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router, tokens
}

func do(router *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router, tokens := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(router, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, "/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, "/me", "Bearer abc").Code)

	token, err := tokens.Generate(9, "a@b.c", models.RoleCustomer)
	require.NoError(t, err)
	w := do(router, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":9}`, w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	router, tokens := newRouter(t)

	customer, err := tokens.Generate(1, "c@b.c", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(router, "/admin", "Bearer "+customer).Code)

	admin, err := tokens.Generate(2, "a@b.c", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, do(router, "/admin", "Bearer "+admin).Code)
}
