package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func bearerToken(t *testing.T, role string) string {
	t.Helper()
	pair, err := utils.GenerateTokenPair(primitive.NewObjectID(), role, "user@example.com", testSecret)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func protectedRouter(middlewares ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", middlewares...)
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r := protectedRouter(AuthRequired(testSecret))

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Basic abc").Code)
	assert.Equal(t, http.StatusOK, doGet(r, bearerToken(t, "donor")).Code)
}

func TestAuthRequiredWrongSecret(t *testing.T) {
	pair, err := utils.GenerateTokenPair(primitive.NewObjectID(), "donor", "user@example.com", "other-secret")
	require.NoError(t, err)

	r := protectedRouter(AuthRequired(testSecret))
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+pair.AccessToken).Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", OptionalAuth(testSecret), func(c *gin.Context) {
		_, authed := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"authed": authed})
	})

	w := doGet(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)

	w = doGet(r, bearerToken(t, "donor"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":true`)
}

func TestAdminRequired(t *testing.T) {
	r := protectedRouter(AuthRequired(testSecret), AdminRequired())

	assert.Equal(t, http.StatusForbidden, doGet(r, bearerToken(t, "donor")).Code)
	assert.Equal(t, http.StatusOK, doGet(r, bearerToken(t, "admin")).Code)
}

func TestVendorRequired(t *testing.T) {
	r := protectedRouter(AuthRequired(testSecret), VendorRequired())

	assert.Equal(t, http.StatusForbidden, doGet(r, bearerToken(t, "donor")).Code)
	assert.Equal(t, http.StatusOK, doGet(r, bearerToken(t, "vendor")).Code)
	assert.Equal(t, http.StatusOK, doGet(r, bearerToken(t, "admin")).Code)
}
