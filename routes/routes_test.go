package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pulse/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func doRequest(t *testing.T, router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter()

	for _, path := range []string{
		"/api/posts/all",
		"/api/posts/trending",
		"/api/notifications",
		"/api/stats/counts",
	} {
		w := doRequest(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestMalformedIdentifiersRejectedBeforeCore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter()

	token, err := handlers.GenerateToken(primitive.NewObjectID())
	require.NoError(t, err)

	// Each of these must fail identifier validation without touching the
	// store.
	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/posts/like/not-an-id"},
		{http.MethodPost, "/api/posts/not-an-id/bookmark"},
		{http.MethodDelete, "/api/posts/not-an-id"},
		{http.MethodGet, "/api/posts/likes/not-an-id"},
		{http.MethodPost, "/api/users/follow/not-an-id"},
	}

	for _, tt := range tests {
		w := doRequest(t, router, tt.method, tt.path, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.path)
	}
}

func TestCommentRequiresText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter()

	token, err := handlers.GenerateToken(primitive.NewObjectID())
	require.NoError(t, err)

	w := doRequest(t, router, http.MethodPost,
		"/api/posts/comment/"+primitive.NewObjectID().Hex(), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownAPIRouteIs404JSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter()

	w := doRequest(t, router, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Endpoint not found")
}
