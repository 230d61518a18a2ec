package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"coderr/internal/access"
	"coderr/internal/domain"
	"coderr/internal/pkg/apperr"
)

type stubAuthenticator struct {
	tokens map[string]access.Principal
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (access.Principal, error) {
	if p, ok := s.tokens[token]; ok {
		return p, nil
	}
	return access.Principal{}, apperr.ErrInvalidToken
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := stubAuthenticator{tokens: map[string]access.Principal{
		"good": {UserID: 42, Role: domain.RoleBusiness},
	}}

	router := gin.New()
	router.Use(Authenticate(auth))
	router.GET("/whoami", func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "role": p.Role})
	})
	return router
}

func TestAuthenticate_ValidToken(t *testing.T) {
	for _, scheme := range []string{"Token", "Bearer"} {
		t.Run(scheme, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", scheme+" good")
			newRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"user_id":42,"role":"business"}`, w.Body.String())
		})
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token nope")
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid token."}`, w.Body.String())
}

func TestAuthenticate_WrongFormat(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token header.")
}

func TestAuthenticate_NoHeaderIsAnonymous(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"role":""}`, w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"https://app.example.com"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
