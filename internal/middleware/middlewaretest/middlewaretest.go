// Package middlewaretest wires fixture users into gin test routers.
package middlewaretest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/gin-gonic/gin"

	"coderr/internal/access"
	"coderr/internal/domain"
	"coderr/internal/middleware"
	"coderr/internal/pkg/apperr"
)

type authenticator map[string]access.Principal

func (a authenticator) Authenticate(_ context.Context, token string) (access.Principal, error) {
	if p, ok := a[token]; ok {
		return p, nil
	}
	return access.Principal{}, apperr.ErrInvalidToken
}

// Token is the bearer string Router accepts for u.
func Token(u *domain.User) string {
	return "test-" + strconv.FormatInt(u.ID, 10)
}

// Router returns a gin engine whose authentication middleware knows users.
func Router(users ...*domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	auth := authenticator{}
	for _, u := range users {
		p := access.Principal{UserID: u.ID, IsStaff: u.IsStaff}
		if u.Profile != nil {
			p.Role = u.Profile.Type
		}
		auth[Token(u)] = p
	}

	r := gin.New()
	r.Use(middleware.Authenticate(auth))
	return r
}

// Do sends a JSON request as u (anonymous when u is nil).
func Do(r http.Handler, method, path string, u *domain.User, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if u != nil {
		req.Header.Set("Authorization", "Token "+Token(u))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
