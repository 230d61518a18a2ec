package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coderr/internal/access"
	"coderr/internal/pkg/response"
)

const principalKey = "principal"

var errInvalidAuthHeader = errors.New("Invalid token header.")

// Authenticator resolves a bearer string into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (access.Principal, error)
}

// Authenticate attaches the caller to the request. Requests without an
// Authorization header continue as anonymous; the access rules decide
// whether that is enough. A header that is present but unusable is
// rejected with 401.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Set(principalKey, access.Principal{})
			c.Next()
			return
		}

		token, ok := parseAuthorization(header)
		if !ok {
			response.Detail(c, http.StatusUnauthorized, errInvalidAuthHeader.Error())
			c.Abort()
			return
		}

		p, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(principalKey, p)
		c.Set("user_id", p.UserID)
		c.Next()
	}
}

// parseAuthorization accepts "Token <t>" and "Bearer <t>".
func parseAuthorization(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// PrincipalFrom returns the caller attached by Authenticate, or the
// anonymous principal.
func PrincipalFrom(c *gin.Context) access.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(access.Principal); ok {
			return p
		}
	}
	return access.Principal{}
}
