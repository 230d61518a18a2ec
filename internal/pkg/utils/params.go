package utils

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"coderr/internal/pkg/apperr"
)

// ParamID parses a positive integer path parameter. Anything else is
// reported as not found, like an unmatched route.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound("Not found.")
	}
	return id, nil
}

// QueryInt64 parses an optional integer query parameter. Parse
// failures are added to verr under the parameter name.
func QueryInt64(c *gin.Context, name string, verr *apperr.ValidationError) (int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		verr.Add(name, "A valid integer is required.")
		return 0, false
	}
	return v, true
}

func QueryDecimal(c *gin.Context, name string, verr *apperr.ValidationError) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Add(name, "A valid number is required.")
		return decimal.Zero, false
	}
	return v, true
}

// AbsoluteURL builds an absolute URL for path on the host that served c.
func AbsoluteURL(c *gin.Context, path string, query url.Values) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: path}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// NonNil returns s, or an empty slice when s is nil, so lists encode as [].
func NonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
