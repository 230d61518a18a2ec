package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderr/internal/pkg/apperr"
)

type item struct {
	Kind  string `json:"kind" binding:"required,oneof=a b"`
	Count *int   `json:"count" binding:"omitempty,gte=0"`
}

type payload struct {
	Email string `json:"email" binding:"required,email"`
	Note  string `json:"note" binding:"max=3"`
	Items []item `json:"items" binding:"dive"`
}

func bind(t *testing.T, body string) *apperr.ValidationError {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p payload
	err := c.ShouldBindJSON(&p)
	require.Error(t, err)
	return FromBinding(err)
}

func TestFromBinding_FieldPathsUseJSONNames(t *testing.T) {
	verr := bind(t, `{"email":"nope","note":"long","items":[{"kind":"a"},{"kind":"z","count":-1}]}`)

	assert.Equal(t, []string{"Enter a valid email address."}, verr.Fields["email"])
	assert.Equal(t, []string{"Ensure this field has no more than 3 characters."}, verr.Fields["note"])
	assert.Equal(t, []string{`"z" is not a valid choice.`}, verr.Fields["items[1].kind"])
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 0."}, verr.Fields["items[1].count"])
	assert.NotContains(t, verr.Fields, "items[0].kind")
}

func TestFromBinding_Required(t *testing.T) {
	verr := bind(t, `{}`)
	assert.Equal(t, []string{"This field is required."}, verr.Fields["email"])
}

func TestFromBinding_DecodeErrors(t *testing.T) {
	verr := bind(t, `{"email":5}`)
	assert.Contains(t, verr.Fields, "email")

	verr = bind(t, ``)
	assert.Equal(t, []string{"Request body is empty."}, verr.Fields[apperr.NonFieldErrors])

	verr = bind(t, `{"email":`)
	assert.Contains(t, verr.Fields, apperr.NonFieldErrors)
}
