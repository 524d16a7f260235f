package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	UserName string `json:"userName" validate:"required,username"`
	Age      int    `json:"age" validate:"required,gte=1,lte=130"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestToDetails_UsesJSONNames(t *testing.T) {
	err := newValidator().Struct(signupPayload{Email: "nope", Password: "short", Age: 200})

	got := ToDetails(err)
	assert.Equal(t, map[string]string{
		"email":    "must be a valid email",
		"password": "must be between 8 and 72 characters long",
		"userName": "is required",
		"age":      "must be less than or equal to 130",
	}, got)
}

func TestToDetails_Valid(t *testing.T) {
	err := newValidator().Struct(signupPayload{Email: "a@b.com", Password: "longenough", UserName: "ada", Age: 30})
	assert.NoError(t, err)
	assert.Nil(t, ToDetails(err))
}

func TestToDetails_BadJSON(t *testing.T) {
	var p signupPayload
	err := json.Unmarshal([]byte(`{"age":"old"}`), &p)
	assert.Equal(t, map[string]string{"age": "must be a int"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &p)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

type gistsParams struct {
	Username string `json:"username" validate:"required,ghlogin"`
}

func TestGitHubLogin(t *testing.T) {
	v := newValidator()
	for _, ok := range []string{"octocat", "a", "mona-lisa", "x1-y2-z3"} {
		assert.NoError(t, v.Struct(gistsParams{Username: ok}), ok)
	}
	for _, bad := range []string{"-octo", "octo-", "oc--to", "octo cat", "octo/../cat", strings.Repeat("a", 40)} {
		err := v.Struct(gistsParams{Username: bad})
		assert.Equal(t, map[string]string{"username": "must be a valid GitHub login"}, ToDetails(err), bad)
	}
}
