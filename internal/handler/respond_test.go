package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,password_policy"`
	Role     string `json:"role" validate:"omitempty,role"`
	Rating   int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func TestValidationMessage(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	msg := ValidationMessage(v.Validate(&sample{Name: "short", Email: "nope"}))
	require.Contains(t, msg, "name must be at least 20 characters")
	require.Contains(t, msg, "Please enter a valid email")

	msg = ValidationMessage(v.Validate(&sample{Name: strings.Repeat("n", 20), Email: "a@b.co", Password: "weakpass"}))
	require.Contains(t, msg, "Password must be 8-16 characters")

	msg = ValidationMessage(v.Validate(&sample{Name: strings.Repeat("n", 20), Email: "a@b.co", Role: "root"}))
	require.Contains(t, msg, "Invalid role")

	msg = ValidationMessage(v.Validate(&sample{Name: strings.Repeat("n", 20), Email: "a@b.co", Rating: 6}))
	require.Equal(t, "rating must be at most 5", msg)

	msg = ValidationMessage(v.Validate(&sample{}))
	require.Contains(t, msg, "name is required")

	require.NoError(t, v.Validate(&sample{Name: strings.Repeat("n", 20), Email: "a@b.co", Password: "Secret@12", Role: "store_owner", Rating: 3}))
	require.Equal(t, "plain", ValidationMessage(errors.New("plain")))
}

func TestParamID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	c.SetParamValues("12")
	id, err := ParamID(c, "id")
	require.NoError(t, err)
	require.Equal(t, 12, id)

	for _, bad := range []string{"abc", "0", "-3", ""} {
		c.SetParamValues(bad)
		_, err := ParamID(c, "id")
		require.Error(t, err, bad)
	}
}

func TestBindAndValidate(t *testing.T) {
	e := echo.New()
	v, err := NewValidator()
	require.NoError(t, err)
	e.Validator = v

	newCtx := func(body string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	c, rec := newCtx("{bad")
	var s sample
	ok, err := BindAndValidate(c, &s)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())

	c, rec = newCtx(`{"name":"x","email":"a@b.co"}`)
	ok, err = BindAndValidate(c, &s)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	c, _ = newCtx(`{"name":"` + strings.Repeat("n", 25) + `","email":"a@b.co"}`)
	s = sample{}
	ok, err = BindAndValidate(c, &s)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a@b.co", s.Email)
}
