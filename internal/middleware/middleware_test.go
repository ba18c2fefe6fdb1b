package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestErrorHandler_HTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(echo.NewHTTPError(http.StatusConflict, "no seats available"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no seats available", body["message"])
}

func TestErrorHandler_PlainErrorIsHidden(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(errors.New("pq: connection refused"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-7", RoleAdmin)
	require.NoError(t, err)

	id, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "user-7", Role: RoleAdmin}, id)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestValidateToken_Claims(t *testing.T) {
	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	id, err := ValidateToken(testSecret, sign(jwt.MapClaims{"user_id": float64(42), "exp": exp}))
	require.NoError(t, err)
	assert.Equal(t, "42", id.UserID)
	assert.Equal(t, RoleUser, id.Role)

	_, err = ValidateToken(testSecret, sign(jwt.MapClaims{"role": "user", "exp": exp}))
	assert.Error(t, err)

	_, err = ValidateToken(testSecret, sign(jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(-time.Hour).Unix()}))
	assert.Error(t, err)
}

func TestRequireAuth(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.HTTPErrorHandler = ErrorHandler
			e.GET("/me", func(c echo.Context) error {
				id, ok := IdentityFrom(c)
				if !ok {
					return echo.NewHTTPError(http.StatusInternalServerError, "no identity")
				}
				return c.String(http.StatusOK, id.UserID)
			}, RequireAuth(testSecret))

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "user-1", rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	userToken, _ := GenerateToken(testSecret, "user-1", RoleUser)
	adminToken, _ := GenerateToken(testSecret, "admin-1", RoleAdmin)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	admin := e.Group("/admin", RequireAuth(testSecret), RequireRole(RoleAdmin))
	admin.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for token, code := range map[string]int{
		userToken:  http.StatusForbidden,
		adminToken: http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, code, rec.Code)
	}
}

func TestRequireRole_WithoutIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequireRole(RoleAdmin)(func(c echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestSearchRateLimiter(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.POST("/search", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, SearchRateLimiter(1))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/search", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes[1:], http.StatusTooManyRequests)
}

func TestSearchRateLimiter_Disabled(t *testing.T) {
	e := echo.New()
	e.POST("/search", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, SearchRateLimiter(0))

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestValidator(t *testing.T) {
	type payRequest struct {
		Method string `json:"method" validate:"required,oneof=bkash nagad card cash"`
	}
	type routeRequest struct {
		Stops []string `json:"stops" validate:"required,min=2"`
	}
	v := NewValidator()

	assert.NoError(t, v.Validate(&payRequest{Method: "bkash"}))

	err := v.Validate(&payRequest{})
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "method is required", he.Message)

	err = v.Validate(&payRequest{Method: "paypal"})
	assert.Contains(t, err.(*echo.HTTPError).Message, "method must be one of")

	err = v.Validate(&routeRequest{Stops: []string{"A"}})
	assert.Contains(t, err.(*echo.HTTPError).Message, "stops")
}
