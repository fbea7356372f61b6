package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	h := env.authHandler()

	body := bytes.NewReader([]byte(`{"email":"admin@ladelta.com","password":"admin-pass"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	w := httptest.NewRecorder()
	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)

	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "admin@ladelta.com", user["email"])
	assert.Equal(t, "admin", user["role"])

	// The issued token verifies back to the same identity.
	identity := env.auth.VerifyToken(token)
	require.NotNil(t, identity)
	assert.Equal(t, "admin@ladelta.com", identity.Email)

	// The session cookie is set alongside the body token.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	h := env.authHandler()

	body := bytes.NewReader([]byte(`{"email":"admin@ladelta.com","password":"nope"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	w := httptest.NewRecorder()
	h.Login(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
}

func TestLoginMissingCredentials(t *testing.T) {
	env := newTestEnv(t)
	h := env.authHandler()

	body := bytes.NewReader([]byte(`{"email":"admin@ladelta.com"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	h := env.authHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	w := httptest.NewRecorder()
	h.Login(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestVerifyWithToken(t *testing.T) {
	env := newTestEnv(t)
	h := env.verifyHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+env.employeeToken)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "ana@ladelta.com", user["email"])
	assert.Equal(t, "employee", user["role"])
}

func TestVerifyWithoutToken(t *testing.T) {
	env := newTestEnv(t)
	h := env.verifyHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", decodeBody(t, w)["error"])
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	h := env.authHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	h.Logout(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
