package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"maintenance-gate/internal/middleware"
	"maintenance-gate/internal/models"
	"maintenance-gate/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenUsers fails every lookup
type brokenUsers struct{}

func (brokenUsers) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, errors.New("db down")
}

func (brokenUsers) Create(context.Context, *models.User) error {
	return errors.New("db down")
}

func authRouter(env *testEnv) http.Handler {
	r := newRouter(nil)
	r.POST("/login", env.h.Login)
	r.POST("/logout", Logout)
	r.GET("/profile", middleware.RequireAuth(), Profile)
	r.GET(LoginPagePath, env.h.LoginPage)
	r.POST(LoginPagePath, env.h.LoginForm)
	return r
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWithCookies(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_JSONAndProfile(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())
	r := authRouter(env)

	w := postJSON(r, "/login", models.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UserData  models.NormalizedUserData `json:"userData"`
		ExpiresIn int                       `json:"expiresIn"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.NormalizedUserData{ID: "1", Name: "admin", IsAdmin: true}, resp.UserData)
	assert.Equal(t, 43200, resp.ExpiresIn)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = getWithCookies(r, "/profile", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"1","name":"admin","isAdmin":true}`, w.Body.String())
}

func TestLogin_Form(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())
	r := authRouter(env)

	w := postForm(r, "/login", url.Values{"username": {"editor"}, "password": {"editor-pass"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdmin":false`)
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())
	r := authRouter(env)

	testCases := []struct {
		name     string
		body     models.LoginRequest
		wantCode int
	}{
		{"wrong password", models.LoginRequest{Username: "admin", Password: "nope"}, http.StatusUnauthorized},
		{"unknown user", models.LoginRequest{Username: "ghost", Password: "nope"}, http.StatusUnauthorized},
		{"missing password", models.LoginRequest{Username: "admin"}, http.StatusBadRequest},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/login", tc.body)
			assert.Equal(t, tc.wantCode, w.Code)
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())
	env.h.users = brokenUsers{}
	r := authRouter(env)

	w := postJSON(r, "/login", models.LoginRequest{Username: "admin", Password: "admin-pass"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestProfile_Anonymous(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())
	w := getWithCookies(authRouter(env), "/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())
	r := authRouter(env)

	w := postJSON(r, "/login", models.LoginRequest{Username: "admin", Password: "admin-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	req, _ := http.NewRequest(http.MethodPost, "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"message":"Logged out successfully"}`, w.Body.String())

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "test_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie should be expired")
}

func TestLoginPage(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())

	t.Run("anonymous sees the form", func(t *testing.T) {
		w := getWithCookies(authRouter(env), LoginPagePath+"?redirect=%2Fadmin%2Fmaintenance", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `name="password"`)
		assert.Contains(t, body, `value="/admin/maintenance"`)
	})

	t.Run("logged in user is redirected", func(t *testing.T) {
		r := newRouter(editorSession())
		r.GET(LoginPagePath, env.h.LoginPage)
		w := getWithCookies(r, LoginPagePath+"?redirect=//evil.example.com", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, SettingsPagePath, w.Header().Get("Location"))
	})
}

func TestLoginForm(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())
	r := authRouter(env)

	t.Run("success redirects", func(t *testing.T) {
		w := postForm(r, LoginPagePath, url.Values{
			"username": {"admin"},
			"password": {"admin-pass"},
			"redirect": {"/admin/maintenance?from=login"},
		}, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin/maintenance?from=login", w.Header().Get("Location"))
		assert.NotEmpty(t, w.Result().Cookies())
	})

	t.Run("wrong password re-renders", func(t *testing.T) {
		w := postForm(r, LoginPagePath, url.Values{"username": {"admin"}, "password": {"bad"}}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password.")
		assert.Contains(t, w.Body.String(), `value="admin"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postForm(r, LoginPagePath, url.Values{"username": {"admin"}}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Username and password are required.")
	})
}

func TestLoginRedirect_RejectsOffsiteTargets(t *testing.T) {
	env := newTestEnv(t, settings.NewMemoryStore())

	t.Run("form post with tab in target", func(t *testing.T) {
		w := postForm(authRouter(env), LoginPagePath, url.Values{
			"username": {"admin"},
			"password": {"admin-pass"},
			"redirect": {"/\t/evil.example"},
		}, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, SettingsPagePath, w.Header().Get("Location"))
	})

	t.Run("logged in user with encoded tab in target", func(t *testing.T) {
		r := newRouter(adminSession())
		r.GET(LoginPagePath, env.h.LoginPage)
		w := getWithCookies(r, LoginPagePath+"?redirect=%2F%09%2Fevil.example", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, SettingsPagePath, w.Header().Get("Location"))
	})

	t.Run("logged in user with backslash target", func(t *testing.T) {
		r := newRouter(adminSession())
		r.GET(LoginPagePath, env.h.LoginPage)
		w := getWithCookies(r, LoginPagePath+"?redirect=%2F%5Cevil.example", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, SettingsPagePath, w.Header().Get("Location"))
	})
}
