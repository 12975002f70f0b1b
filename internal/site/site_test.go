package site

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"maintenance-gate/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(h)

	// ReverseProxy falls back to CloseNotifier when the context cannot be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req.WithContext(ctx))
	return w
}

func get(path string) *http.Request {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	return req
}

func TestHandler_Placeholder(t *testing.T) {
	h, err := Handler("")
	require.NoError(t, err)

	w := serve(t, h, get("/anything"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No upstream configured")
}

func TestHandler_Proxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", "yes")
		io.WriteString(w, "upstream saw "+r.URL.Path)
	}))
	defer upstream.Close()

	h, err := Handler(upstream.URL)
	require.NoError(t, err)

	w := serve(t, h, get("/blog/hello"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-Upstream"))
	assert.Equal(t, "upstream saw /blog/hello", w.Body.String())
}

func TestHandler_DoesNotForwardSessionCookie(t *testing.T) {
	seen := make(chan http.Header, 1)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	h, err := Handler(upstream.URL)
	require.NoError(t, err)

	req := get("/account")
	req.AddCookie(&http.Cookie{Name: middleware.SessionName, Value: "SIGNED-ADMIN-SESSION"})
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})

	w := serve(t, h, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	header := <-seen
	upstreamReq := &http.Request{Header: header}
	_, err = upstreamReq.Cookie(middleware.SessionName)
	assert.ErrorIs(t, err, http.ErrNoCookie)
	assert.NotContains(t, header.Get("Cookie"), "SIGNED-ADMIN-SESSION")

	theme, err := upstreamReq.Cookie("theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme.Value)
}

func TestHandler_NoCookiesLeftAfterStrip(t *testing.T) {
	seen := make(chan http.Header, 1)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Clone()
	}))
	defer upstream.Close()

	h, err := Handler(upstream.URL)
	require.NoError(t, err)

	req := get("/")
	req.AddCookie(&http.Cookie{Name: middleware.SessionName, Value: "SIGNED"})
	serve(t, h, req)

	assert.Empty(t, (<-seen).Values("Cookie"))
}

func TestHandler_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	h, err := Handler(url)
	require.NoError(t, err)

	w := serve(t, h, get("/"))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandler_InvalidUpstream(t *testing.T) {
	_, err := Handler("not a url")
	assert.Error(t, err)
}
