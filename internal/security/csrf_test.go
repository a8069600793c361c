package security

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal_dashboard/internal/cache"
	"legal_dashboard/internal/middlewares"
)

func newCSRF(t *testing.T) *CSRFProtection {
	t.Helper()
	c := cache.NewMemoryCache(cache.DefaultConfig())
	t.Cleanup(func() { c.Close() })
	return NewCSRFProtection(&CSRFConfig{
		Cache:  c,
		Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	})
}

func postForm(session string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/shell/collapse", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != "" {
		req = req.WithContext(middlewares.WithSessionID(req.Context(), session))
	}
	return req
}

func TestTokenIsStablePerSession(t *testing.T) {
	p := newCSRF(t)
	ctx := context.Background()

	a1, err := p.Token(ctx, "a")
	require.NoError(t, err)
	a2, err := p.Token(ctx, "a")
	require.NoError(t, err)
	b, err := p.Token(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)

	_, err = p.Token(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMiddlewareAcceptsMatchingToken(t *testing.T) {
	p := newCSRF(t)
	token, err := p.Token(context.Background(), "a")
	require.NoError(t, err)

	called := false
	h := p.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("a", url.Values{"csrf_token": {token}}))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareRejectsMismatch(t *testing.T) {
	p := newCSRF(t)
	tokenA, err := p.Token(context.Background(), "a")
	require.NoError(t, err)
	_, err = p.Token(context.Background(), "b")
	require.NoError(t, err)

	called := false
	h := p.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	cases := map[string]*http.Request{
		"missing token":       postForm("a", url.Values{}),
		"other session token": postForm("b", url.Values{"csrf_token": {tokenA}}),
		"no session":          postForm("", url.Values{"csrf_token": {tokenA}}),
		"no stored token":     postForm("c", url.Values{"csrf_token": {tokenA}}),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestMiddlewareAcceptsHeaderToken(t *testing.T) {
	p := newCSRF(t)
	token, err := p.Token(context.Background(), "a")
	require.NoError(t, err)

	req := postForm("a", url.Values{})
	req.Header.Set("X-CSRF-Token", token)

	rec := httptest.NewRecorder()
	p.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewarePassesSafeMethods(t *testing.T) {
	p := newCSRF(t)
	called := false
	h := p.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken(32)
	require.NoError(t, err)
	b, err := GenerateToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
	assert.True(t, SecureCompare(a, a))
	assert.False(t, SecureCompare(a, b))
}
