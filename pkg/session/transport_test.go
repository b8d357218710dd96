package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrow/web.session/pkg/session"
)

func TestCookieTransport(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		tr := session.NewCookieTransport("sid")

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "token-value", 5*time.Minute))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sid", cookies[0].Name)
		assert.Equal(t, "token-value", cookies[0].Value)
		assert.Equal(t, 300, cookies[0].MaxAge)
		assert.Equal(t, "/", cookies[0].Path)
		assert.True(t, cookies[0].HttpOnly)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])

		token, err := tr.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "token-value", token)
	})

	t.Run("absent cookie", func(t *testing.T) {
		t.Parallel()

		tr := session.NewCookieTransport("sid")
		_, err := tr.GetToken(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, session.ErrNoToken)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		t.Parallel()

		tr := session.NewCookieTransport("sid")
		w := httptest.NewRecorder()
		require.NoError(t, tr.ClearToken(w))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("options pass through", func(t *testing.T) {
		t.Parallel()

		tr := session.NewCookieTransport("sid",
			session.WithCookiePath("/app"),
			session.WithCookieHTTPOnly(false),
			session.WithCookieSecure(true),
			session.WithCookieSameSite(http.SameSiteStrictMode),
		)

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "v", 0))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "/app", cookies[0].Path)
		assert.False(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	})
}

func TestHeaderTransport(t *testing.T) {
	t.Parallel()

	t.Run("round trip with prefix", func(t *testing.T) {
		t.Parallel()

		tr := session.NewHeaderTransport("X-Session-Token")

		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "token-value", time.Minute))
		assert.Equal(t, "Bearer token-value", w.Header().Get("X-Session-Token"))
		assert.NotEmpty(t, w.Header().Get("X-Session-Token-Expires"))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Session-Token", "Bearer token-value")

		token, err := tr.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "token-value", token)
	})

	t.Run("custom prefix", func(t *testing.T) {
		t.Parallel()

		tr := session.NewHeaderTransport("X-Session-Token", session.WithHeaderPrefix(""))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Session-Token", "bare-token")

		token, err := tr.GetToken(r)
		require.NoError(t, err)
		assert.Equal(t, "bare-token", token)
	})

	t.Run("absent header", func(t *testing.T) {
		t.Parallel()

		tr := session.NewHeaderTransport("X-Session-Token")
		_, err := tr.GetToken(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, session.ErrNoToken)
	})

	t.Run("clear removes headers", func(t *testing.T) {
		t.Parallel()

		tr := session.NewHeaderTransport("X-Session-Token")
		w := httptest.NewRecorder()
		require.NoError(t, tr.SetToken(w, "v", time.Minute))
		require.NoError(t, tr.ClearToken(w))

		assert.Empty(t, w.Header().Get("X-Session-Token"))
		assert.Empty(t, w.Header().Get("X-Session-Token-Expires"))
	})
}
