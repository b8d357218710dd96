package session

import (
	"net/http"
	"time"
)

// CookieTransport carries the signed identifier in a plain HTTP cookie. The
// token is already tamper-evident, so the cookie value is the signed form
// verbatim.
type CookieTransport struct {
	name     string
	path     string
	httpOnly bool
	secure   bool
	sameSite http.SameSite
}

// CookieOption configures a CookieTransport.
type CookieOption func(*CookieTransport)

// WithCookiePath sets the cookie path, "/" by default.
func WithCookiePath(path string) CookieOption {
	return func(t *CookieTransport) {
		t.path = path
	}
}

// WithCookieHTTPOnly toggles the HttpOnly flag, on by default.
func WithCookieHTTPOnly(httpOnly bool) CookieOption {
	return func(t *CookieTransport) {
		t.httpOnly = httpOnly
	}
}

// WithCookieSecure toggles the Secure flag, off by default.
func WithCookieSecure(secure bool) CookieOption {
	return func(t *CookieTransport) {
		t.secure = secure
	}
}

// WithCookieSameSite overrides the SameSite policy, Lax by default.
func WithCookieSameSite(mode http.SameSite) CookieOption {
	return func(t *CookieTransport) {
		t.sameSite = mode
	}
}

// NewCookieTransport builds a cookie transport for the named cookie.
func NewCookieTransport(name string, opts ...CookieOption) *CookieTransport {
	t := &CookieTransport{
		name:     name,
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// GetToken reads the named cookie from the request.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrNoToken
	}
	return c.Value, nil
}

// SetToken writes the token cookie. A zero maxAge produces a session cookie.
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, maxAge time.Duration) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     t.path,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: t.httpOnly,
		Secure:   t.secure,
		SameSite: t.sameSite,
	})
	return nil
}

// ClearToken expires the token cookie immediately.
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     t.path,
		MaxAge:   -1,
		HttpOnly: t.httpOnly,
		Secure:   t.secure,
		SameSite: t.sameSite,
	})
	return nil
}
