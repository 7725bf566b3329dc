package router

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
)

const (
	// CSRFFieldName is the hidden form input carrying the token.
	CSRFFieldName = "csrfmiddlewaretoken"
	// CSRFHeaderName lets scripts send the token without a form body.
	CSRFHeaderName = "X-CSRFToken"
	// CSRFCookieName holds the token on the client.
	CSRFCookieName = "csrftoken"

	csrfNonceBytes = 16
)

// Signer produces and checks keyed signatures.
type Signer interface {
	Sign(str string) string
	Verify(signature, str string) bool
}

// CSRF issues and checks double-submit tokens of the form "<nonce>.<hmac(nonce)>".
//
// A request passes when the cookie and the submitted value are equal and the
// signature verifies, so a forged cross-site form cannot supply a matching value.
type CSRF struct {
	signer Signer
	secure bool
}

// NewCSRF builds a CSRF guard. secure marks the cookie Secure (HTTPS only).
func NewCSRF(signer Signer, secure bool) *CSRF {
	return &CSRF{signer: signer, secure: secure}
}

// Token returns the request's valid token, issuing a new cookie when absent or tampered.
func (c *CSRF) Token(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(CSRFCookieName); err == nil && c.valid(ck.Value) {
		return ck.Value
	}

	var b [csrfNonceBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		slog.ErrorContext(r.Context(), "failed to read csrf nonce", "error", err)
		return ""
	}
	nonce := hex.EncodeToString(b[:])
	token := nonce + "." + c.signer.Sign(nonce)

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// Protect rejects unsafe requests whose submitted token does not match the cookie.
func (c *CSRF) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			next.ServeHTTP(w, r)
			return
		}

		ck, err := r.Cookie(CSRFCookieName)
		if err != nil || !c.valid(ck.Value) {
			c.reject(w, r, "cookie missing or invalid")
			return
		}

		submitted := r.Header.Get(CSRFHeaderName)
		if submitted == "" {
			if err := ParseForm(w, r); err != nil {
				c.reject(w, r, "unreadable form")
				return
			}
			submitted = r.PostFormValue(CSRFFieldName)
		}

		if submitted != ck.Value {
			c.reject(w, r, "token mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (c *CSRF) valid(token string) bool {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok || len(nonce) != hex.EncodedLen(csrfNonceBytes) {
		return false
	}
	return c.signer.Verify(sig, nonce)
}

func (c *CSRF) reject(w http.ResponseWriter, r *http.Request, reason string) {
	slog.WarnContext(r.Context(), "csrf verification failed", "reason", reason, "path", r.URL.Path)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("Forbidden (CSRF verification failed)\n"))
}
