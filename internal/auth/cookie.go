package auth

import (
	"net/http"
	"os"
)

// CookieName is the admin session cookie.
const CookieName = "admin_session"

// SetSessionCookie stores the session token in an http-only cookie whose
// max-age matches the token expiry.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	env := os.Getenv("ENV")
	// Secure cookies require HTTPS - enable for production environments
	secure := env == "production" || env == "prod"

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		HttpOnly: true,                 // XSS protection
		Secure:   secure,               // HTTPS only in production
		SameSite: http.SameSiteLaxMode, // CSRF protection
		Path:     "/",
		MaxAge:   maxAge,
	})
}

// ClearSessionCookie expires the cookie immediately. The token itself stays
// valid until its natural expiry; there is no server-side revocation.
func ClearSessionCookie(w http.ResponseWriter) {
	env := os.Getenv("ENV")
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   env == "production" || env == "prod",
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1, // Delete cookie
	})
}
