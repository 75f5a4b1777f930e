package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mirrelia/quillpost/internal/sessionservice"
)

// sessionCookieName carries the opaque session token. The token itself holds
// no state; it only keys the server-side store.
const sessionCookieName = "session_id"

func (app *application) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionservice.DefaultTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			method = r.Method
			proto  = r.Proto
			uri    = r.URL.RequestURI()
		)

		app.logger.Info("request from", slog.String("method", method), slog.String("uri", uri), slog.String("remote_addr", ip), slog.String("proto", proto))

		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the session cookie into a session bound to the
// request context. Requests without a valid session continue as anonymous;
// it is requireSession that rejects them.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := app.sessionService.Get(r.Context(), cookie.Value)
		if err != nil {
			// a store failure degrades to anonymous rather than failing the
			// request; requireSession still guards protected routes
			if !errors.Is(err, sessionservice.ErrSessionNotFound) {
				app.logError(r, err)
			}
			next.ServeHTTP(w, r)
			return
		}

		// the lookup renewed the server-side TTL; mirror it on the cookie so
		// the browser keeps it for another full window
		app.setSessionCookie(w, cookie.Value)

		r = app.createSessionContext(r, session)
		next.ServeHTTP(w, r)
	})
}

func (app *application) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.getSessionContext(r) == nil {
			app.authenticationRequiredResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	}
}
