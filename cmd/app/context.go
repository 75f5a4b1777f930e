package main

import (
	"context"
	"net/http"

	"github.com/mirrelia/quillpost/internal/sessionservice"
)

type contextKey string

const sessionContextKey = contextKey("session")

func (app *application) createSessionContext(r *http.Request, session *sessionservice.Session) *http.Request {
	ctx := context.WithValue(r.Context(), sessionContextKey, session)
	return r.WithContext(ctx)
}

// getSessionContext returns nil for anonymous requests.
func (app *application) getSessionContext(r *http.Request) *sessionservice.Session {
	session, ok := r.Context().Value(sessionContextKey).(*sessionservice.Session)
	if !ok {
		return nil
	}
	return session
}
