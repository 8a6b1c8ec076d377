package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionAuth resolves the request's session token to a user id. Used by
// the mutating endpoints as their authorization guard.
type SessionAuth interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionCookier issues and clears the session cookie on responses.
type SessionCookier interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	SetCookie(w http.ResponseWriter, token string)
	ClearCookie(w http.ResponseWriter)
}

// authenticate resolves the current session or writes a 401.
func authenticate(w http.ResponseWriter, r *http.Request, auth SessionAuth) (uuid.UUID, bool) {
	ctx := r.Context()

	token, err := auth.GetTokenFromRequest(ctx, r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Login required")
		return uuid.Nil, false
	}

	userID, err := auth.GetUserID(ctx, token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Login required")
		return uuid.Nil, false
	}

	return userID, true
}
