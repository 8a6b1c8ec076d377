package handlers

import (
	"context"
	"net/http"

	"github.com/photoshare/backend/internal/logger"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// NewLogoutHandler returns an HTTP handler for logout. Logout is
// idempotent: a request without a live session still succeeds.
// @Summary Log out
// @Description Destroys the session binding and clears the cookie.
// @Tags auth
// @Produce json
// @Success 200 "Session destroyed"
// @Router /admin/logout [post]
func NewLogoutHandler(svc Logouter, cookies SessionCookier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := cookies.GetTokenFromRequest(ctx, r)
		if err == nil && token != "" {
			if err := svc.Logout(ctx, token); err != nil {
				logger.Log.Errorw("logout failed", "err", err)
			}
		}

		cookies.ClearCookie(w)
		w.WriteHeader(http.StatusOK)
	}
}
