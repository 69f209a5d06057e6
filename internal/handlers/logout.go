package handlers

//go:generate mockgen -source=logout.go -destination=mock_logout.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/filmtrack/internal/models"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// NewLogoutHandler returns an HTTP handler that revokes the presented token.
// @Summary Logout
// @Description Revokes the bearer token used for this request. Other tokens of the user stay valid.
// @Tags auth
// @Produce json
// @Success 200 {object} models.MessageResponse "Logged out"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter, tokenGetter TokenGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := tokenGetter(r.Context())
		if !ok {
			writeUnauthorized(w, detailAuthRequired)
			return
		}

		if err := svc.Logout(r.Context(), token); err != nil {
			writeServiceError(r.Context(), w, err, "")
			return
		}

		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Successfully logged out"})
	}
}
