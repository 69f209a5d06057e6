package handlers

import (
	"net/http"
)

// NewMeHandler returns an HTTP handler describing the authenticated user.
// @Summary Current user
// @Description Returns the user the bearer token was issued for
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserResponse "Current user"
// @Failure 401 {object} models.ErrorResponse "Authentication required"
// @Router /auth/me [get]
// @Security BearerAuth
func NewMeHandler(userGetter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userGetter(r.Context())
		if !ok {
			writeUnauthorized(w, detailAuthRequired)
			return
		}

		writeJSON(w, http.StatusOK, user.ToResponse())
	}
}
