package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"ewaste-lifecycle-service/internal/domain/shared"

	"github.com/google/uuid"
)

// GetUsers handles GET /api/users?role=|id=. A single user is returned for
// an id lookup, a role-filtered list otherwise; the password column is never
// selected, so neither shape can leak it.
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	query := r.URL.Query()
	role := query.Get("role")
	rawID := query.Get("id")

	if rawID != "" {
		userID, err := uuid.Parse(rawID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID format.")
			return
		}

		user, err := h.directory.GetUser(ctx, userID)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
		return
	}

	if role == "" {
		writeError(w, http.StatusBadRequest, "A 'role' query parameter or an 'id' query parameter is required.")
		return
	}

	users, err := h.directory.ListUsersByRole(ctx, role)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidRole) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid role specified: %s. Valid roles are user, vendor, admin.", role))
			return
		}
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
