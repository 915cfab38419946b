package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"ewaste-lifecycle-service/internal/domain/shared"

	"github.com/rs/zerolog"
)

// internalErrorMessage is deliberately generic: database errors are logged,
// never echoed to the client
const internalErrorMessage = "An internal server error occurred."

// errorResponse is the JSON error envelope
type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeDomainError maps a domain error to its HTTP status, hiding internal
// failure details behind a generic 500 body
func writeDomainError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "Item not found.")
	case errors.Is(err, shared.ErrPickupNotFound):
		writeError(w, http.StatusNotFound, "Pickup not found.")
	case errors.Is(err, shared.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, shared.ErrVendorNotFound):
		writeError(w, http.StatusNotFound, "Vendor not found.")
	case errors.Is(err, shared.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrAuctionNotOpen),
		errors.Is(err, shared.ErrAuctionNotDraft),
		errors.Is(err, shared.ErrAuctionEnded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, shared.ErrBidAmountInvalid),
		errors.Is(err, shared.ErrBidAmountTooLow),
		errors.Is(err, shared.ErrEmptyItemGroup),
		errors.Is(err, shared.ErrInvalidRole),
		errors.Is(err, shared.ErrUnknownBidder),
		errors.Is(err, shared.ErrMissingFields):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}
