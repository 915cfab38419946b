package httpapi

import (
	"net/http"
)

// InitRoutes wires the REST API routes
func InitRoutes(h *Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.Health)

	mux.HandleFunc("POST /api/items", h.CreateItem)
	mux.HandleFunc("GET /api/items", h.GetItems)
	mux.HandleFunc("DELETE /api/items/{itemId}", h.DeleteItem)

	mux.HandleFunc("POST /api/auctions/end", h.EndAuction)

	mux.HandleFunc("POST /api/bids", h.PlaceBid)
	mux.HandleFunc("GET /api/bids", h.GetBids)

	mux.HandleFunc("POST /api/pickups/update-address", h.UpdatePickupAddress)

	mux.HandleFunc("GET /api/scheduling", h.GetScheduling)
	mux.HandleFunc("POST /api/scheduling", h.CreateSchedule)

	mux.HandleFunc("GET /api/users", h.GetUsers)

	return mux
}

// Health handles GET /api/health with a database round trip
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Health check failed")
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
