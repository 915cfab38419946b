package httpapi

import (
	"encoding/json"
	"net/http"

	"ewaste-lifecycle-service/internal/ports/inbound"

	"github.com/google/uuid"
)

// GetScheduling handles GET /api/scheduling?userEmail= and returns the
// scheduling dashboard payload for one user
func (h *Handlers) GetScheduling(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	userEmail := r.URL.Query().Get("userEmail")
	if userEmail == "" {
		writeError(w, http.StatusBadRequest, "userEmail query parameter is required.")
		return
	}

	overview, err := h.pickups.SchedulingOverview(ctx, userEmail)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

type schedulePickupRequest struct {
	ItemIDs   []string `json:"itemIds"`
	VendorID  string   `json:"vendorId"`
	Notes     string   `json:"notes,omitempty"`
	CreatedBy string   `json:"createdBy"`
}

// CreateSchedule handles POST /api/scheduling. When any of the requested
// items already belongs to a pickup, that pickup is returned with 200
// instead of creating a duplicate (201).
func (h *Handlers) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	var req schedulePickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	if len(req.ItemIDs) == 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields: itemIds.")
		return
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
			return
		}
		itemIDs = append(itemIDs, id)
	}

	result, err := h.pickups.SchedulePickup(ctx, inbound.SchedulePickupRequest{
		ItemIDs:   itemIDs,
		VendorID:  vendorID,
		Notes:     req.Notes,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, result.Pickup)
}
