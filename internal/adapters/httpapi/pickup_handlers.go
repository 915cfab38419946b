package httpapi

import (
	"encoding/json"
	"net/http"

	"ewaste-lifecycle-service/internal/ports/inbound"

	"github.com/google/uuid"
)

type updateAddressRequest struct {
	ItemID   string   `json:"itemId"`
	Address  string   `json:"address"`
	Landmark *string  `json:"landmark"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	VendorID string   `json:"vendorId,omitempty"`
}

type updateAddressResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	PickupID *uuid.UUID `json:"pickupId"`
}

// UpdatePickupAddress handles POST /api/pickups/update-address. The landmark
// field must be present but may be blank; lat and lng must be non-null.
func (h *Handlers) UpdatePickupAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	var req updateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	if req.ItemID == "" || req.Address == "" || req.Landmark == nil || req.Lat == nil || req.Lng == nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	serviceReq := inbound.SubmitPickupAddressRequest{
		ItemID:    itemID,
		Address:   req.Address,
		Landmark:  *req.Landmark,
		Latitude:  *req.Lat,
		Longitude: *req.Lng,
	}

	if req.VendorID != "" {
		vendorID, err := uuid.Parse(req.VendorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
			return
		}
		serviceReq.VendorID = &vendorID
	}

	result, err := h.pickups.SubmitPickupAddress(ctx, serviceReq)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, updateAddressResponse{
		Success:  true,
		Message:  "Pickup address updated successfully.",
		PickupID: result.PickupID,
	})
}
