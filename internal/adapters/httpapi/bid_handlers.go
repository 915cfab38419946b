package httpapi

import (
	"encoding/json"
	"net/http"

	"ewaste-lifecycle-service/internal/ports/inbound"

	"github.com/google/uuid"
)

type placeBidRequest struct {
	ItemID   string  `json:"itemId"`
	BidderID string  `json:"bidderId"`
	Amount   float64 `json:"amount"`
}

// PlaceBid handles POST /api/bids
func (h *Handlers) PlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	var req placeBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	bidderID, err := uuid.Parse(req.BidderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	b, err := h.bids.PlaceBid(ctx, inbound.PlaceBidRequest{
		ItemID:   itemID,
		BidderID: bidderID,
		Amount:   req.Amount,
	})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

// GetBids handles GET /api/bids?itemId=
func (h *Handlers) GetBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	itemID, err := uuid.Parse(r.URL.Query().Get("itemId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "itemId query parameter is required.")
		return
	}

	bids, err := h.bids.GetBids(ctx, itemID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, bids)
}
