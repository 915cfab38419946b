package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type endAuctionRequest struct {
	ItemID    string `json:"itemId"`
	UserEmail string `json:"userEmail"`
}

// EndAuction handles POST /api/auctions/end. Closing only finalizes the
// bidding phase; the client follows up with a separate pickup-address
// submission.
func (h *Handlers) EndAuction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	var req endAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	if req.ItemID == "" || req.UserEmail == "" {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	it, err := h.auctions.CloseAuction(ctx, itemID, req.UserEmail)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, it)
}
