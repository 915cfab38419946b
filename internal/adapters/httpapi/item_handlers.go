package httpapi

import (
	"encoding/json"
	"net/http"

	"ewaste-lifecycle-service/internal/domain/item"
	"ewaste-lifecycle-service/internal/ports/inbound"

	"github.com/google/uuid"
)

// CreateItem handles POST /api/items
func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	var req inbound.ReportItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid fields.")
		return
	}

	it, err := h.items.ReportItem(ctx, req)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, it)
}

// GetItems handles GET /api/items?id=|createdBy=&status=
func (h *Handlers) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	query := r.URL.Query()

	if rawID := query.Get("id"); rawID != "" {
		itemID, err := uuid.Parse(rawID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid item ID format.")
			return
		}

		it, err := h.items.GetItem(ctx, itemID)
		if err != nil {
			writeDomainError(w, h.logger, err)
			return
		}

		writeJSON(w, http.StatusOK, it)
		return
	}

	createdBy := query.Get("createdBy")
	if createdBy == "" {
		writeError(w, http.StatusBadRequest, "A 'createdBy' query parameter or an 'id' query parameter is required.")
		return
	}

	var statuses []item.Status
	for _, s := range query["status"] {
		statuses = append(statuses, item.Status(s))
	}

	items, err := h.items.ListItems(ctx, createdBy, statuses)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// DeleteItem handles DELETE /api/items/{itemId}?userEmail=
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r.Context())
	defer cancel()

	itemID, err := uuid.Parse(r.PathValue("itemId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID format.")
		return
	}

	userEmail := r.URL.Query().Get("userEmail")
	if userEmail == "" {
		writeError(w, http.StatusBadRequest, "userEmail query parameter is required.")
		return
	}

	if err := h.items.DeleteItem(ctx, itemID, userEmail); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
