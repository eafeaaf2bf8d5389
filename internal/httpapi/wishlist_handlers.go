package httpapi

import (
	"encoding/json"
	"net/http"

	"distributor-be/internal/middleware"
	"distributor-be/internal/wishlist"
)

type WishlistHandler struct {
	wishlists wishlist.Service
}

func NewWishlistHandler(wishlists wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	items, err := h.wishlists.List(r.Context(), id.UserID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	var in struct {
		ProductID       uint `json:"product_id"`
		DesiredQuantity int  `json:"desired_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	item, err := h.wishlists.Add(r.Context(), id.UserID, in.ProductID, in.DesiredQuantity)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, item)
}

// Remove deletes by product id, matching the add payload.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, ok := idParam(w, r)
	if !ok {
		return
	}

	id, _ := middleware.IdentityFrom(r.Context())

	if err := h.wishlists.Remove(r.Context(), id.UserID, productID); err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "removed from wishlist"})
}
