package httpapi

import (
	"encoding/json"
	"net/http"

	"distributor-be/internal/middleware"
	"distributor-be/internal/order"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	var in order.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	o, err := h.orders.Place(r.Context(), id.UserID, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if orders == nil {
		orders = []*order.Order{}
	}
	WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.IdentityFrom(r.Context())

	orders, err := h.orders.ListMine(r.Context(), id.UserID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if orders == nil {
		orders = []*order.Order{}
	}
	WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(w, r)
	if !ok {
		return
	}

	id, _ := middleware.IdentityFrom(r.Context())

	o, err := h.orders.Get(r.Context(), orderID, id.UserID, id.Role)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(w, r)
	if !ok {
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), orderID, in.Status)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, o)
}
