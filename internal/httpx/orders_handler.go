package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ariefcatur/go-checkout-orders.git/internal/orders"
	"github.com/go-chi/chi/v5"
)

// Checkout is the write side; Reader the projections. Both are satisfied by
// the orders package, split so tests can fake them independently.
type Checkout interface {
	PlaceOrder(ctx context.Context, in orders.OrderInput, traceID string) (orders.PlaceOrderResult, error)
}

type Reader interface {
	OrderHistory(ctx context.Context, userID int64) ([]orders.OrderWithLines, error)
	OrderDetails(ctx context.Context, orderID int64) (*orders.OrderWithLines, error)
	ListProducts(ctx context.Context) ([]orders.Product, error)
}

type OrdersHandler struct {
	Checkout Checkout
	Reader   Reader
}

type PlaceOrderReq struct {
	ContactNumber string             `json:"contact_number"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"payment_method"`
	TotalCents    int64              `json:"total_cents"`
	Items         []orders.LineInput `json:"items"`
}

type PlaceOrderResp struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders", h.orderHistory)
	r.Get("/orders/{id}", h.orderDetails)
	r.Get("/products", h.listProducts)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// userID comes from the auth layer in front of this service.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user"})
		return
	}

	var req PlaceOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no items in order"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Checkout.PlaceOrder(ctx, orders.OrderInput{
		UserID:        uid,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		TotalCents:    req.TotalCents,
		Items:         req.Items,
	}, r.Header.Get("X-Request-Id"))
	if err != nil {
		var oos *orders.InsufficientStockError
		switch {
		case errors.Is(err, orders.ErrEmptyOrder):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no items in order"})
		case errors.As(err, &oos):
			writeJSON(w, http.StatusConflict, map[string]string{"error": oos.Error()})
		case errors.Is(err, orders.ErrStoreUnavailable):
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "store unavailable"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to place order"})
		}
		return
	}

	msg := "Order placed successfully!"
	if !res.CartCleared {
		msg = "Order placed successfully, but failed to clear cart"
	}
	writeJSON(w, http.StatusOK, PlaceOrderResp{Message: msg, OrderID: res.OrderID})
}

func (h *OrdersHandler) orderHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	hist, err := h.Reader.OrderHistory(ctx, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch order history"})
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

func (h *OrdersHandler) orderDetails(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing user"})
		return
	}
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Reader.OrderDetails(ctx, orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch order details"})
		return
	}
	if o.UserID != uid {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "access denied"})
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Reader.ListProducts(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list products"})
		return
	}
	writeJSON(w, http.StatusOK, ps)
}
