package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ariefcatur/go-checkout-orders.git/internal/orders"
	"github.com/go-chi/chi/v5"
)

type fakeCheckout struct {
	res orders.PlaceOrderResult
	err error
	got orders.OrderInput
}

func (f *fakeCheckout) PlaceOrder(_ context.Context, in orders.OrderInput, _ string) (orders.PlaceOrderResult, error) {
	f.got = in
	return f.res, f.err
}

type fakeReader struct {
	history []orders.OrderWithLines
	details *orders.OrderWithLines
	err     error
}

func (f *fakeReader) OrderHistory(context.Context, int64) ([]orders.OrderWithLines, error) {
	return f.history, f.err
}

func (f *fakeReader) OrderDetails(context.Context, int64) (*orders.OrderWithLines, error) {
	return f.details, f.err
}

func (f *fakeReader) ListProducts(context.Context) ([]orders.Product, error) {
	return nil, f.err
}

func newTestRouter(h *OrdersHandler) *chi.Mux {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func doReq(t *testing.T, r http.Handler, method, path, body string, user int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", user))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"contact_number":"0812","address":"Jl. Example 1","payment_method":"cod","total_cents":3000,"items":[{"product_id":1,"quantity":2,"price_cents":1500}]}`

func TestPlaceOrderHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		co := &fakeCheckout{res: orders.PlaceOrderResult{OrderID: 9, CartCleared: true}}
		r := newTestRouter(&OrdersHandler{Checkout: co, Reader: &fakeReader{}})

		rec := doReq(t, r, http.MethodPost, "/orders", validBody, 42)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var resp PlaceOrderResp
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp.OrderID != 9 {
			t.Errorf("expected order id 9, got %d", resp.OrderID)
		}
		if resp.Message != "Order placed successfully!" {
			t.Errorf("unexpected message: %q", resp.Message)
		}
		if co.got.UserID != 42 {
			t.Errorf("expected user id from header, got %d", co.got.UserID)
		}
	})

	t.Run("degraded success when cart not cleared", func(t *testing.T) {
		co := &fakeCheckout{res: orders.PlaceOrderResult{OrderID: 9, CartCleared: false}}
		r := newTestRouter(&OrdersHandler{Checkout: co, Reader: &fakeReader{}})

		rec := doReq(t, r, http.MethodPost, "/orders", validBody, 42)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp PlaceOrderResp
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp.Message != "Order placed successfully, but failed to clear cart" {
			t.Errorf("unexpected message: %q", resp.Message)
		}
	})

	t.Run("missing user header", func(t *testing.T) {
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: &fakeReader{}})
		rec := doReq(t, r, http.MethodPost, "/orders", validBody, 0)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: &fakeReader{}})
		rec := doReq(t, r, http.MethodPost, "/orders", "{not-json", 42)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: &fakeReader{}})
		rec := doReq(t, r, http.MethodPost, "/orders", `{"items":[]}`, 42)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		co := &fakeCheckout{err: &orders.InsufficientStockError{ProductID: 1, Requested: 2}}
		r := newTestRouter(&OrdersHandler{Checkout: co, Reader: &fakeReader{}})
		rec := doReq(t, r, http.MethodPost, "/orders", validBody, 42)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "insufficient stock") {
			t.Errorf("expected stock message, got %s", rec.Body)
		}
	})

	t.Run("store unavailable", func(t *testing.T) {
		co := &fakeCheckout{err: fmt.Errorf("%w: dial refused", orders.ErrStoreUnavailable)}
		r := newTestRouter(&OrdersHandler{Checkout: co, Reader: &fakeReader{}})
		rec := doReq(t, r, http.MethodPost, "/orders", validBody, 42)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})

	t.Run("unexpected store error", func(t *testing.T) {
		co := &fakeCheckout{err: fmt.Errorf("insert order: broken pipe")}
		r := newTestRouter(&OrdersHandler{Checkout: co, Reader: &fakeReader{}})
		rec := doReq(t, r, http.MethodPost, "/orders", validBody, 42)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestOrderDetailsHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rd := &fakeReader{details: &orders.OrderWithLines{
			Order: orders.Order{ID: 5, UserID: 42, TotalCents: 3000, Status: orders.StatusPending},
			Items: []orders.LineView{{ProductID: 1, Quantity: 2, PriceCents: 1500, ProductName: "Arabica Beans 1kg"}},
		}}
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: rd})

		rec := doReq(t, r, http.MethodGet, "/orders/5", "", 42)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var got orders.OrderWithLines
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if got.ID != 5 || len(got.Items) != 1 {
			t.Errorf("unexpected body: %+v", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rd := &fakeReader{err: orders.ErrOrderNotFound}
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: rd})
		rec := doReq(t, r, http.MethodGet, "/orders/999", "", 42)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("other user's order is forbidden", func(t *testing.T) {
		rd := &fakeReader{details: &orders.OrderWithLines{Order: orders.Order{ID: 5, UserID: 7}}}
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: rd})
		rec := doReq(t, r, http.MethodGet, "/orders/5", "", 42)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: &fakeReader{}})
		rec := doReq(t, r, http.MethodGet, "/orders/abc", "", 42)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestOrderHistoryHandler(t *testing.T) {
	t.Run("returns empty array, not null", func(t *testing.T) {
		rd := &fakeReader{history: []orders.OrderWithLines{}}
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: rd})
		rec := doReq(t, r, http.MethodGet, "/orders", "", 42)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("expected empty json array, got %s", rec.Body)
		}
	})

	t.Run("missing user header", func(t *testing.T) {
		r := newTestRouter(&OrdersHandler{Checkout: &fakeCheckout{}, Reader: &fakeReader{}})
		rec := doReq(t, r, http.MethodGet, "/orders", "", 0)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
