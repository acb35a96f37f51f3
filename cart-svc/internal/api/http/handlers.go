package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"overcooked-storefront/cart-svc/internal/domain"
	"overcooked-storefront/cart-svc/internal/service"
	"overcooked-storefront/pkg/logx"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	CartHeader = "X-Cart-ID"
	CartCookie = "cart_id"
)

type Handler struct {
	Carts    service.CartServiceInterface
	Checkout service.CheckoutServiceInterface
}

func NewHandler(carts service.CartServiceInterface, checkoutSvc service.CheckoutServiceInterface) *Handler {
	return &Handler{Carts: carts, Checkout: checkoutSvc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/hours", h.getHours).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{productId}", h.updateQuantity).Methods("PUT")
	r.HandleFunc("/api/cart/items/{productId}", h.removeItem).Methods("DELETE")
	r.HandleFunc("/api/cart/items/{productId}/note", h.updateNote).Methods("PUT")

	r.HandleFunc("/api/checkout", h.submitCheckout).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "cart-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getHours(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Checkout.Hours())
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cartID := resolveCartID(w, r)
	writeJSON(w, http.StatusOK, h.Carts.View(r.Context(), cartID))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	cartID := resolveCartID(w, r)
	view, err := h.Carts.Clear(r.Context(), cartID)
	if err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Note      string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.ProductID == "" {
		http.Error(w, "Missing product_id", http.StatusBadRequest)
		return
	}

	cartID := resolveCartID(w, r)
	view, err := h.Carts.Add(r.Context(), cartID, payload.ProductID, payload.Quantity, payload.Note)
	if err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Quantity == nil {
		http.Error(w, "Missing quantity", http.StatusBadRequest)
		return
	}

	cartID := resolveCartID(w, r)
	view, err := h.Carts.SetQuantity(r.Context(), cartID, mux.Vars(r)["productId"], *payload.Quantity)
	if err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	cartID := resolveCartID(w, r)
	view, err := h.Carts.SetNote(r.Context(), cartID, mux.Vars(r)["productId"], payload.Note)
	if err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	cartID := resolveCartID(w, r)
	view, err := h.Carts.Remove(r.Context(), cartID, mux.Vars(r)["productId"])
	if err != nil {
		writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	var form domain.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	cartID := resolveCartID(w, r)
	result, err := h.Checkout.Submit(r.Context(), cartID, form)
	if err != nil {
		var validation *service.ValidationError
		switch {
		case errors.As(err, &validation):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": validation.Fields})
		case errors.Is(err, service.ErrEmptyCart):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrClosed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			logx.Error().Err(err).Str("cart_id", cartID).Msg("checkout failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// resolveCartID reads the cart id from the header or cookie, issuing a new
// cookie when the client has none.
func resolveCartID(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(CartHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(CartCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
	w.Header().Set(CartHeader, id)
	return id
}

func writeCartError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	logx.Error().Err(err).Msg("cart operation failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
