package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"
	"overcooked-storefront/admin-svc/internal/service"
	"overcooked-storefront/pkg/logx"

	"github.com/gorilla/mux"
)

type ctxKey int

const sessionKey ctxKey = iota

type Handler struct {
	Auth      service.AuthServiceInterface
	Dashboard service.DashboardServiceInterface
}

func NewHandler(authSvc service.AuthServiceInterface, dashboardSvc service.DashboardServiceInterface) *Handler {
	return &Handler{Auth: authSvc, Dashboard: dashboardSvc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/admin/auth/sign-in", h.signIn).Methods("POST")
	r.HandleFunc("/api/admin/auth/sign-out", h.signOut).Methods("POST")
	r.HandleFunc("/api/admin/auth/session", h.getSession).Methods("GET")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(h.RequireAdmin)
	admin.HandleFunc("/dashboard", h.getDashboard).Methods("GET")
	admin.HandleFunc("/orders", h.getOrders).Methods("GET")
}

// RequireAdmin lets the request through only with a bearer session whose
// user has the admin role.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := h.Auth.Session(r.Context(), BearerToken(r))
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				logx.Error().Err(err).Msg("session lookup failed")
			}
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !session.IsAdmin {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))
	})
}

func BearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "admin-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	session, err := h.Auth.SignIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
			return
		}
		logx.Error().Err(err).Msg("sign-in failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.Auth.SignOut(r.Context(), token); err != nil {
		logx.Error().Err(err).Msg("sign-out failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.Auth.Session(r.Context(), BearerToken(r))
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			logx.Error().Err(err).Msg("session lookup failed")
		}
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days > 90 {
		days = 90
	}
	dashboard, err := h.Dashboard.Dashboard(r.Context(), days)
	if err != nil {
		logx.Error().Err(err).Msg("dashboard failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	orders, err := h.Dashboard.RecentOrders(r.Context(), limit)
	if err != nil {
		logx.Error().Err(err).Msg("list orders failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
