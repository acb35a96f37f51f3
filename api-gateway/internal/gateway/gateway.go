package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"overcooked-storefront/pkg/logx"

	"github.com/gorilla/mux"
)

const sessionPath = "/api/admin/auth/session"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	MenuSvcURL  string `envconfig:"MENU_SERVICE_URL" default:"http://localhost:8081"`
	AdminSvcURL string `envconfig:"ADMIN_SERVICE_URL" default:"http://localhost:8082"`
	CartSvcURL  string `envconfig:"CART_SERVICE_URL" default:"http://localhost:8083"`
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	logx.Debug().Str("method", r.Method).Str("path", r.URL.Path).Str("target", targetURL).Msg("proxy")

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		logx.Error().Err(err).Msg("failed to create proxy request")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logx.Error().Err(err).Str("target", targetURL).Msg("failed to proxy request")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		logx.Warn().Err(err).Msg("failed to copy upstream response")
	}
}

// RouteHandler dispatches /api/ paths to the owning service by prefix.
func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	switch {
	case hasPathPrefix(path, "/api/products"), hasPathPrefix(path, "/api/categories"):
		if r.Method != http.MethodGet && r.Method != http.MethodOptions {
			if status := g.authorizeAdmin(r); status != http.StatusOK {
				http.Error(w, http.StatusText(status), status)
				return
			}
		}
		g.ProxyRequest(w, r, g.config.MenuSvcURL)
	case hasPathPrefix(path, "/api/cart"), hasPathPrefix(path, "/api/checkout"), hasPathPrefix(path, "/api/hours"):
		g.ProxyRequest(w, r, g.config.CartSvcURL)
	case hasPathPrefix(path, "/api/admin"):
		g.ProxyRequest(w, r, g.config.AdminSvcURL)
	default:
		logx.Debug().Str("path", path).Msg("unmatched api route")
		http.Error(w, "API route not found", http.StatusNotFound)
	}
}

// authorizeAdmin asks admin-svc whether the caller's bearer token belongs to
// an admin session and returns the status the gateway should answer with.
func (g *Gateway) authorizeAdmin(r *http.Request) int {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return http.StatusUnauthorized
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, g.config.AdminSvcURL+sessionPath, nil)
	if err != nil {
		return http.StatusInternalServerError
	}
	req.Header.Set("Authorization", auth)

	resp, err := g.client.Do(req)
	if err != nil {
		logx.Error().Err(err).Msg("failed to verify admin session")
		return http.StatusBadGateway
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.StatusUnauthorized
	}

	var session struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		logx.Warn().Err(err).Msg("unreadable session response")
		return http.StatusBadGateway
	}
	if !session.IsAdmin {
		return http.StatusForbidden
	}
	return http.StatusOK
}

func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/uploads/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.ProxyRequest(w, r, g.config.MenuSvcURL)
	})
	return r
}
