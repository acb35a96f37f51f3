package httpapi

import (
	"net/http"

	"overcooked-storefront/pkg/logx"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter serves the catalog API and the uploaded images under /uploads/.
func NewRouter(handler *Handler, uploadDir string) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	return cors.Default().Handler(r)
}

func StartServer(addr string, handler http.Handler) error {
	logx.Info().Str("addr", addr).Msg("Menu Service starting")
	return http.ListenAndServe(addr, handler)
}
