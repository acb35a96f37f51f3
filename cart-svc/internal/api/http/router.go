package httpapi

import (
	"net/http"

	"overcooked-storefront/pkg/logx"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{CartHeader},
		AllowCredentials: true,
	}).Handler(r)
}

func StartServer(addr string, handler http.Handler) error {
	logx.Info().Str("addr", addr).Msg("Cart Service starting")
	return http.ListenAndServe(addr, handler)
}
