package api

import (
	"net/http"

	"itemserver/catalog"
	"itemserver/config"
	"itemserver/openapi"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RegisterHandlers mounts the item routes under prefix on router. Each route
// carries its full path; a PathPrefix subrouter answers a method mismatch
// with 404 instead of 405.
func RegisterHandlers(router *mux.Router, svc *catalog.Service, prefix string, maxBodyBytes int64) {
	h := NewApiHandler(svc, prefix, maxBodyBytes)

	router.HandleFunc(prefix+openapi.PathGetCallObj, h.GetCallObject).Methods(http.MethodGet)
	router.HandleFunc(prefix+openapi.PathGetCallList, h.GetCallList).Methods(http.MethodGet)
	router.HandleFunc(prefix+openapi.PathPostCall, h.PostCall).Methods(http.MethodPost)
	router.HandleFunc(prefix+openapi.PathExchangeCall, h.ExchangeCall).Methods(http.MethodPost)
	router.HandleFunc(prefix+openapi.PathSwagger, h.Swagger).Methods(http.MethodGet)
}

// NewHandler builds the complete HTTP handler: routes, request logging and
// CORS, configured from cfg. RequestLogger wraps the whole chain so that
// 404s, 405s and CORS preflights are logged and tagged too.
func NewHandler(svc *catalog.Service, cfg *config.Config) http.Handler {
	router := mux.NewRouter()
	RegisterHandlers(router, svc, cfg.Server.PathPrefix, cfg.Server.MaxBodyBytes)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.CORS.AllowCredentials,
	})
	return RequestLogger(c.Handler(router))
}
