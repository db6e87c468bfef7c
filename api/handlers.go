package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"itemserver/catalog"
	"itemserver/openapi"

	"github.com/go-openapi/spec"
	"github.com/gorilla/mux"
)

// AuthHeader carries the caller's token on exchange-call.
const AuthHeader = "X-Authorization"

// ApiHandler holds a reference to the catalog service.
type ApiHandler struct {
	service      *catalog.Service
	swagger      *spec.Swagger
	maxBodyBytes int64
}

// NewApiHandler creates a new handler for the API. maxBodyBytes <= 0 means
// the request body is not capped.
func NewApiHandler(svc *catalog.Service, prefix string, maxBodyBytes int64) *ApiHandler {
	return &ApiHandler{
		service:      svc,
		swagger:      openapi.Document(prefix),
		maxBodyBytes: maxBodyBytes,
	}
}

// GetCallObject returns the item matching the query parameter, or null.
func (h *ApiHandler) GetCallObject(w http.ResponseWriter, r *http.Request) {
	values, ok := r.URL.Query()["query"]
	if !ok || len(values) == 0 {
		http.Error(w, "Required request parameter 'query' is not present", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.service.GetCallObject(values[0]))
}

// GetCallList returns every item in catalog order.
func (h *ApiHandler) GetCallList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetCallList())
}

// PostCall logs the body and returns the item named by the path segment.
func (h *ApiHandler) PostCall(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]

	req, ok := h.decodeUserRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.PostCall(query, req))
}

// ExchangeCall logs the token and body and returns every item. The token is
// required to be present but is never checked. Repeated header values are
// joined with commas.
func (h *ApiHandler) ExchangeCall(w http.ResponseWriter, r *http.Request) {
	tokens, ok := r.Header[http.CanonicalHeaderKey(AuthHeader)]
	if !ok || len(tokens) == 0 {
		http.Error(w, "Required request header '"+AuthHeader+"' is not present", http.StatusBadRequest)
		return
	}

	req, ok := h.decodeUserRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.ExchangeCall(strings.Join(tokens, ","), req))
}

// Swagger serves the API description.
func (h *ApiHandler) Swagger(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.swagger)
}

// decodeUserRequest reads the JSON body. A missing or malformed body is
// answered with 400 and ok=false.
func (h *ApiHandler) decodeUserRequest(w http.ResponseWriter, r *http.Request) (catalog.UserRequest, bool) {
	var req catalog.UserRequest

	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, io.EOF):
			http.Error(w, "Required request body is missing", http.StatusBadRequest)
		default:
			http.Error(w, "Invalid request body", http.StatusBadRequest)
		}
		log.Printf("[API] body rejected path=%s err=%v", r.URL.Path, err)
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}
