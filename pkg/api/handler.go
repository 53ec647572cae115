package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/LeandroLuccerini/similarity/pkg/kit"
	"github.com/LeandroLuccerini/similarity/pkg/translit"
)

const maxBodyBytes = 64 * 1024

// NewRouter returns an http.Handler with all similarity API routes.
func NewRouter(svc *Service, eps Endpoints) http.Handler {
	mux := http.NewServeMux()
	h := &handler{eps: eps, mode: svc.Transliterator}

	mux.HandleFunc("POST /v1/similarity", h.handleSimilarity)
	mux.HandleFunc("POST /v1/similarity/batch", h.handleBatch)
	mux.HandleFunc("GET /v1/normalize/{kind}", h.handleNormalize)
	mux.HandleFunc("GET /v1/types", h.handleListTypes)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestID(mux))
}

type handler struct {
	eps  Endpoints
	mode translit.Mode
}

func (h *handler) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req similarityReq
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.eps.Similarity(r.Context(), &req)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.eps.Batch(r.Context(), &req)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	resp, err := h.eps.Normalize(r.Context(), &normalizeReq{
		Kind:  r.PathValue("kind"),
		Value: r.URL.Query().Get("value"),
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	resp, err := h.eps.ListTypes(r.Context(), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status         string        `json:"status"`
	Transliterator translit.Mode `json:"transliterator"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Transliterator: h.mode})
}

// --- helpers ---

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeEndpointError(w http.ResponseWriter, err error) {
	if isClientError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestID tags each request context with the caller's X-Request-ID or a
// fresh UUID, and echoes it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(kit.WithRequestID(r.Context(), id)))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
