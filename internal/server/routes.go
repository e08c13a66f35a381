package server

import "net/http"

// NewMux registers the API routes and wraps them with CORS.
func NewMux(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/uploads", h.HandleUpload)
	mux.HandleFunc("DELETE /api/v1/uploads/{id}", h.HandleRemoveUpload)
	mux.HandleFunc("POST /api/v1/uploads/clear", h.HandleClearUploads)
	mux.HandleFunc("GET /api/v1/uploads/{id}/preview", h.HandlePreview)

	mux.HandleFunc("POST /api/v1/synthesize", h.HandleSynthesize)
	mux.HandleFunc("POST /api/v1/reset", h.HandleReset)
	mux.HandleFunc("GET /api/v1/state", h.HandleState)
	mux.HandleFunc("POST /api/v1/view", h.HandleSetView)

	mux.HandleFunc("GET /api/v1/history", h.HandleHistory)
	mux.HandleFunc("DELETE /api/v1/history/{id}", h.HandleRemoveHistory)

	mux.HandleFunc("GET /api/v1/settings", h.HandleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", h.HandlePutSettings)

	mux.HandleFunc("GET /api/v1/events", h.HandleEvents)

	return cors(mux)
}
