package server

import (
	"encoding/json"
	"net/http"

	"medisynth/internal/document"
	"medisynth/internal/history"
	"medisynth/internal/session"
	"medisynth/internal/settings"
	"medisynth/internal/synthesis"
)

// Handler serves the whole API surface. It holds the session as its
// single mutable dependency; the stores behind it are swappable.
type Handler struct {
	session   *session.Session
	orch      *synthesis.Orchestrator
	history   history.Store
	documents document.Store
	settings  *settings.Store
}

func NewHandler(
	sess *session.Session,
	orch *synthesis.Orchestrator,
	hist history.Store,
	docs document.Store,
	prefs *settings.Store,
) *Handler {
	return &Handler{
		session:   sess,
		orch:      orch,
		history:   hist,
		documents: docs,
		settings:  prefs,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
