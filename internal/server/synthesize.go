package server

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"time"

	"medisynth/internal/session"
	"medisynth/internal/synthesis"
	"medisynth/internal/types"
)

// HandleSynthesize runs one synthesis over the current collection,
// synchronously. Re-entry is blocked by the status machine, success
// records one history entry, failure leaves the prior result untouched.
func (h *Handler) HandleSynthesize(w http.ResponseWriter, r *http.Request) {
	files := h.session.Files()
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "upload at least one document before synthesizing")
		return
	}
	if err := h.session.Begin(); err != nil {
		if errors.Is(err, session.ErrBusy) {
			writeError(w, http.StatusConflict, "a synthesis is already in progress or awaiting reset")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.orch.Synthesize(r.Context(), files)
	if err != nil {
		_ = h.session.Fail(err.Error())
		writeError(w, synthesisStatusCode(err), err.Error())
		return
	}

	if err := h.session.Complete(*result); err != nil {
		log.Printf("session: completion rejected: %v", err)
		writeError(w, http.StatusConflict, "the session moved on before synthesis finished")
		return
	}
	h.recordRun()
	h.autoDeleteUploads(r, files)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Reset(); err != nil {
		writeError(w, http.StatusConflict, "cannot reset while a synthesis is in progress")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(types.StatusIdle)})
}

// recordRun appends one history entry for a successful synthesis. A
// persistence failure is logged, never surfaced to the caller.
func (h *Handler) recordRun() {
	now := time.Now()
	entry := types.HistoryEntry{
		ID:           now.UnixMilli(),
		PatientLabel: fmt.Sprintf("Patient Analysis #%d", rand.IntN(10000)),
		Date:         now.Format("Jan 2, 2006"),
		AnalysisType: "Full Synthesis",
		Status:       types.HistoryStatusComplete,
	}
	if err := h.history.Record(entry); err != nil {
		log.Printf("history: record failed: %v", err)
	}
}

func (h *Handler) autoDeleteUploads(r *http.Request, files []types.IngestedFile) {
	if !h.settings.Current().AutoDeleteUploads {
		return
	}
	for _, f := range files {
		if err := h.documents.Delete(r.Context(), f.ID); err != nil {
			log.Printf("document store: auto-delete %s: %v", f.ID, err)
		}
	}
}

func synthesisStatusCode(err error) int {
	var reqErr *synthesis.RequestError
	switch {
	case errors.Is(err, synthesis.ErrMissingAPIKey):
		return http.StatusInternalServerError
	case errors.Is(err, synthesis.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, synthesis.ErrEmptyResponse), errors.Is(err, synthesis.ErrBadResponse):
		return http.StatusBadGateway
	case errors.As(err, &reqErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
