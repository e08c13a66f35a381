package server

import (
	"log"
	"net/http"

	"medisynth/internal/ingest"
	"medisynth/internal/types"
)

const maxUploadBytes = 64 << 20

type uploadFileResult struct {
	Name  string `json:"name"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type uploadResponse struct {
	Accepted []types.IngestedFile `json:"accepted"`
	Failed   []uploadFileResult   `json:"failed,omitempty"`
}

// HandleUpload ingests every file of a multipart batch. Files that fail
// to read are reported individually; the rest still join the collection
// in one append.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	headers := r.MultipartForm.File["files"]
	sources := make([]ingest.Source, 0, len(headers))
	var openFailures []uploadFileResult
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			openFailures = append(openFailures, uploadFileResult{Name: fh.Filename, Error: err.Error()})
			continue
		}
		defer f.Close()
		sources = append(sources, ingest.Source{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Reader:   f,
		})
	}

	results := ingest.Batch(r.Context(), sources)

	resp := uploadResponse{Failed: openFailures}
	var accepted []types.IngestedFile
	for _, res := range results {
		if !res.OK() {
			resp.Failed = append(resp.Failed, uploadFileResult{Name: res.Name, Error: res.Err.Error()})
			continue
		}
		accepted = append(accepted, res.File)
	}

	if len(accepted) > 0 {
		h.session.Append(accepted...)
		for _, f := range accepted {
			raw, err := ingest.DecodePayload(f.Content)
			if err != nil {
				continue
			}
			if err := h.documents.Put(r.Context(), f.ID, f.MIMEType, raw); err != nil {
				log.Printf("document store: put %s: %v", f.ID, err)
			}
		}
	}
	resp.Accepted = accepted
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleRemoveUpload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	removed := h.session.Remove(id)
	if removed {
		if err := h.documents.Delete(r.Context(), id); err != nil {
			log.Printf("document store: delete %s: %v", id, err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *Handler) HandleClearUploads(w http.ResponseWriter, r *http.Request) {
	for _, f := range h.session.Files() {
		if err := h.documents.Delete(r.Context(), f.ID); err != nil {
			log.Printf("document store: delete %s: %v", f.ID, err)
		}
	}
	h.session.ClearFiles()
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// HandlePreview serves the stored bytes of one upload, redirecting to a
// presigned URL when the backend provides one.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.session.File(id); !ok {
		writeError(w, http.StatusNotFound, "unknown file")
		return
	}
	if u, err := h.documents.URL(r.Context(), id); err == nil && u != "" {
		http.Redirect(w, r, u, http.StatusTemporaryRedirect)
		return
	}
	data, contentType, err := h.documents.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "document unavailable")
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
