package handler

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) DownloadUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.Uploads == nil {
		writeError(w, http.StatusNotFound, "upload_not_found", "upload not found")
		return
	}

	rc, err := h.Uploads.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "upload_not_found", "upload not found")
			return
		}
		h.log.InternalError("uploads: open failed", err, "name", name)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	defer rc.Close()

	if seeker, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, time.Time{}, seeker)
		return
	}

	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Warn("uploads: copy interrupted", "name", name, "err", err)
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
