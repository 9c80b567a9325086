package transport

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// handleUpload accepts a single multipart file field and returns its
// metadata. File contents are read only as far as multipart parsing requires
// and are never persisted.
func (t *Transport) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, t.maxUploadBytes)

	if err := r.ParseMultipartForm(t.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusBadRequest, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	t.logger.Debug("File received",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size))

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"meta": map[string]any{
			"filename": header.Filename,
			"mimetype": header.Header.Get("Content-Type"),
			"size":     header.Size,
		},
	})
}
