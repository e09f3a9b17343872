package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/superdevstar50/empowerfresh-challenge/internal/etl"
	"go.uber.org/zap"
)

// UploadedFile describes one stored upload and its detected type.
type UploadedFile struct {
	Filename     string       `json:"filename"`
	Path         string       `json:"path"`
	DetectedType etl.FileType `json:"detectedType"`
	Size         int          `json:"size"`
}

// uploadFiles stores multipart uploads under the upload directory and runs
// header detection so the UI can propose a type per file.
func (r *Router) uploadFiles(w http.ResponseWriter, req *http.Request) {
	maxBytes := r.cfg.Upload.MaxSizeMB << 20
	req.Body = http.MaxBytesReader(w, req.Body, maxBytes)
	if err := req.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	files := req.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "No files provided")
		return
	}

	if err := os.MkdirAll(r.cfg.Upload.Dir, 0o755); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	results := make([]UploadedFile, 0, len(files))
	for _, header := range files {
		src, err := header.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read %s", header.Filename))
			return
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read %s", header.Filename))
			return
		}

		filename := filepath.Base(header.Filename)
		path := filepath.Join(r.cfg.Upload.Dir, fmt.Sprintf("%s-%s", uuid.NewString(), filename))
		if err := os.WriteFile(path, content, 0o644); err != nil {
			r.log.Error("upload write failed", zap.String("file", filename), zap.Error(err))
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store %s", filename))
			return
		}

		detected := etl.FileTypeUnknown
		if pre, err := etl.Preprocess(string(content)); err == nil {
			detected = etl.DetectFileType(pre.Headers).FileType
		}

		results = append(results, UploadedFile{
			Filename:     filename,
			Path:         path,
			DetectedType: detected,
			Size:         len(content),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"files": results})
}
