package handlers

import (
	"Taskvora/internal/service"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// maxUploadSize — предел размера загружаемого файла (10 МБ).
const maxUploadSize = 10 << 20

// FileHandler обрабатывает загрузку и выдачу файлов пользователя.
type FileHandler struct {
	Files  *service.FileService
	Logger *zap.SugaredLogger
}

func NewFileHandler(files *service.FileService, logger *zap.SugaredLogger) *FileHandler {
	return &FileHandler{Files: files, Logger: logger}
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	files, err := h.Files.List(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("failed to list files", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to get uploaded files")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": files})
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "No file uploaded")
		return
	}
	src, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "No file uploaded")
		return
	}
	defer src.Close()

	rec, err := h.Files.Save(r.Context(), uid, header.Filename, src)
	if err != nil {
		h.Logger.Errorw("failed to save uploaded file", "user_id", uid, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to upload file")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "File uploaded successfully",
		"file":    rec,
	})
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid id")
		return
	}

	f, err := h.Files.Get(r.Context(), uid, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, false, "File not found")
			return
		}
		h.Logger.Errorw("failed to get file", "user_id", uid, "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to download file")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename+`"`)
	http.ServeFile(w, r, f.Filepath)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid id")
		return
	}

	if err := h.Files.Delete(r.Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, false, "File not found")
			return
		}
		h.Logger.Errorw("failed to delete file", "user_id", uid, "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Failed to delete file")
		return
	}
	writeMessage(w, http.StatusOK, true, "File deleted successfully")
}
