package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/server/authz"
	"github.com/dmitrijs2005/filehost/internal/server/services"
)

func (s *Server) handleAppUpload(w http.ResponseWriter, r *http.Request, p authz.Principal) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxAppUpload)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "no file received")
		return
	}
	defer src.Close()

	name := r.FormValue("name")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	storedName, path, size, err := s.blobs.Save("apps", header.Filename, src)
	if err != nil {
		s.logger.Error(r.Context(), "blob write failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	app, err := s.apps.Publish(r.Context(), p, services.PublishInput{
		Name:        name,
		Description: r.FormValue("description"),
		Version:     r.FormValue("version"),
		Filename:    storedName,
		Path:        path,
		Size:        size,
	})
	if err != nil {
		_ = s.blobs.Remove(path)
		if errors.Is(err, common.ErrorValidation) {
			s.writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		s.logger.Error(r.Context(), "app publish failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "app published",
		"app": map[string]any{
			"id":      app.ID,
			"name":    app.Name,
			"version": app.Version,
		},
	})
}

func (s *Server) handleApps(w http.ResponseWriter, r *http.Request) {
	apps, err := s.apps.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "listing apps failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "could not list apps")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "apps": apps})
}

func (s *Server) handleAppDownload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid app id")
		return
	}

	app, err := s.apps.Download(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "app not found")
			return
		}
		s.logger.Error(r.Context(), "app download failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "download failed")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", app.Filename))
	http.ServeFile(w, r, app.Filepath)
}

func (s *Server) handleAppDelete(w http.ResponseWriter, r *http.Request, p authz.Principal) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid app id")
		return
	}

	if err := s.apps.Delete(r.Context(), p, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "app not found")
			return
		}
		s.logger.Error(r.Context(), "app delete failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "app deleted"})
}
