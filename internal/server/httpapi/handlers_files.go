package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/server/authz"
	"github.com/dmitrijs2005/filehost/internal/server/services"
)

// multipartMemoryLimit caps the in-memory part of multipart parsing;
// larger bodies spill to temp files.
const multipartMemoryLimit = 32 << 20

func (s *Server) handleFileUpload(w http.ResponseWriter, r *http.Request, p authz.Principal) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxFileUpload)

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

	isPublic := r.FormValue("isPublic") == "true"

	// blobs are grouped per owner, like uploads/users/<id>/
	dir := filepath.Join("users", strconv.FormatInt(p.UserID, 10))
	name, path, size, err := s.blobs.Save(dir, header.Filename, src)
	if err != nil {
		s.logger.Error(r.Context(), "blob write failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	file, err := s.files.RecordUpload(r.Context(), p, services.Upload{
		Filename:     name,
		OriginalName: header.Filename,
		Path:         path,
		Size:         size,
		Public:       isPublic,
	})
	if err != nil {
		// keep blob storage consistent with the failed record write
		_ = s.blobs.Remove(path)
		s.logger.Error(r.Context(), "upload record failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "file uploaded",
		"file": map[string]any{
			"id":       file.ID,
			"filename": file.OriginalName,
			"size":     file.Size,
			"isPublic": file.IsPublic.Bool(),
		},
	})
}

func (s *Server) handleMyFiles(w http.ResponseWriter, r *http.Request, p authz.Principal) {
	files, err := s.files.ListOwn(r.Context(), p)
	if err != nil {
		s.logger.Error(r.Context(), "listing files failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "could not list files")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": files})
}

func (s *Server) handlePublicFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.files.ListPublic(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "listing public files failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "could not list files")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": files})
}

func (s *Server) handleFilePrivacy(w http.ResponseWriter, r *http.Request, p authz.Principal) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	var req privacyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.files.SetPrivacy(r.Context(), p, id, req.IsPublic); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.logger.Error(r.Context(), "privacy update failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "privacy update failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "privacy updated"})
}

func (s *Server) handleFileDownload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	file, err := s.files.Download(r.Context(), s.principal(r), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			s.writeError(w, http.StatusNotFound, "file not found")
		case errors.Is(err, common.ErrorUnauthorized):
			s.writeError(w, http.StatusForbidden, "access denied")
		default:
			s.logger.Error(r.Context(), "download failed", "error", err.Error())
			s.writeError(w, http.StatusInternalServerError, "download failed")
		}
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	http.ServeFile(w, r, file.Filepath)
}

func (s *Server) handleFileDelete(w http.ResponseWriter, r *http.Request, p authz.Principal) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	if err := s.files.Delete(r.Context(), p, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.logger.Error(r.Context(), "file delete failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "file deleted"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request, p authz.Principal) {
	stats, err := s.files.Stats(r.Context(), p)
	if err != nil {
		s.logger.Error(r.Context(), "stats failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "could not compute stats")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}
