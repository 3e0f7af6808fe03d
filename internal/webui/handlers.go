package webui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"slaved/internal/api"
	"slaved/internal/identity"
	"slaved/internal/logging"
	"slaved/internal/registry"
	"slaved/internal/router"
	"slaved/internal/slavelog"
)

// forbiddenMessage is the body of the 403 returned for framework-log requests
// that arrive before master registration completes.
const forbiddenMessage = "Slave not yet registered with master"

type indexData struct {
	StartTime  time.Time
	SlaveID    int64
	Registered bool
	Frameworks []*registry.Framework
}

type frameworkData struct {
	FrameworkID int64
	Framework   *registry.Framework
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ router.Params) error {
	s.clearTemplatesInDevMode()

	frameworks, err := s.frameworks.List(r.Context())
	if err != nil {
		return fmt.Errorf("list frameworks: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.Render(w, "index", indexData{
		StartTime:  s.startTime,
		SlaveID:    s.identity.Current(),
		Registered: s.identity.Registered(),
		Frameworks: frameworks,
	})
}

func (s *Server) handleFramework(w http.ResponseWriter, r *http.Request, params router.Params) error {
	s.clearTemplatesInDevMode()

	id, err := params.Int("id")
	if err != nil {
		return router.Abort(http.StatusBadRequest, "invalid framework id")
	}
	fw, err := s.frameworks.GetByID(r.Context(), id)
	if err != nil {
		return fmt.Errorf("get framework %d: %w", id, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.Render(w, "framework", frameworkData{FrameworkID: id, Framework: fw})
}

func (s *Server) handleStatic(w http.ResponseWriter, _ *http.Request, params router.Params) error {
	return s.serveFile(w, s.cfg.Paths.StaticDir, params.Get("filename"), "")
}

func (s *Server) handleLogFull(w http.ResponseWriter, _ *http.Request, params router.Params) error {
	name := slavelog.SlaveFileName(params.Get("level"))
	return s.serveFile(w, s.cfg.Paths.LogDir, name, "text/plain; charset=utf-8")
}

func (s *Server) handleLogTail(w http.ResponseWriter, _ *http.Request, params router.Params) error {
	lines, err := params.Int("lines")
	if err != nil {
		return router.Abort(http.StatusBadRequest, "invalid line count")
	}
	path := slavelog.SlavePath(s.cfg.Paths.LogDir, params.Get("level"))
	return s.writeTail(w, path, int(lines))
}

func (s *Server) handleFrameworkLogFull(w http.ResponseWriter, _ *http.Request, params router.Params) error {
	path, err := s.frameworkLogPath(params)
	if err != nil {
		return err
	}
	return s.serveFile(w, s.cfg.Paths.WorkDir, path, "text/plain; charset=utf-8")
}

func (s *Server) handleFrameworkLogTail(w http.ResponseWriter, _ *http.Request, params router.Params) error {
	lines, err := params.Int("lines")
	if err != nil {
		return router.Abort(http.StatusBadRequest, "invalid line count")
	}
	rel, err := s.frameworkLogPath(params)
	if err != nil {
		return err
	}
	path, ok := resolveWithin(s.cfg.Paths.WorkDir, rel)
	if !ok {
		return router.Abort(http.StatusNotFound, "not found")
	}
	return s.writeTail(w, path, int(lines))
}

// frameworkLogPath resolves the registration gate before any path work: an
// unregistered slave aborts with 403 and never computes a filesystem path.
// The returned path is relative to the work directory.
func (s *Server) frameworkLogPath(params router.Params) (string, error) {
	sid := s.identity.Current()
	if sid == identity.Unregistered {
		return "", router.Abort(http.StatusForbidden, forbiddenMessage)
	}
	fid, err := params.Int("fid")
	if err != nil {
		return "", router.Abort(http.StatusBadRequest, "invalid framework id")
	}
	path, err := slavelog.FrameworkRelPath(sid, fid, params.Get("type"))
	if err != nil {
		// Identity was checked above; a racing somehow-lost registration
		// still maps to the same 403.
		return "", router.Abort(http.StatusForbidden, forbiddenMessage)
	}
	return path, nil
}

func (s *Server) writeTail(w http.ResponseWriter, path string, lines int) error {
	text, err := slavelog.Tail(path, lines)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return router.Abort(http.StatusNotFound, "log file not found")
		}
		return err
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = w.Write([]byte(text))
	return err
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request, _ router.Params) error {
	var status api.SlaveStatus
	if s.status != nil {
		status = s.status.Status(r.Context())
	} else {
		status = api.SlaveStatus{
			SlaveID:    s.identity.Current(),
			Registered: s.identity.Registered(),
			StartedAt:  s.startTime.UTC().Format(time.RFC3339),
			WorkDir:    s.cfg.Paths.WorkDir,
			LogDir:     s.cfg.Paths.LogDir,
		}
	}
	return s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleAPIFrameworks(w http.ResponseWriter, r *http.Request, _ router.Params) error {
	frameworks, err := s.frameworks.List(r.Context())
	if err != nil {
		return fmt.Errorf("list frameworks: %w", err)
	}
	return s.writeJSON(w, http.StatusOK, api.FrameworkListResponse{Frameworks: api.FromFrameworks(frameworks)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
	return nil
}

func (s *Server) clearTemplatesInDevMode() {
	if s.cfg.Web.DevMode {
		s.templates.Clear()
	}
}
