package webui

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"slaved/internal/logging"
	"slaved/internal/router"
)

// resolveWithin joins name onto root and rejects any result that escapes
// root, including via .. traversal.
func resolveWithin(root, name string) (string, bool) {
	path := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}

// serveFile writes the file at root/name. An empty contentType is guessed
// from the extension; log endpoints force text/plain instead. Absent files
// and escaping paths become 404; other read failures surface as I/O errors
// for the dispatcher to turn into a 500.
func (s *Server) serveFile(w http.ResponseWriter, root, name, contentType string) error {
	path, ok := resolveWithin(root, name)
	if !ok {
		return router.Abort(http.StatusNotFound, "not found")
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return router.Abort(http.StatusNotFound, "not found")
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return router.Abort(http.StatusNotFound, "not found")
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))

	if _, err := io.Copy(w, file); err != nil {
		// Headers are gone already; all we can do is note the broken copy.
		s.log().Warn("file response interrupted",
			logging.String("path", path),
			logging.Error(err))
	}
	return nil
}
