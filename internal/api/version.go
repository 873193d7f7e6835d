package api

import (
	"net/http"

	"github.com/shaharia-lab/bankalerts/internal/build"
)

// handleVersion reports the build metadata of the running service.
func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, build.Current())
}
