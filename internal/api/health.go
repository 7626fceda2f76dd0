package api

import "net/http"

const healthBody = "API is running successfully."

// handleHealth answers with a constant body. It touches neither the
// database nor the upstream API, so it never fails.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(healthBody))
	s.countRequest("/", http.StatusOK)
}
