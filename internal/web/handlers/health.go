package handlers

import "net/http"

// HealthHandler answers liveness probes
type HealthHandler struct{}

// Healthy always reports ok while the process is serving
func (h *HealthHandler) Healthy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
