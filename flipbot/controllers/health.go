package controllers

import (
	"encoding/json"
	"net/http"
)

// HealthController answers liveness probes and reports which optional
// components this process was started with.
type HealthController struct {
	components map[string]bool
}

func NewHealthController(components map[string]bool) *HealthController {
	if components == nil {
		components = map[string]bool{}
	}
	return &HealthController{components: components}
}

type healthResponse struct {
	Status     string          `json:"status"`
	Components map[string]bool `json:"components"`
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthResponse{Status: "ok", Components: h.components})
}
