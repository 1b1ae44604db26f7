package handler

import (
	"net/http"

	"github.com/mlorentedev/fonttree/internal/adapter"
	"github.com/mlorentedev/fonttree/internal/analysis"
)

type healthResponse struct {
	Status string            `json:"status"`
	Model  adapter.ModelInfo `json:"model"`
}

// Health always answers 200; an unconfigured model is reported, not failed.
func Health(svc *analysis.Service, provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := adapter.Describe(provider, svc.Model())
		status := "ok"
		if !info.Configured {
			status = "unconfigured"
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: status, Model: info})
	}
}
