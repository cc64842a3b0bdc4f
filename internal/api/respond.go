package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("write JSON failed", zap.Error(err))
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, status int, msg string) {
	writeJSON(logger, w, status, errorEnvelope{Status: "error", Message: msg})
}
