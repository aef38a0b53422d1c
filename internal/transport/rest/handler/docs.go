package handler

import (
	"net/http"

	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// DocsHandler serves the registered OpenAPI document
type DocsHandler struct {
	log *zap.Logger
}

// NewDocsHandler creates a new docs handler
func NewDocsHandler(log *zap.Logger) *DocsHandler {
	return &DocsHandler{log: log}
}

// Swagger handles GET /swagger/doc.json
func (h *DocsHandler) Swagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.log.Error("Failed to render API doc", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "API doc unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
