package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/palime/palime-api/internal/api/shared"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/service"
)

// ExportHandler handles backup export and import HTTP requests.
type ExportHandler struct {
	export service.ExportService
	logger *slog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(export service.ExportService, log *slog.Logger) *ExportHandler {
	if export == nil {
		panic("exportHandler: service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ExportHandler{
		export: export,
		logger: log.With(slog.String("component", "export_handler")),
	}
}

// Export handles GET /export requests. The payload is offered as a download
// so a browser client saves it as a file.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.export.Export(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export data")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="palime-export.json"`)
	shared.RespondWithJSON(w, r, http.StatusOK, data)
}

// Import handles POST /import requests. The entire database is replaced by
// the uploaded payload.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var data service.ExportData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid import payload")
		return
	}

	if err := h.export.Import(r.Context(), &data); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("import completed",
		slog.Int("items", len(data.Items)),
		slog.Int("decks", len(data.Decks)))
	w.WriteHeader(http.StatusNoContent)
}
