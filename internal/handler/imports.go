package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stakebook/internal/service"
)

type ImportHandler struct {
	Importer *service.CSVImporter
}

func (h *ImportHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/import/csv", h.importCSV)
}

// importCSV ingests a native-format CSV body into one bankroll. Rows are
// settled and inserted one by one; on a malformed row the rows before it
// stay imported and the row count is reported back.
func (h *ImportHandler) importCSV(c *gin.Context) {
	if h.Importer == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	bankrollID := uint64QueryPtr(c, "bankroll_id")
	if bankrollID == nil {
		Error(c, http.StatusBadRequest, "bankroll_id required", nil)
		return
	}
	imported, err := h.Importer.ImportSessions(c.Request.Context(), *bankrollID, c.Request.Body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrTooManyRows) {
			status = http.StatusRequestEntityTooLarge
		}
		Error(c, status, err.Error(), map[string]any{"imported": imported})
		return
	}
	Ok(c, gin.H{"imported": imported}, nil)
}
