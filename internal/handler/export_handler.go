package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/internal/service"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
	"github.com/JayR61/congregation-connect/pkg/export"
	"github.com/JayR61/congregation-connect/pkg/response"
)

const downloadQuery = "download"

type exportService interface {
	ProgrammeICS(ctx context.Context, programmeID string) (string, error)
	ProgrammePDF(ctx context.Context, programmeID string) (string, error)
	AttendanceCSV(ctx context.Context, programmeID string, opts export.CSVOptions) ([]byte, error)
}

type programmeGetter interface {
	Get(ctx context.Context, id string) (*models.Programme, error)
}

// ExportPayload is returned when the client asks for the data URL form.
type ExportPayload struct {
	FileName string `json:"file_name"`
	DataURL  string `json:"data_url"`
}

// ExportHandler serves calendar, PDF and CSV exports of a programme.
type ExportHandler struct {
	service    exportService
	programmes programmeGetter
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService, programmes programmeGetter) *ExportHandler {
	return &ExportHandler{service: service, programmes: programmes}
}

// ICS godoc
// @Summary Export a programme as an iCalendar event
// @Tags Exports
// @Produce json
// @Produce text/calendar
// @Param id path string true "Programme ID"
// @Param download query bool false "Stream the file instead of returning a data URL"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/export/ics [get]
func (h *ExportHandler) ICS(c *gin.Context) {
	h.serveDataURL(c, "ics", h.service.ProgrammeICS)
}

// PDF godoc
// @Summary Export a programme report as PDF
// @Tags Exports
// @Produce json
// @Produce application/pdf
// @Param id path string true "Programme ID"
// @Param download query bool false "Stream the file instead of returning a data URL"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.serveDataURL(c, "pdf", h.service.ProgrammePDF)
}

// CSV godoc
// @Summary Export programme attendance as CSV
// @Tags Exports
// @Produce text/csv
// @Param id path string true "Programme ID"
// @Param spreadsheet query bool false "Add a UTF-8 BOM and CRLF line endings"
// @Success 200 {file} file
// @Router /programmes/{id}/export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	programme, err := h.programmes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	opts := export.CSVOptions{Spreadsheet: c.Query("spreadsheet") == "true"}
	payload, err := h.service.AttendanceCSV(c.Request.Context(), programme.ID, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, service.FileName(*programme, "csv"), export.MIMECSV, payload)
}

func (h *ExportHandler) serveDataURL(c *gin.Context, extension string, render func(context.Context, string) (string, error)) {
	programme, err := h.programmes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	dataURL, err := render(c.Request.Context(), programme.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	fileName := service.FileName(*programme, extension)

	if c.Query(downloadQuery) != "true" {
		response.JSON(c, http.StatusOK, ExportPayload{FileName: fileName, DataURL: dataURL})
		return
	}
	mime, payload, ok := export.DecodeDataURL(dataURL)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export produced an unreadable payload"))
		return
	}
	response.Attachment(c, fileName, mime, payload)
}
