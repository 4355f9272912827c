package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

type ExportHandler struct {
	svc service.ExportService
	log *zap.Logger
}

func NewExportHandler(s service.ExportService, log *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: s, log: log}
}

// DownloadCSV godoc
//
//	@Summary		Download dataset CSV
//	@Description	Stream the image/item join as CSV in insertion order
//	@Tags			admin,export
//	@Produce		text/csv
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200
//	@Failure		404	{object}	serializer.Response
//	@Router			/download/csv/{dataset_id}/ [get]
func (h *ExportHandler) DownloadCSV(c *gin.Context) {
	h.streamImagesCSV(c, false)
}

// DownloadCSVByCase godoc
//
//	@Summary		Download dataset CSV ordered by case
//	@Description	Stream the image/item join as CSV grouped by case name
//	@Tags			admin,export
//	@Produce		text/csv
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200
//	@Failure		404	{object}	serializer.Response
//	@Router			/download/csv/{dataset_id}/cases [get]
func (h *ExportHandler) DownloadCSVByCase(c *gin.Context) {
	h.streamImagesCSV(c, true)
}

func (h *ExportHandler) streamImagesCSV(c *gin.Context, orderByCase bool) {
	datasetID, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	setAttachment(c, "text/csv", fmt.Sprintf("dataset-%s.csv", datasetID))
	if err := h.svc.WriteImagesCSV(c.Request.Context(), c.Writer, datasetID, orderByCase); err != nil {
		h.exportError(c, err)
	}
}

// DownloadAnnotationsCSV godoc
//
//	@Summary		Download annotations CSV
//	@Description	Stream one row per annotation with answers denormalized into per-question columns
//	@Tags			admin,export
//	@Produce		text/csv
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200
//	@Failure		404	{object}	serializer.Response
//	@Router			/download/csv/annotations/{dataset_id} [get]
func (h *ExportHandler) DownloadAnnotationsCSV(c *gin.Context) {
	datasetID, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	setAttachment(c, "text/csv", fmt.Sprintf("annotations-%s.csv", datasetID))
	if err := h.svc.WriteAnnotationsCSV(c.Request.Context(), c.Writer, datasetID); err != nil {
		h.exportError(c, err)
	}
}

// DownloadZip godoc
//
//	@Summary		Download dataset archive
//	@Description	Stream a zip of the dataset's stored images
//	@Tags			admin,export
//	@Produce		application/zip
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200
//	@Failure		404	{object}	serializer.Response
//	@Router			/download/zip/{dataset_id}/ [get]
func (h *ExportHandler) DownloadZip(c *gin.Context) {
	datasetID, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	setAttachment(c, "application/zip", fmt.Sprintf("dataset-%s.zip", datasetID))
	if err := h.svc.WriteZip(c.Request.Context(), c.Writer, datasetID); err != nil {
		h.exportError(c, err)
	}
}

// exportError maps service errors for export endpoints. Once streaming has
// begun the status line is already on the wire, so a mid-stream failure can
// only be logged and the connection cut short.
func (h *ExportHandler) exportError(c *gin.Context, err error) {
	if c.Writer.Written() {
		h.log.Error("export aborted mid-stream", zap.Error(err))
		c.Abort()
		return
	}
	// Nothing streamed yet: drop the attachment headers so the JSON error
	// body goes out as JSON, not as a downloadable csv/zip.
	c.Writer.Header().Del("Content-Type")
	c.Writer.Header().Del("Content-Disposition")
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
		return
	}
	c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
}

func setAttachment(c *gin.Context, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
