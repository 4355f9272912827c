package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

type UploadHandler struct {
	svc service.UploadService
}

func NewUploadHandler(s service.UploadService) *UploadHandler {
	return &UploadHandler{svc: s}
}

// UploadItem godoc
//
//	@Summary		Upload images as a new item
//	@Description	Store multipart images under a freshly named item; non-image files are skipped
//	@Tags			admin,upload
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			dataset_id	path		string	true	"Dataset id"
//	@Param			files		formData	file	true	"Image files"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=service.ItemUploadResult}
//	@Failure		400	{object}	serializer.Response
//	@Router			/admin/{dataset_id}/item/ [post]
func (h *UploadHandler) UploadItem(c *gin.Context) {
	datasetID, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("at least one file is required")))
		return
	}

	result, err := h.svc.UploadItem(c.Request.Context(), datasetID, files)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: result})
}

// BulkUpload godoc
//
//	@Summary		Bulk upload a folder tree
//	@Description	Store multipart files grouped into items by the first segment of each file's paths field; re-runs converge on the same items
//	@Tags			admin,upload
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			dataset_id	path		string	true	"Dataset id"
//	@Param			files		formData	file	true	"Image files"
//	@Param			paths		formData	string	true	"Relative path per file, same order"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=[]service.ItemUploadResult}
//	@Failure		400	{object}	serializer.Response
//	@Router			/admin/{dataset_id}/bulk_upload/ [post]
func (h *UploadHandler) BulkUpload(c *gin.Context) {
	datasetID, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	files := form.File["files"]
	paths := form.Value["paths"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("at least one file is required")))
		return
	}
	if len(paths) != len(files) {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("paths must match files one-to-one")))
		return
	}

	bulk := make([]service.BulkFile, len(files))
	for i, f := range files {
		bulk[i] = service.BulkFile{File: f, Path: paths[i]}
	}

	results, err := h.svc.BulkUpload(c.Request.Context(), datasetID, bulk)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: results})
}
