package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marconi-lab/annotator/internal/middleware"
	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

type DatasetHandler struct {
	svc service.DatasetService
}

func NewDatasetHandler(s service.DatasetService) *DatasetHandler {
	return &DatasetHandler{svc: s}
}

type CreateDatasetReq struct {
	Name      string   `json:"name" binding:"required"`
	ProjectID *string  `json:"project_id"`
	Classes   []string `json:"classes"`
	Classes2  []string `json:"classes2"`
}

// CreateDataset godoc
//
//	@Summary		Create dataset
//	@Description	Create a dataset; attaching it to a project assigns every project member
//	@Tags			admin,dataset
//	@Accept			json
//	@Produce		json
//	@Param			body	body	CreateDatasetReq	true	"Dataset payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Dataset}
//	@Failure		400	{object}	serializer.Response
//	@Router			/admin/datasets/ [post]
func (h *DatasetHandler) CreateDataset(c *gin.Context) {
	var req CreateDatasetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.CreateDatasetInput{
		Name:     req.Name,
		Classes:  req.Classes,
		Classes2: req.Classes2,
	}
	if req.ProjectID != nil && *req.ProjectID != "" {
		pid, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid project id", err))
			return
		}
		in.ProjectID = &pid
	}

	ds, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: ds})
}

// GetDataset godoc
//
//	@Summary		Get dataset
//	@Description	Get one dataset with its labelling progress
//	@Tags			admin,dataset
//	@Produce		json
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.DatasetWithProgress}
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/datasets/{dataset_id}/ [get]
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}
	userID, _ := middleware.UserID(c)

	ds, err := h.svc.GetWithProgress(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ds})
}

// ListDatasets godoc
//
//	@Summary		List datasets
//	@Description	List all datasets with per-dataset labelling progress
//	@Tags			admin,dataset
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.DatasetWithProgress}
//	@Router			/admin/datasets/ [get]
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	datasets, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	out, err := h.svc.ListWithProgress(c.Request.Context(), datasets, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type UpdateDatasetReq struct {
	Name     string   `json:"name" binding:"required"`
	Classes  []string `json:"classes"`
	Classes2 []string `json:"classes2"`
}

// UpdateDataset godoc
//
//	@Summary		Update dataset
//	@Description	Replace a dataset's name and class vocabularies
//	@Tags			admin,dataset
//	@Accept			json
//	@Produce		json
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Param			body	body	UpdateDatasetReq	true	"Replacement payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Dataset}
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/datasets/{dataset_id}/ [put]
func (h *DatasetHandler) UpdateDataset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	var req UpdateDatasetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	ds, err := h.svc.Update(c.Request.Context(), id, service.UpdateDatasetInput{
		Name:     req.Name,
		Classes:  req.Classes,
		Classes2: req.Classes2,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: ds})
}

// DeleteDataset godoc
//
//	@Summary		Delete dataset
//	@Description	Delete a dataset; items, images, assignments and annotations cascade
//	@Tags			admin,dataset
//	@Produce		json
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/datasets/{dataset_id}/ [delete]
func (h *DatasetHandler) DeleteDataset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "Dataset deleted"})
}
