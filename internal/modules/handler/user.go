package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

// UserHandler covers the annotator-facing endpoints.
type UserHandler struct {
	users    service.UserService
	datasets service.DatasetService
	items    service.ItemService
}

func NewUserHandler(users service.UserService, datasets service.DatasetService, items service.ItemService) *UserHandler {
	return &UserHandler{users: users, datasets: datasets, items: items}
}

// Home godoc
//
//	@Summary		Annotator home
//	@Description	Summary counts for the annotator's home screen
//	@Tags			annotator
//	@Produce		json
//	@Param			user_id	path	string	true	"User id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.HomeStats}
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/{user_id}/home/ [get]
func (h *UserHandler) Home(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid user id", err))
		return
	}

	stats, err := h.users.HomeStats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}

// AssignedDatasets godoc
//
//	@Summary		Assigned datasets
//	@Description	The annotator's datasets with per-dataset labelling progress
//	@Tags			annotator
//	@Produce		json
//	@Param			user_id	path	string	true	"User id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.DatasetWithProgress}
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/{user_id}/datasets/ [get]
func (h *UserHandler) AssignedDatasets(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid user id", err))
		return
	}

	ctx := c.Request.Context()
	assigned, err := h.users.AssignedDatasets(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	out, err := h.datasets.ListWithProgress(ctx, assigned, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// DatasetItems godoc
//
//	@Summary		Dataset items
//	@Description	The dataset's items ordered by name, for the annotator's work list
//	@Tags			annotator
//	@Produce		json
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Item}
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/datasets/{dataset_id}/ [get]
func (h *UserHandler) DatasetItems(c *gin.Context) {
	datasetID, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.datasets.Get(ctx, datasetID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	items, err := h.items.ListByDataset(ctx, datasetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: items})
}
