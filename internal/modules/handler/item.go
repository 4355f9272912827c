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

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(s service.ItemService) *ItemHandler {
	return &ItemHandler{svc: s}
}

// ListItems godoc
//
//	@Summary		List dataset items
//	@Description	List a dataset's items with their image URLs and labels
//	@Tags			admin,item
//	@Produce		json
//	@Param			dataset_id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.ItemWithImages}
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/{dataset_id}/item/ [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	datasetID, err := uuid.Parse(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}

	out, err := h.svc.ListWithImages(c.Request.Context(), datasetID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetItem godoc
//
//	@Summary		Get item
//	@Description	Get an item with its images and the dataset's class vocabularies
//	@Tags			annotator,item
//	@Produce		json
//	@Param			item_id	path	string	true	"Item id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/item/{item_id}/ [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid item id", err))
		return
	}

	detail, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{
		"item":            detail.Item,
		"images":          detail.Images,
		"image_classes":   detail.DatasetClasses.Classes2,
		"dataset_classes": detail.DatasetClasses.Classes,
	}})
}

type UpdateItemReq struct {
	Label   string `json:"label"`
	Comment string `json:"comment"`
}

// UpdateItem godoc
//
//	@Summary		Label item
//	@Description	Set the item-level label and comment; child images become folder-labelled
//	@Tags			annotator,item
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path	string	true	"Item id"
//	@Param			body	body	UpdateItemReq	true	"Label payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Item}
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/item/{item_id}/ [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid item id", err))
		return
	}

	var req UpdateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.UpdateItemInput{Label: req.Label, Comment: req.Comment}
	if userID, ok := middleware.UserID(c); ok {
		in.Labeller = &userID
	}

	item, err := h.svc.UpdateLabel(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: item})
}
