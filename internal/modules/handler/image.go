package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marconi-lab/annotator/internal/middleware"
	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

type ImageHandler struct {
	svc service.ImageService
}

func NewImageHandler(s service.ImageService) *ImageHandler {
	return &ImageHandler{svc: s}
}

// GetImage godoc
//
//	@Summary		Get image
//	@Tags			annotator,image
//	@Produce		json
//	@Param			id	path	string	true	"Image id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Image}
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/images/{id}/ [get]
func (h *ImageHandler) GetImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid image id", err))
		return
	}

	img, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Image not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: img})
}

type UpdateImageReq struct {
	Label string `json:"label"`
}

// UpdateImage godoc
//
//	@Summary		Label image
//	@Description	Set the image-level label; the parent item's labelled flag is re-derived
//	@Tags			annotator,image
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Image id"
//	@Param			body	body	UpdateImageReq	true	"Label payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Image}
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/images/{id}/ [put]
func (h *ImageHandler) UpdateImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid image id", err))
		return
	}

	var req UpdateImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.UpdateImageInput{Label: req.Label}
	if userID, ok := middleware.UserID(c); ok {
		in.Labeller = &userID
	}

	img, err := h.svc.UpdateLabel(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Image not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: img})
}

type BoundingBoxReq struct {
	BoundingBox string `json:"bounding_box"`
}

// UpdateBoundingBox godoc
//
//	@Summary		Store bounding box
//	@Description	Store the serialized region for an image; an empty payload clears it
//	@Tags			annotator,image
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Image id"
//	@Param			body	body	BoundingBoxReq	true	"Serialized region"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Image}
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/images/boundingbox/{id}/ [put]
func (h *ImageHandler) UpdateBoundingBox(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid image id", err))
		return
	}

	var req BoundingBoxReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	img, err := h.svc.UpdateBoundingBox(c.Request.Context(), id, req.BoundingBox)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Image not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: img})
}

// RandomImage godoc
//
//	@Summary		Pick a random unannotated image
//	@Description	Uniformly pick an image of the dataset the caller has not annotated; returns progress "done" when none remain
//	@Tags			annotator,image
//	@Produce		json
//	@Param			id	path	string	true	"Dataset id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/images/{id}/random [get]
func (h *ImageHandler) RandomImage(c *gin.Context) {
	datasetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return
	}

	pick, err := h.svc.RandomUnannotated(c.Request.Context(), datasetID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	if pick.Done {
		c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"progress": "done"}})
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{
		"image":    pick.Image,
		"progress": pick.Progress,
	}})
}

// SubmitAnnotation godoc
//
//	@Summary		Submit an annotation
//	@Description	Append the caller's answer set for an image; repeated submissions accumulate
//	@Tags			annotator,image
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Image id"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Annotation}
//	@Failure		404	{object}	serializer.Response
//	@Router			/user/label/{id} [post]
func (h *ImageHandler) SubmitAnnotation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid image id", err))
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return
	}

	answers, err := io.ReadAll(c.Request.Body)
	if err != nil || len(answers) == 0 {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("annotation payload is required")))
		return
	}

	a, err := h.svc.SubmitAnnotation(c.Request.Context(), id, userID, answers)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Image not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: a})
}
