package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marconi-lab/annotator/internal/infra/blob"
	"github.com/marconi-lab/annotator/internal/infra/httpclient"
	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

type PredictHandler struct {
	images  service.ImageService
	client  *httpclient.PredictClient
	storage *blob.S3Deps
}

func NewPredictHandler(images service.ImageService, client *httpclient.PredictClient, storage *blob.S3Deps) *PredictHandler {
	return &PredictHandler{images: images, client: client, storage: storage}
}

// Predict godoc
//
//	@Summary		Run model prediction on an image
//	@Description	Fetch the stored image and forward it to the prediction service
//	@Tags			admin,predict
//	@Produce		json
//	@Param			image_id	path	string	true	"Image id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=httpclient.Prediction}
//	@Failure		404	{object}	serializer.Response
//	@Failure		502	{object}	serializer.Response
//	@Router			/external/predict/{image_id} [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	id, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid image id", err))
		return
	}

	ctx := c.Request.Context()
	img, err := h.images.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Image not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	key := h.storage.KeyFromURL(img.URL)
	body, err := h.storage.Download(ctx, key)
	if err != nil {
		c.JSON(http.StatusBadGateway, serializer.UpstreamErr("Prediction unavailable", err))
		return
	}
	defer body.Close()

	pred, err := h.client.Predict(ctx, img.Name, "application/octet-stream", body)
	if err != nil {
		c.JSON(http.StatusBadGateway, serializer.UpstreamErr("Prediction unavailable", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: pred})
}
