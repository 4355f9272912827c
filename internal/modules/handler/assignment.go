package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

type AssignmentHandler struct {
	svc service.AssignmentService
}

func NewAssignmentHandler(s service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: s}
}

type AssignmentReq struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	DatasetID string `json:"dataset_id" binding:"required,uuid"`
}

// CreateAssignment godoc
//
//	@Summary		Assign dataset to user
//	@Description	Create a user/dataset assignment; repeats are a no-op
//	@Tags			admin,assignment
//	@Accept			json
//	@Produce		json
//	@Param			body	body	AssignmentReq	true	"Assignment pair"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/assignments/ [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req AssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID := uuid.MustParse(req.UserID)
	datasetID := uuid.MustParse(req.DatasetID)

	if err := h.svc.Create(c.Request.Context(), userID, datasetID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("User or dataset not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Msg: "Assignment created"})
}

// ListAssignments godoc
//
//	@Summary		List assignments
//	@Description	List assignments filtered by user_id or dataset_id
//	@Tags			admin,assignment
//	@Produce		json
//	@Param			user_id		query	string	false	"Filter by user"
//	@Param			dataset_id	query	string	false	"Filter by dataset"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Assignment}
//	@Failure		400	{object}	serializer.Response
//	@Router			/admin/assignments/ [get]
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	ctx := c.Request.Context()

	if q := c.Query("user_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid user id", err))
			return
		}
		out, err := h.svc.ListByUser(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Data: out})
		return
	}

	if q := c.Query("dataset_id"); q != "" {
		id, err := uuid.Parse(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid dataset id", err))
			return
		}
		out, err := h.svc.ListByDataset(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Data: out})
		return
	}

	c.JSON(http.StatusBadRequest, serializer.ParamErr("", errors.New("user_id or dataset_id is required")))
}

// DeleteAssignment godoc
//
//	@Summary		Delete assignment
//	@Tags			admin,assignment
//	@Accept			json
//	@Produce		json
//	@Param			body	body	AssignmentReq	true	"Assignment pair"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/admin/assignments/ [delete]
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	var req AssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uuid.MustParse(req.UserID), uuid.MustParse(req.DatasetID)); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "Assignment deleted"})
}
