package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

// UserAdminHandler covers the administrative user endpoints; the
// annotator-facing ones live in UserHandler.
type UserAdminHandler struct {
	svc service.UserService
}

func NewUserAdminHandler(s service.UserService) *UserAdminHandler {
	return &UserAdminHandler{svc: s}
}

// ListUsers godoc
//
//	@Summary		List users
//	@Tags			admin,user
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.User}
//	@Router			/admin/users/ [get]
func (h *UserAdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: users})
}

// GetUser godoc
//
//	@Summary		Get user
//	@Tags			admin,user
//	@Produce		json
//	@Param			user_id	path	string	true	"User id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.User}
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/users/{user_id}/ [get]
func (h *UserAdminHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid user id", err))
		return
	}

	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: u})
}

type UpdateUserReq struct {
	ProjectID *string `json:"project_id"`
}

// UpdateUser godoc
//
//	@Summary		Update user
//	@Description	Attach the user to a project (assigning its datasets) or detach with an empty project_id
//	@Tags			admin,user
//	@Accept			json
//	@Produce		json
//	@Param			user_id	path	string	true	"User id"
//	@Param			body	body	UpdateUserReq	true	"Update payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.User}
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/users/{user_id}/ [put]
func (h *UserAdminHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid user id", err))
		return
	}

	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	projectID := uuid.Nil
	if req.ProjectID != nil && *req.ProjectID != "" {
		projectID, err = uuid.Parse(*req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid project id", err))
			return
		}
	}

	if err := h.svc.SetProject(c.Request.Context(), id, projectID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("User or project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: u})
}

// DeleteUser godoc
//
//	@Summary		Delete user
//	@Tags			admin,user
//	@Produce		json
//	@Param			user_id	path	string	true	"User id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/users/{user_id}/ [delete]
func (h *UserAdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid user id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "User deleted"})
}
