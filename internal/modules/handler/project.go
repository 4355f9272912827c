package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type ProjectReq struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=label annotate"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Tags			admin,project
//	@Accept			json
//	@Produce		json
//	@Param			body	body	ProjectReq	true	"Project payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Failure		400	{object}	serializer.Response
//	@Router			/admin/projects/ [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req ProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req.Name, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: p})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Get one project with its users and datasets
//	@Tags			admin,project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/projects/{project_id}/ [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid project id", err))
		return
	}

	ctx := c.Request.Context()
	p, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	users, err := h.svc.ListUsers(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	datasets, err := h.svc.ListDatasets(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{
		"project":  p,
		"users":    users,
		"datasets": datasets,
	}})
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Tags			admin,project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/admin/projects/ [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: projects})
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Tags			admin,project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project id"
//	@Param			body	body	ProjectReq	true	"Replacement payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/projects/{project_id}/ [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid project id", err))
		return
	}

	var req ProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, req.Name, req.Type)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: p})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete a project; its datasets cascade
//	@Tags			admin,project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project id"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/admin/projects/{project_id}/ [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid project id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Project not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Msg: "Project deleted"})
}
