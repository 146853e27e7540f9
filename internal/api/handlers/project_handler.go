package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/domain/project"
	"github.com/linskybing/projectsign/pkg/response"
	"github.com/linskybing/projectsign/pkg/utils"
)

type ProjectHandler struct {
	svc   *application.ProjectService
	forms *application.FormService
}

func NewProjectHandler(svc *application.ProjectService, forms *application.FormService) *ProjectHandler {
	return &ProjectHandler{svc: svc, forms: forms}
}

func (h *ProjectHandler) projectID(c *gin.Context) (string, bool) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		badRequest(c, "invalid project id")
		return "", false
	}
	return id, true
}

// GetProjects godoc
// @Summary List projects of the current owner
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} project.Project
// @Failure 400 {object} response.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	var status *project.Status
	if s := c.Query("status"); s != "" {
		st := project.Status(s)
		status = &st
	}

	projects, err := h.svc.ListProjects(uid, status)
	if err != nil {
		respondError(c, err)
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body project.CreateProjectDTO true "Project"
// @Success 201 {object} project.Project
// @Failure 400 {object} response.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input project.CreateProjectDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.svc.CreateProject(utils.ActorFromContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProjectByID godoc
// @Summary Get a project with its forms and workflow
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} application.ProjectDetail
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	detail, err := h.svc.GetProject(uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateProject godoc
// @Summary Update project details and contact
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body project.UpdateProjectDTO true "Changes"
// @Success 200 {object} project.Project
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	var input project.UpdateProjectDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.svc.UpdateProject(utils.ActorFromContext(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateStatus godoc
// @Summary Change project status
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body project.UpdateStatusDTO true "New status"
// @Success 200 {object} project.Project
// @Failure 409 {object} response.ErrorResponse "Transition not allowed"
// @Router /projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	var input project.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.svc.UpdateStatus(utils.ActorFromContext(c), id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject godoc
// @Summary Delete a project without signed forms
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.MessageResponse
// @Failure 409 {object} response.ErrorResponse "Project has signed forms"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteProject(utils.ActorFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Project deleted"})
}

// ListForms godoc
// @Summary List a project's forms
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} form.Form
// @Router /projects/{id}/forms [get]
func (h *ProjectHandler) ListForms(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	forms, err := h.forms.ListForms(uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if forms == nil {
		forms = []form.Form{}
	}
	c.JSON(http.StatusOK, forms)
}

// CreateForm godoc
// @Summary Create a draft form
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body form.CreateFormDTO true "Form type and payload"
// @Success 201 {object} form.Form
// @Failure 400 {object} response.ErrorResponse
// @Router /projects/{id}/forms [post]
func (h *ProjectHandler) CreateForm(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	var input form.CreateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	f, err := h.forms.CreateForm(utils.ActorFromContext(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}
