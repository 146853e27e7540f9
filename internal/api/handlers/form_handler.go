package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/pkg/response"
	"github.com/linskybing/projectsign/pkg/utils"
)

type FormHandler struct {
	svc      *application.FormService
	dispatch *application.DispatchService
	docs     *application.DocumentService
}

func NewFormHandler(svc *application.FormService, dispatch *application.DispatchService, docs *application.DocumentService) *FormHandler {
	return &FormHandler{svc: svc, dispatch: dispatch, docs: docs}
}

func (h *FormHandler) formID(c *gin.Context) (string, bool) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		badRequest(c, "invalid form id")
		return "", false
	}
	return id, true
}

// GetForm godoc
// @Summary Get a form with its integrity status
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} form.FormView
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	view, err := h.svc.GetForm(uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateForm godoc
// @Summary Replace the payload of an unsigned form
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.UpdateFormDTO true "New payload"
// @Success 200 {object} form.Form
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Form already signed"
// @Router /forms/{id} [patch]
func (h *FormHandler) UpdateForm(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}
	var input form.UpdateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	f, err := h.svc.UpdateForm(utils.ActorFromContext(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteForm godoc
// @Summary Delete an unsigned form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} response.MessageResponse
// @Failure 409 {object} response.ErrorResponse "Form already signed"
// @Router /forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteForm(utils.ActorFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Form deleted"})
}

// SendForm godoc
// @Summary Mint a signing link and deliver it
// @Description method=link only returns the URL. Delivery failures still return the URL with dispatched=false.
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param input body form.SendFormDTO true "Delivery channel"
// @Success 200 {object} form.SendFormResult
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Form already signed"
// @Router /forms/{id}/send [post]
func (h *FormHandler) SendForm(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}
	var input form.SendFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.dispatch.Send(c.Request.Context(), utils.ActorFromContext(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DownloadPDF godoc
// @Summary Export a form as PDF
// @Tags forms
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Form ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse "Renderer unavailable or timed out"
// @Router /forms/{id}/pdf [get]
func (h *FormHandler) DownloadPDF(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	data, name, err := h.docs.RenderPDF(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, asciiFileName(name), url.PathEscape(name)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", data)
}

// VerifyForm godoc
// @Summary Recompute the hash of a signed form
// @Tags forms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} form.IntegrityReport
// @Router /forms/{id}/verify [get]
func (h *FormHandler) VerifyForm(c *gin.Context) {
	id, ok := h.formID(c)
	if !ok {
		return
	}
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	report, err := h.svc.VerifyIntegrity(uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// asciiFileName is the fallback for clients that ignore filename*.
func asciiFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' {
			return '_'
		}
		return r
	}, name)
}
