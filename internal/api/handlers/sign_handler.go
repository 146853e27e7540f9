package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/internal/domain/signing"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/response"
	"github.com/linskybing/projectsign/pkg/utils"
)

// maxSignBody covers a base64 encoded signature at its size limit plus the
// remaining fields.
const maxSignBody = 4 << 20

// SignHandler serves the unauthenticated signer. The token in the path is
// the only credential.
type SignHandler struct {
	svc *application.SigningService
}

func NewSignHandler(svc *application.SigningService) *SignHandler {
	return &SignHandler{svc: svc}
}

// GetSigningForm godoc
// @Summary Load the form behind a signing link
// @Tags sign
// @Produce json
// @Param token path string true "Signing token"
// @Success 200 {object} signing.FormSnapshot
// @Failure 404 {object} response.ErrorResponse "Invalid or expired link"
// @Router /sign-api/{token} [get]
func (h *SignHandler) GetSigningForm(c *gin.Context) {
	snap, err := h.svc.Validate(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, snap)
}

// SubmitSignature godoc
// @Summary Sign a form
// @Tags sign
// @Accept json
// @Produce json
// @Param token path string true "Signing token"
// @Param input body signing.SubmitSignatureDTO true "Signer name, signature image and optional amendments"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Invalid or expired link"
// @Failure 409 {object} response.ErrorResponse "Document changed since it was loaded"
// @Failure 413 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse "Signature storage unavailable"
// @Router /sign-api/{token} [post]
func (h *SignHandler) SubmitSignature(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSignBody)

	var input signing.SubmitSignatureDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{
				Error: "request body too large",
				Code:  string(apperr.KindValidation),
			})
			return
		}
		bindError(c, err)
		return
	}

	err := h.svc.SubmitSignature(c.Request.Context(), signing.Submission{
		Token:         c.Param("token"),
		SignerName:    input.SignerName,
		SignatureData: input.SignatureData,
		AmendedFields: input.AmendedFields,
		Version:       input.Version,
		IP:            utils.ClientIP(c),
		UserAgent:     c.GetHeader("User-Agent"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}
