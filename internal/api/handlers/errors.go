package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/response"
	"go.uber.org/zap"
)

// respondError maps a service error onto the HTTP error envelope. Internal
// errors are logged and replaced with a generic message.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	msg := apperr.MessageOf(err)

	if kind == apperr.KindInternal || kind == apperr.KindDependency {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
	if kind == apperr.KindInternal {
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.JSON(status, response.ErrorResponse{Error: msg, Code: string(kind)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: msg, Code: string(apperr.KindValidation)})
}

// bindError turns binding failures into a friendly message for the frontend.
func bindError(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		badRequest(c, "Invalid input")
		return
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		lbl := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		msgs = append(msgs, msg)
	}
	badRequest(c, strings.Join(msgs, "; "))
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized", Code: string(apperr.KindUnauthorized)})
}
