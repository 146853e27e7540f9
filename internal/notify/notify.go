// Package notify delivers signing links by email and SMS.
package notify

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/linskybing/projectsign/internal/domain/form"
)

var ErrNotConfigured = errors.New("service not configured")

// SigningRequest is the template data for one signing invitation.
type SigningRequest struct {
	To          string
	ContactName string
	ProjectName string
	FormType    form.Type
	SigningURL  string
	ValidFor    time.Duration
}

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplate = template.Must(template.ParseFS(templateFS, "templates/signing_email.html"))

func SigningEmailSubject(req SigningRequest) string {
	return fmt.Sprintf("%s - %s | דרוש חתימתך", form.LabelOf(req.FormType).Dispatch, req.ProjectName)
}

func RenderSigningEmail(req SigningRequest) (string, error) {
	hours := int(req.ValidFor / time.Hour)
	if hours <= 0 {
		hours = 48
	}
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, map[string]any{
		"ContactName":  req.ContactName,
		"FormTypeName": form.LabelOf(req.FormType).Dispatch,
		"ProjectName":  req.ProjectName,
		"SigningURL":   req.SigningURL,
		"ValidHours":   hours,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func SigningSMSBody(req SigningRequest) string {
	return fmt.Sprintf("ProjectSign: מסמך %s עבור \"%s\" ממתין לחתימתך.\n\nלחתימה לחץ כאן:\n%s",
		form.LabelOf(req.FormType).Dispatch, req.ProjectName, req.SigningURL)
}

// FormatIsraeliPhone converts a local number to E.164 (+972...).
func FormatIsraeliPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case strings.HasPrefix(d, "0"):
		return "+972" + d[1:]
	case strings.HasPrefix(d, "972"):
		return "+" + d
	default:
		return "+972" + d
	}
}
