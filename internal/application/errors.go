package application

import "github.com/linskybing/projectsign/pkg/apperr"

// InvalidTokenMessage is the only token error an external signer ever sees.
const InvalidTokenMessage = "הקישור אינו תקף או שפג תוקפו"

var (
	ErrInvalidToken    = apperr.New(apperr.KindInvalidOrExpiredToken, InvalidTokenMessage)
	ErrDocumentChanged = apperr.New(apperr.KindConflict, "המסמך עודכן, יש לרענן את הדף ולחתום מחדש")

	ErrFormNotFound    = apperr.New(apperr.KindNotFound, "form not found")
	ErrProjectNotFound = apperr.New(apperr.KindNotFound, "project not found")
	ErrForbidden       = apperr.New(apperr.KindForbidden, "you do not have access to this resource")

	ErrEditSigned   = apperr.New(apperr.KindAlreadySigned, "לא ניתן לערוך טופס שכבר נחתם")
	ErrDeleteSigned = apperr.New(apperr.KindAlreadySigned, "לא ניתן למחוק טופס שכבר נחתם")
	ErrMintSigned   = apperr.New(apperr.KindAlreadySigned, "הטופס כבר נחתם")

	ErrProjectHasSigned  = apperr.New(apperr.KindConflict, "cannot delete a project with signed forms")
	ErrInvalidTransition = apperr.New(apperr.KindConflict, "status transition not allowed")
	ErrStatusChanged     = apperr.New(apperr.KindConflict, "project status changed concurrently")

	ErrUsernameTaken       = apperr.New(apperr.KindConflict, "username already taken")
	ErrInvalidCredentials  = apperr.New(apperr.KindUnauthorized, "invalid credentials")
	ErrUserNotFound        = apperr.New(apperr.KindNotFound, "user not found")
	ErrPasswordHashFailure = apperr.New(apperr.KindInternal, "failed to hash password")
)
