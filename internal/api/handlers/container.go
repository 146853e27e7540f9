package handlers

import (
	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/internal/repository"
)

type Handlers struct {
	Audit   *AuditHandler
	User    *UserHandler
	Project *ProjectHandler
	Form    *FormHandler
	Sign    *SignHandler
	Events  *EventsHandler
	Health  *HealthHandler
}

func New(svc *application.Services, repos *repository.Repos) *Handlers {
	return &Handlers{
		Audit:   NewAuditHandler(svc.Audit),
		User:    NewUserHandler(svc.User),
		Project: NewProjectHandler(svc.Project, svc.Form),
		Form:    NewFormHandler(svc.Form, svc.Dispatch, svc.Document),
		Sign:    NewSignHandler(svc.Signing),
		Events:  NewEventsHandler(svc.Events),
		Health:  NewHealthHandler(repos),
	}
}
