package application

import (
	"context"

	"github.com/linskybing/projectsign/internal/notify"
	"github.com/linskybing/projectsign/internal/render"
	"github.com/linskybing/projectsign/internal/repository"
	"go.uber.org/zap"
)

// BlobStore persists signature images.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Notifier delivers a signing link to a recipient.
type Notifier interface {
	SendSigningRequest(ctx context.Context, req notify.SigningRequest) error
}

// DocumentRenderer turns a form into PDF bytes.
type DocumentRenderer interface {
	Render(ctx context.Context, doc render.Document) ([]byte, error)
}

// Dependencies are the external collaborators the services talk to.
type Dependencies struct {
	Blobs    BlobStore
	Email    Notifier
	SMS      Notifier
	Renderer DocumentRenderer
	Events   *EventHub
	Logger   *zap.Logger
}

type Services struct {
	Audit    *AuditService
	User     *UserService
	Project  *ProjectService
	Form     *FormService
	Signing  *SigningService
	Dispatch *DispatchService
	Document *DocumentService
	Events   *EventHub
}

func New(repos *repository.Repos, deps Dependencies) *Services {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Events == nil {
		deps.Events = NewEventHub()
	}
	signingSvc := NewSigningService(repos, deps.Blobs, deps.Events, deps.Logger)
	return &Services{
		Audit:    NewAuditService(repos),
		User:     NewUserService(repos),
		Project:  NewProjectService(repos),
		Form:     NewFormService(repos),
		Signing:  signingSvc,
		Dispatch: NewDispatchService(repos, signingSvc, deps.Email, deps.SMS, deps.Logger),
		Document: NewDocumentService(repos, deps.Blobs, deps.Renderer),
		Events:   deps.Events,
	}
}
