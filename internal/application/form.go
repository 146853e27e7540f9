package application

import (
	"errors"
	"fmt"

	"github.com/linskybing/projectsign/internal/domain/audit"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/domain/project"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/canonhash"
	"github.com/linskybing/projectsign/pkg/types"
	"github.com/linskybing/projectsign/pkg/utils"
	"gorm.io/gorm"
)

type FormService struct {
	Repos *repository.Repos
}

func NewFormService(repos *repository.Repos) *FormService {
	return &FormService{
		Repos: repos,
	}
}

// loadOwnedForm reads a form and checks that userID owns its project.
func loadOwnedForm(repos *repository.Repos, userID uint, id string) (form.Form, error) {
	f, err := repos.Form.GetFormByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return form.Form{}, ErrFormNotFound
		}
		return form.Form{}, err
	}
	if f.Project.UserID != userID {
		return form.Form{}, ErrForbidden
	}
	return f, nil
}

func loadOwnedProject(repos *repository.Repos, userID uint, id string) (project.Project, error) {
	p, err := repos.Project.GetProjectByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, err
	}
	if p.UserID != userID {
		return project.Project{}, ErrForbidden
	}
	return p, nil
}

// statusAfterCreate is the project status implied by creating a form, if any.
func statusAfterCreate(p form.Payload) (project.Status, bool) {
	switch v := p.(type) {
	case *form.WorkApprovalPayload:
		return project.StatusApproved, true
	case *form.CompletionPayload:
		return project.StatusCompleted, true
	case *form.PaymentPayload:
		if v.FullyPaid() {
			return project.StatusPaid, true
		}
	}
	return "", false
}

func (s *FormService) CreateForm(actor types.Actor, projectID string, input form.CreateFormDTO) (*form.Form, error) {
	p, err := loadOwnedProject(s.Repos, actor.UserID, projectID)
	if err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("unknown form type %q", input.Type))
	}
	payload, err := form.DecodeAndValidate(input.Type, input.Data)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	data, err := form.Encode(payload)
	if err != nil {
		return nil, err
	}

	f := &form.Form{
		ProjectID: p.ID,
		Type:      input.Type,
		Data:      data,
	}
	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		if err := tx.Form.CreateForm(f); err != nil {
			return err
		}
		if next, ok := statusAfterCreate(payload); ok && next != p.Status {
			return tx.Project.SetStatus(p.ID, next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionCreate,
		ResourceType: "form",
		ResourceID:   f.ID,
		After:        f,
		Description:  fmt.Sprintf("created %s form", f.Type),
	})
	return f, nil
}

func (s *FormService) GetForm(userID uint, id string) (form.FormView, error) {
	f, err := loadOwnedForm(s.Repos, userID, id)
	if err != nil {
		return form.FormView{}, err
	}
	return form.FormView{Form: f, IntegrityStatus: Integrity(f).Status}, nil
}

func (s *FormService) ListForms(userID uint, projectID string) ([]form.Form, error) {
	if _, err := loadOwnedProject(s.Repos, userID, projectID); err != nil {
		return nil, err
	}
	return s.Repos.Form.ListFormsByProject(projectID)
}

// UpdateForm replaces the payload of an unsigned form and bumps its version.
func (s *FormService) UpdateForm(actor types.Actor, id string, input form.UpdateFormDTO) (*form.Form, error) {
	f, err := loadOwnedForm(s.Repos, actor.UserID, id)
	if err != nil {
		return nil, err
	}
	if f.IsSigned() {
		return nil, ErrEditSigned
	}
	payload, err := form.DecodeAndValidate(f.Type, input.Data)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	data, err := form.Encode(payload)
	if err != nil {
		return nil, err
	}

	n, err := s.Repos.Form.UpdateDataIfUnsigned(id, data)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEditSigned
	}

	updated, err := s.Repos.Form.GetFormByID(id)
	if err != nil {
		return nil, err
	}
	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionUpdate,
		ResourceType: "form",
		ResourceID:   id,
		Before:       f,
		After:        updated,
	})
	return &updated, nil
}

// DeleteForm removes an unsigned form together with all of its tokens.
func (s *FormService) DeleteForm(actor types.Actor, id string) error {
	f, err := loadOwnedForm(s.Repos, actor.UserID, id)
	if err != nil {
		return err
	}
	if f.IsSigned() {
		return ErrDeleteSigned
	}

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		if err := tx.Token.DeleteByForm(id); err != nil {
			return err
		}
		n, err := tx.Form.DeleteIfUnsigned(id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrDeleteSigned
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionDelete,
		ResourceType: "form",
		ResourceID:   id,
		Before:       f,
	})
	return nil
}

func (s *FormService) VerifyIntegrity(userID uint, id string) (form.IntegrityReport, error) {
	f, err := loadOwnedForm(s.Repos, userID, id)
	if err != nil {
		return form.IntegrityReport{}, err
	}
	return Integrity(f), nil
}

// Integrity recomputes the canonical hash of f's stored payload and compares
// it with the hash recorded at signing.
func Integrity(f form.Form) form.IntegrityReport {
	if !f.IsSigned() || f.SignatureHash == nil {
		return form.IntegrityReport{Status: form.IntegrityUnsigned}
	}
	report := form.IntegrityReport{StoredHash: *f.SignatureHash}
	computed, err := canonhash.SumJSON(f.Data)
	if err != nil {
		report.Status = form.IntegrityTampered
		return report
	}
	report.ComputedHash = computed
	if computed == *f.SignatureHash {
		report.Status = form.IntegrityValid
	} else {
		report.Status = form.IntegrityTampered
	}
	return report
}
