package application

import (
	"fmt"
	"strings"

	"github.com/linskybing/projectsign/internal/domain/audit"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/domain/project"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/types"
	"github.com/linskybing/projectsign/pkg/utils"
)

// ProjectDetail is a project with its forms and derived workflow.
type ProjectDetail struct {
	project.Project
	Forms        []form.Form            `json:"forms"`
	Workflow     []project.WorkflowStep `json:"workflow"`
	NextStatuses []project.Status       `json:"next_statuses"`
}

type ProjectService struct {
	Repos *repository.Repos
}

func NewProjectService(repos *repository.Repos) *ProjectService {
	return &ProjectService{
		Repos: repos,
	}
}

func (s *ProjectService) ListProjects(userID uint, status *project.Status) ([]project.Project, error) {
	if status != nil && !status.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", *status))
	}
	return s.Repos.Project.ListProjectsByUser(userID, status)
}

func (s *ProjectService) CreateProject(actor types.Actor, input project.CreateProjectDTO) (*project.Project, error) {
	p := &project.Project{
		UserID:      actor.UserID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Status:      project.StatusDraft,
	}
	if p.Name == "" {
		return nil, apperr.Validation("project name is required")
	}
	if input.Contact != nil {
		p.Contact = contactFromInput(*input.Contact)
	}
	if err := s.Repos.Project.CreateProject(p); err != nil {
		return nil, err
	}

	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionCreate,
		ResourceType: "project",
		ResourceID:   p.ID,
		After:        p,
	})
	return p, nil
}

func (s *ProjectService) GetProject(userID uint, id string) (*ProjectDetail, error) {
	p, err := loadOwnedProject(s.Repos, userID, id)
	if err != nil {
		return nil, err
	}
	forms, err := s.Repos.Form.ListFormsByProject(id)
	if err != nil {
		return nil, err
	}
	return &ProjectDetail{
		Project:      p,
		Forms:        forms,
		Workflow:     WorkflowSteps(forms),
		NextStatuses: p.Status.NextStatuses(),
	}, nil
}

func (s *ProjectService) UpdateProject(actor types.Actor, id string, input project.UpdateProjectDTO) (*project.Project, error) {
	p, err := loadOwnedProject(s.Repos, actor.UserID, id)
	if err != nil {
		return nil, err
	}
	before := p

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.Validation("project name is required")
		}
		p.Name = name
	}
	if input.Description != nil {
		p.Description = input.Description
	}

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		if err := tx.Project.UpdateProject(&p); err != nil {
			return err
		}
		if input.Contact != nil {
			c := contactFromInput(*input.Contact)
			c.ProjectID = p.ID
			return tx.Project.UpsertContact(c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.Repos.Project.GetProjectByID(id)
	if err != nil {
		return nil, err
	}
	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionUpdate,
		ResourceType: "project",
		ResourceID:   id,
		Before:       before,
		After:        updated,
	})
	return &updated, nil
}

// UpdateStatus applies an owner-driven status change. Only transitions listed
// in the project state machine are accepted.
func (s *ProjectService) UpdateStatus(actor types.Actor, id string, next project.Status) (*project.Project, error) {
	if !next.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", next))
	}
	p, err := loadOwnedProject(s.Repos, actor.UserID, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	n, err := s.Repos.Project.CompareAndSetStatus(id, p.Status, next)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrStatusChanged
	}

	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionStatus,
		ResourceType: "project",
		ResourceID:   id,
		Before:       map[string]any{"status": p.Status},
		After:        map[string]any{"status": next},
	})
	p.Status = next
	return &p, nil
}

// DeleteProject removes a project, its forms and their tokens. Projects with
// a signed form are kept.
func (s *ProjectService) DeleteProject(actor types.Actor, id string) error {
	p, err := loadOwnedProject(s.Repos, actor.UserID, id)
	if err != nil {
		return err
	}

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		signed, err := tx.Form.CountSignedByProject(id)
		if err != nil {
			return err
		}
		if signed > 0 {
			return ErrProjectHasSigned
		}
		forms, err := tx.Form.ListFormsByProject(id)
		if err != nil {
			return err
		}
		for _, f := range forms {
			if err := tx.Token.DeleteByForm(f.ID); err != nil {
				return err
			}
		}
		if _, err := tx.Form.DeleteUnsignedByProject(id); err != nil {
			return err
		}
		// A signature may have committed after the first count.
		signed, err = tx.Form.CountSignedByProject(id)
		if err != nil {
			return err
		}
		if signed > 0 {
			return ErrProjectHasSigned
		}
		return tx.Project.DeleteProject(id)
	})
	if err != nil {
		return err
	}

	utils.LogAuditWithConsole(s.Repos.Audit, utils.AuditEntry{
		Actor:        actor,
		Action:       audit.ActionDelete,
		ResourceType: "project",
		ResourceID:   id,
		Before:       p,
	})
	return nil
}

// WorkflowSteps derives the per-document progress from a project's forms,
// which must be ordered oldest first.
func WorkflowSteps(forms []form.Form) []project.WorkflowStep {
	latest := make(map[form.Type]form.Form)
	for _, f := range forms {
		latest[f.Type] = f
	}

	steps := make([]project.WorkflowStep, 0, len(form.Sequence))
	for _, t := range form.Sequence {
		step := project.WorkflowStep{Type: string(t), Status: project.StepNotStarted}
		if f, ok := latest[t]; ok {
			id := f.ID
			step.FormID = &id
			switch {
			case f.IsSigned():
				step.Status = project.StepSigned
			case f.SentAt != nil:
				step.Status = project.StepSent
			default:
				step.Status = project.StepCreated
			}
		}
		steps = append(steps, step)
	}
	return steps
}

func contactFromInput(in project.ContactInput) *project.Contact {
	return &project.Contact{
		Name:    strings.TrimSpace(in.Name),
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
		City:    in.City,
		Notes:   in.Notes,
	}
}
