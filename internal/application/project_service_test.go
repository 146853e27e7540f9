package application

import (
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/domain/project"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/internal/repository/mock"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/types"
	"github.com/linskybing/projectsign/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProjectMocks(t *testing.T) (*ProjectService, *mock.MockProjectRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockProject := mock.NewMockProjectRepo(ctrl)
	repos := &repository.Repos{
		Project: mockProject,
		Audit:   mock.NewMockAuditRepo(ctrl),
	}

	oldAudit := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(repository.AuditRepo, utils.AuditEntry) {}
	t.Cleanup(func() { utils.LogAuditWithConsole = oldAudit })

	return NewProjectService(repos), mockProject
}

func TestProjectService_CreateProject(t *testing.T) {
	svc, mockProject := setupProjectMocks(t)
	actor := types.Actor{UserID: 4}

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.CreateProject(actor, project.CreateProjectDTO{Name: "   "})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("with contact", func(t *testing.T) {
		mockProject.EXPECT().CreateProject(gomock.Any()).DoAndReturn(func(p *project.Project) error {
			assert.Equal(t, uint(4), p.UserID)
			assert.Equal(t, project.StatusDraft, p.Status)
			require.NotNil(t, p.Contact)
			assert.Equal(t, "Dana Cohen", p.Contact.Name)
			p.ID = "p-1"
			return nil
		})
		p, err := svc.CreateProject(actor, project.CreateProjectDTO{
			Name:    " Kitchen ",
			Contact: &project.ContactInput{Name: "Dana Cohen"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Kitchen", p.Name)
	})
}

func TestProjectService_UpdateStatus(t *testing.T) {
	svc, mockProject := setupProjectMocks(t)
	actor := types.Actor{UserID: 1}

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.UpdateStatus(actor, "p-1", project.Status("archived"))
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("disallowed transition", func(t *testing.T) {
		mockProject.EXPECT().GetProjectByID("p-1").Return(project.Project{ID: "p-1", UserID: 1, Status: project.StatusDraft}, nil)
		_, err := svc.UpdateStatus(actor, "p-1", project.StatusPaid)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("lost race", func(t *testing.T) {
		mockProject.EXPECT().GetProjectByID("p-1").Return(project.Project{ID: "p-1", UserID: 1, Status: project.StatusDraft}, nil)
		mockProject.EXPECT().CompareAndSetStatus("p-1", project.StatusDraft, project.StatusQuoteSent).Return(int64(0), nil)
		_, err := svc.UpdateStatus(actor, "p-1", project.StatusQuoteSent)
		assert.ErrorIs(t, err, ErrStatusChanged)
	})

	t.Run("success", func(t *testing.T) {
		mockProject.EXPECT().GetProjectByID("p-1").Return(project.Project{ID: "p-1", UserID: 1, Status: project.StatusDraft}, nil)
		mockProject.EXPECT().CompareAndSetStatus("p-1", project.StatusDraft, project.StatusQuoteSent).Return(int64(1), nil)
		p, err := svc.UpdateStatus(actor, "p-1", project.StatusQuoteSent)
		require.NoError(t, err)
		assert.Equal(t, project.StatusQuoteSent, p.Status)
	})

	t.Run("not owner", func(t *testing.T) {
		mockProject.EXPECT().GetProjectByID("p-1").Return(project.Project{ID: "p-1", UserID: 9, Status: project.StatusDraft}, nil)
		_, err := svc.UpdateStatus(actor, "p-1", project.StatusQuoteSent)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestProjectDetailAndWorkflow(t *testing.T) {
	env := newTestEnv(t)
	quote := env.createForm(t, form.TypeQuote, quotePayload)
	env.mint(t, quote.ID)
	completion := env.createForm(t, form.TypeCompletion, completionPayload)
	token := env.mint(t, completion.ID)
	require.NoError(t, env.svc.Signing.SubmitSignature(t.Context(), submission(token, "Dana", signatureDataURI(t))))

	detail, err := env.svc.Project.GetProject(env.owner.UserID, env.project.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Forms, 2)
	assert.Equal(t, project.StatusCompleted, detail.Status)
	assert.Equal(t, []project.Status{project.StatusPaid}, detail.NextStatuses)

	require.Len(t, detail.Workflow, 4)
	assert.Equal(t, project.StepCreated, detail.Workflow[0].Status)
	assert.Equal(t, project.StepNotStarted, detail.Workflow[1].Status)
	assert.Equal(t, project.StepSigned, detail.Workflow[2].Status)
	assert.Equal(t, project.StepNotStarted, detail.Workflow[3].Status)
	require.NotNil(t, detail.Workflow[2].FormID)
	assert.Equal(t, completion.ID, *detail.Workflow[2].FormID)
}

func TestUpdateProjectUpsertsContact(t *testing.T) {
	env := newTestEnv(t)
	phone := "050-7654321"
	name := "Bathroom"

	p, err := env.svc.Project.UpdateProject(env.owner, env.project.ID, project.UpdateProjectDTO{
		Name:    &name,
		Contact: &project.ContactInput{Name: "Avi Levi", Phone: &phone},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bathroom", p.Name)
	require.NotNil(t, p.Contact)
	assert.Equal(t, "Avi Levi", p.Contact.Name)
	assert.Equal(t, phone, *p.Contact.Phone)
}

func TestDeleteProject(t *testing.T) {
	t.Run("cascades unsigned forms and tokens", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.createForm(t, form.TypeQuote, quotePayload)
		token := env.mint(t, f.ID)

		require.NoError(t, env.svc.Project.DeleteProject(env.owner, env.project.ID))

		_, err := env.svc.Signing.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		_, err = env.svc.Project.GetProject(env.owner.UserID, env.project.ID)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("refused with a signed form", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.createForm(t, form.TypeQuote, quotePayload)
		token := env.mint(t, f.ID)
		require.NoError(t, env.svc.Signing.SubmitSignature(t.Context(), submission(token, "Dana", signatureDataURI(t))))

		err := env.svc.Project.DeleteProject(env.owner, env.project.ID)
		assert.ErrorIs(t, err, ErrProjectHasSigned)

		_, err = env.repos.Form.GetFormByID(f.ID)
		assert.NoError(t, err)
	})
	t.Run("signature landing after the check keeps the form", func(t *testing.T) {
		env := newTestEnv(t)
		f := env.createForm(t, form.TypeQuote, quotePayload)

		// Sign the form right after the first signed-form count, inside the
		// delete transaction, as a concurrent signer committing would.
		fired := false
		require.NoError(t, env.db.Callback().Query().After("gorm:query").Register("test:sign_between", func(db *gorm.DB) {
			if fired || !strings.Contains(db.Statement.SQL.String(), "signed_at IS NOT NULL") {
				return
			}
			fired = true
			require.NoError(t, db.Session(&gorm.Session{NewDB: true}).
				Exec("UPDATE forms SET signed_at = CURRENT_TIMESTAMP WHERE id = ?", f.ID).Error)
		}))
		t.Cleanup(func() { _ = env.db.Callback().Query().Remove("test:sign_between") })

		err := env.svc.Project.DeleteProject(env.owner, env.project.ID)
		require.True(t, fired)
		assert.ErrorIs(t, err, ErrProjectHasSigned)

		var n int64
		require.NoError(t, env.db.Model(&form.Form{}).Where("id = ?", f.ID).Count(&n).Error)
		assert.Equal(t, int64(1), n)
		_, err = env.svc.Project.GetProject(env.owner.UserID, env.project.ID)
		assert.NoError(t, err)
	})
}
