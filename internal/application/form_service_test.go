package application

import (
	"errors"
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

func setupFormMocks(t *testing.T) (*FormService, *mock.MockFormRepo, *mock.MockProjectRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockForm := mock.NewMockFormRepo(ctrl)
	mockProject := mock.NewMockProjectRepo(ctrl)
	repos := &repository.Repos{
		Form:    mockForm,
		Project: mockProject,
		Audit:   mock.NewMockAuditRepo(ctrl),
	}

	oldAudit := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(repository.AuditRepo, utils.AuditEntry) {}
	t.Cleanup(func() { utils.LogAuditWithConsole = oldAudit })

	return NewFormService(repos), mockForm, mockProject
}

func ownedForm(userID uint) form.Form {
	return form.Form{
		ID:        "f-1",
		ProjectID: "p-1",
		Type:      form.TypeQuote,
		Data:      []byte(quotePayload),
		Version:   1,
		Project:   project.Project{ID: "p-1", UserID: userID, Name: "Kitchen"},
	}
}

func TestFormService_GetForm(t *testing.T) {
	svc, mockForm, _ := setupFormMocks(t)

	t.Run("not found", func(t *testing.T) {
		mockForm.EXPECT().GetFormByID("missing").Return(form.Form{}, gorm.ErrRecordNotFound)
		_, err := svc.GetForm(1, "missing")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("other owner", func(t *testing.T) {
		mockForm.EXPECT().GetFormByID("f-1").Return(ownedForm(2), nil)
		_, err := svc.GetForm(1, "f-1")
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("unsigned", func(t *testing.T) {
		mockForm.EXPECT().GetFormByID("f-1").Return(ownedForm(1), nil)
		view, err := svc.GetForm(1, "f-1")
		require.NoError(t, err)
		assert.Equal(t, form.IntegrityUnsigned, view.IntegrityStatus)
	})
}

func TestFormService_UpdateForm(t *testing.T) {
	svc, mockForm, _ := setupFormMocks(t)
	actor := types.Actor{UserID: 1}

	t.Run("invalid payload", func(t *testing.T) {
		mockForm.EXPECT().GetFormByID("f-1").Return(ownedForm(1), nil)
		_, err := svc.UpdateForm(actor, "f-1", form.UpdateFormDTO{Data: []byte(`{"items":[]}`)})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("signed between read and write", func(t *testing.T) {
		mockForm.EXPECT().GetFormByID("f-1").Return(ownedForm(1), nil)
		mockForm.EXPECT().UpdateDataIfUnsigned("f-1", gomock.Any()).Return(int64(0), nil)
		_, err := svc.UpdateForm(actor, "f-1", form.UpdateFormDTO{Data: []byte(quotePayload)})
		assert.ErrorIs(t, err, ErrEditSigned)
	})

	t.Run("success", func(t *testing.T) {
		updated := ownedForm(1)
		updated.Version = 2
		mockForm.EXPECT().GetFormByID("f-1").Return(ownedForm(1), nil)
		mockForm.EXPECT().UpdateDataIfUnsigned("f-1", gomock.Any()).Return(int64(1), nil)
		mockForm.EXPECT().GetFormByID("f-1").Return(updated, nil)
		got, err := svc.UpdateForm(actor, "f-1", form.UpdateFormDTO{Data: []byte(quotePayload)})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Version)
	})

	t.Run("repository error", func(t *testing.T) {
		mockForm.EXPECT().GetFormByID("f-1").Return(ownedForm(1), nil)
		mockForm.EXPECT().UpdateDataIfUnsigned("f-1", gomock.Any()).Return(int64(0), errors.New("db down"))
		_, err := svc.UpdateForm(actor, "f-1", form.UpdateFormDTO{Data: []byte(quotePayload)})
		assert.EqualError(t, err, "db down")
	})
}

func TestFormService_CreateFormChecksOwnership(t *testing.T) {
	svc, _, mockProject := setupFormMocks(t)

	mockProject.EXPECT().GetProjectByID("p-1").Return(project.Project{ID: "p-1", UserID: 2}, nil)
	_, err := svc.CreateForm(types.Actor{UserID: 1}, "p-1", form.CreateFormDTO{Type: form.TypeQuote, Data: []byte(quotePayload)})
	assert.ErrorIs(t, err, ErrForbidden)

	mockProject.EXPECT().GetProjectByID("p-2").Return(project.Project{}, gorm.ErrRecordNotFound)
	_, err = svc.CreateForm(types.Actor{UserID: 1}, "p-2", form.CreateFormDTO{Type: form.TypeQuote, Data: []byte(quotePayload)})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestCreateFormAdvancesProjectStatus(t *testing.T) {
	tests := []struct {
		name string
		typ  form.Type
		data string
		want project.Status
	}{
		{"quote keeps draft", form.TypeQuote, quotePayload, project.StatusDraft},
		{"work approval", form.TypeWorkApproval, `{"site_name":"a","start_date":"2026-01-02","work_details":"b","contact_name":"c","contact_phone":"050-1234567","infrastructure_declaration":true}`, project.StatusApproved},
		{"completion", form.TypeCompletion, completionPayload, project.StatusCompleted},
		{"partial payment", form.TypePayment, `{"completion_id":"7b4a3f0e-7c43-4e68-9d1f-0a8c1b2d3e4f","amount_due":100,"amount_paid":50,"payment_method":"bit","paid_at":"2026-01-02","remaining_balance":50}`, project.StatusDraft},
		{"full payment", form.TypePayment, `{"completion_id":"7b4a3f0e-7c43-4e68-9d1f-0a8c1b2d3e4f","amount_due":100,"amount_paid":100,"payment_method":"bit","paid_at":"2026-01-02","remaining_balance":0}`, project.StatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.createForm(t, tt.typ, tt.data)
			p, err := env.repos.Project.GetProjectByID(env.project.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Status)
		})
	}
}

func TestListForms(t *testing.T) {
	env := newTestEnv(t)
	env.createForm(t, form.TypeQuote, quotePayload)
	env.createForm(t, form.TypeCompletion, completionPayload)

	forms, err := env.svc.Form.ListForms(env.owner.UserID, env.project.ID)
	require.NoError(t, err)
	assert.Len(t, forms, 2)

	_, err = env.svc.Form.ListForms(99, env.project.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestIntegrityDetectsTampering(t *testing.T) {
	env := newTestEnv(t)
	f := env.createForm(t, form.TypeQuote, quotePayload)
	token := env.mint(t, f.ID)
	require.NoError(t, env.svc.Signing.SubmitSignature(t.Context(), submission(token, "Dana", signatureDataURI(t))))

	report, err := env.svc.Form.VerifyIntegrity(env.owner.UserID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, form.IntegrityValid, report.Status)
	assert.Equal(t, report.StoredHash, report.ComputedHash)

	// Reordered keys are still the same document.
	reordered := `{"valid_until":"2026-12-31","total":234,"vat_amount":34,"vat_rate":0.17,"subtotal":200,
		"items":[{"total":200,"unit_price":100,"unit":"m2","quantity":2,"description":"Tiling","id":"1"}]}`
	require.NoError(t, env.db.Model(&form.Form{}).Where("id = ?", f.ID).Update("data", reordered).Error)
	report, err = env.svc.Form.VerifyIntegrity(env.owner.UserID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, form.IntegrityValid, report.Status)

	tampered := `{"valid_until":"2026-12-31","total":1,"vat_amount":34,"vat_rate":0.17,"subtotal":200,
		"items":[{"total":200,"unit_price":100,"unit":"m2","quantity":2,"description":"Tiling","id":"1"}]}`
	require.NoError(t, env.db.Model(&form.Form{}).Where("id = ?", f.ID).Update("data", tampered).Error)
	report, err = env.svc.Form.VerifyIntegrity(env.owner.UserID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, form.IntegrityTampered, report.Status)
	assert.NotEqual(t, report.StoredHash, report.ComputedHash)
}
