package repository

import (
	"time"

	"github.com/linskybing/projectsign/internal/domain/form"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormRepo persists forms. Every mutating method that must respect signature
// immutability is a single conditional statement and reports rows affected;
// zero means the guard did not hold.
type FormRepo interface {
	CreateForm(f *form.Form) error
	GetFormByID(id string) (form.Form, error)
	ListFormsByProject(projectID string) ([]form.Form, error)
	CountSignedByProject(projectID string) (int64, error)
	UpdateDataIfUnsigned(id string, data datatypes.JSON) (int64, error)
	DeleteIfUnsigned(id string) (int64, error)
	MarkSigned(id string, version int, sig form.Signature) (int64, error)
	MarkDispatched(id string, via form.Channel, at time.Time) (int64, error)
	DeleteUnsignedByProject(projectID string) (int64, error)
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{
		db: db,
	}
}

func (r *DBFormRepo) CreateForm(f *form.Form) error {
	return r.db.Omit("Project").Create(f).Error
}

func (r *DBFormRepo) GetFormByID(id string) (form.Form, error) {
	var f form.Form
	err := r.db.Preload("Project.Contact").Where("id = ?", id).First(&f).Error
	return f, err
}

func (r *DBFormRepo) ListFormsByProject(projectID string) ([]form.Form, error) {
	var forms []form.Form
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) CountSignedByProject(projectID string) (int64, error) {
	var n int64
	err := r.db.Model(&form.Form{}).
		Where("project_id = ? AND signed_at IS NOT NULL", projectID).
		Count(&n).Error
	return n, err
}

func (r *DBFormRepo) UpdateDataIfUnsigned(id string, data datatypes.JSON) (int64, error) {
	res := r.db.Model(&form.Form{}).
		Where("id = ? AND signed_at IS NULL", id).
		Updates(map[string]any{
			"data":       data,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *DBFormRepo) DeleteIfUnsigned(id string) (int64, error) {
	res := r.db.Where("id = ? AND signed_at IS NULL", id).Delete(&form.Form{})
	return res.RowsAffected, res.Error
}

// MarkSigned flips a form to signed only if it is still unsigned and still at
// the version the signer was shown.
func (r *DBFormRepo) MarkSigned(id string, version int, sig form.Signature) (int64, error) {
	res := r.db.Model(&form.Form{}).
		Where("id = ? AND signed_at IS NULL AND version = ?", id, version).
		Updates(map[string]any{
			"data":              sig.Data,
			"signature_url":     sig.URL,
			"signature_path":    sig.Path,
			"signature_hash":    sig.Hash,
			"signed_at":         sig.SignedAt,
			"signed_by":         sig.SignedBy,
			"signer_ip":         sig.IP,
			"signer_user_agent": sig.UserAgent,
			"updated_at":        sig.SignedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *DBFormRepo) MarkDispatched(id string, via form.Channel, at time.Time) (int64, error) {
	res := r.db.Model(&form.Form{}).
		Where("id = ? AND signed_at IS NULL", id).
		Updates(map[string]any{
			"sent_at":  at,
			"sent_via": via,
		})
	return res.RowsAffected, res.Error
}

// DeleteUnsignedByProject never removes a signed row, even one signed after
// the caller last looked.
func (r *DBFormRepo) DeleteUnsignedByProject(projectID string) (int64, error) {
	res := r.db.Where("project_id = ? AND signed_at IS NULL", projectID).Delete(&form.Form{})
	return res.RowsAffected, res.Error
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{
		db: tx,
	}
}
