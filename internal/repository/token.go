package repository

import (
	"time"

	"github.com/linskybing/projectsign/internal/domain/signing"
	"gorm.io/gorm"
)

// TokenRepo persists signing tokens. Reserve and Consume are compare-and-set
// updates; their row counts decide which concurrent caller wins.
type TokenRepo interface {
	CreateToken(t *signing.Token) error
	GetTokenByHash(hash string) (signing.Token, error)
	Reserve(hash, reservationID string, now, until time.Time) (int64, error)
	Release(id, reservationID string) error
	Consume(id string, c signing.Consumption) (int64, error)
	DeleteUnusedByForm(formID, exceptID string) (int64, error)
	DeleteByForm(formID string) error
	DeleteStale(before time.Time) (int64, error)
	WithTx(tx *gorm.DB) TokenRepo
}

type DBTokenRepo struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) *DBTokenRepo {
	return &DBTokenRepo{
		db: db,
	}
}

func (r *DBTokenRepo) CreateToken(t *signing.Token) error {
	return r.db.Omit("Form").Create(t).Error
}

func (r *DBTokenRepo) GetTokenByHash(hash string) (signing.Token, error) {
	var t signing.Token
	err := r.db.Preload("Form.Project.Contact").Where("token_hash = ?", hash).First(&t).Error
	return t, err
}

// Reserve claims a usable token for one signing attempt until the lease ends.
// An expired lease can be taken over.
func (r *DBTokenRepo) Reserve(hash, reservationID string, now, until time.Time) (int64, error) {
	res := r.db.Model(&signing.Token{}).
		Where("token_hash = ? AND used = ? AND expires_at > ?", hash, false, now).
		Where("(reserved_until IS NULL OR reserved_until <= ?)", now).
		Updates(map[string]any{
			"reserved_until": until,
			"reservation_id": reservationID,
		})
	return res.RowsAffected, res.Error
}

func (r *DBTokenRepo) Release(id, reservationID string) error {
	return r.db.Model(&signing.Token{}).
		Where("id = ? AND reservation_id = ? AND used = ?", id, reservationID, false).
		Updates(map[string]any{
			"reserved_until": nil,
			"reservation_id": nil,
		}).Error
}

// Consume marks the token used if it is unused, unexpired at c.At and still
// held by c.ReservationID.
func (r *DBTokenRepo) Consume(id string, c signing.Consumption) (int64, error) {
	res := r.db.Model(&signing.Token{}).
		Where("id = ? AND used = ? AND expires_at > ? AND reservation_id = ?", id, false, c.At, c.ReservationID).
		Updates(map[string]any{
			"used":            true,
			"used_at":         c.At,
			"used_ip":         c.IP,
			"used_user_agent": c.UserAgent,
			"reserved_until":  nil,
		})
	return res.RowsAffected, res.Error
}

func (r *DBTokenRepo) DeleteUnusedByForm(formID, exceptID string) (int64, error) {
	res := r.db.Where("form_id = ? AND id <> ? AND used = ?", formID, exceptID, false).
		Delete(&signing.Token{})
	return res.RowsAffected, res.Error
}

func (r *DBTokenRepo) DeleteByForm(formID string) error {
	return r.db.Where("form_id = ?", formID).Delete(&signing.Token{}).Error
}

func (r *DBTokenRepo) DeleteStale(before time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", before).Delete(&signing.Token{})
	return res.RowsAffected, res.Error
}

func (r *DBTokenRepo) WithTx(tx *gorm.DB) TokenRepo {
	if tx == nil {
		return r
	}
	return &DBTokenRepo{
		db: tx,
	}
}
