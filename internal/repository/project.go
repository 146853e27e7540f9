package repository

import (
	"github.com/linskybing/projectsign/internal/domain/project"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo interface {
	GetProjectByID(id string) (project.Project, error)
	ListProjectsByUser(userID uint, status *project.Status) ([]project.Project, error)
	CreateProject(p *project.Project) error
	UpdateProject(p *project.Project) error
	UpsertContact(c *project.Contact) error
	SetStatus(id string, status project.Status) error
	CompareAndSetStatus(id string, from, to project.Status) (int64, error)
	DeleteProject(id string) error
	WithTx(tx *gorm.DB) ProjectRepo
}

type DBProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *DBProjectRepo {
	return &DBProjectRepo{
		db: db,
	}
}

func (r *DBProjectRepo) GetProjectByID(id string) (project.Project, error) {
	var p project.Project
	err := r.db.Preload("Contact").Where("id = ?", id).First(&p).Error
	return p, err
}

func (r *DBProjectRepo) ListProjectsByUser(userID uint, status *project.Status) ([]project.Project, error) {
	var projects []project.Project
	query := r.db.Preload("Contact").Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("updated_at DESC").Find(&projects).Error
	return projects, err
}

func (r *DBProjectRepo) CreateProject(p *project.Project) error {
	return r.db.Create(p).Error
}

func (r *DBProjectRepo) UpdateProject(p *project.Project) error {
	return r.db.Model(p).Select("name", "description", "updated_at").Updates(p).Error
}

func (r *DBProjectRepo) UpsertContact(c *project.Contact) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "email", "address", "city", "notes", "updated_at"}),
	}).Create(c).Error
}

func (r *DBProjectRepo) SetStatus(id string, status project.Status) error {
	return r.db.Model(&project.Project{}).Where("id = ?", id).Update("status", status).Error
}

func (r *DBProjectRepo) CompareAndSetStatus(id string, from, to project.Status) (int64, error) {
	res := r.db.Model(&project.Project{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *DBProjectRepo) DeleteProject(id string) error {
	if err := r.db.Where("project_id = ?", id).Delete(&project.Contact{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&project.Project{}).Error
}

func (r *DBProjectRepo) WithTx(tx *gorm.DB) ProjectRepo {
	if tx == nil {
		return r
	}
	return &DBProjectRepo{
		db: tx,
	}
}
