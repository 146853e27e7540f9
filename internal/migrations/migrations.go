package migrations

import (
	"github.com/linskybing/projectsign/internal/domain/audit"
	"github.com/linskybing/projectsign/internal/domain/form"
	"github.com/linskybing/projectsign/internal/domain/project"
	"github.com/linskybing/projectsign/internal/domain/signing"
	"github.com/linskybing/projectsign/internal/domain/user"
	"gorm.io/gorm"
)

// Run creates or updates the schema for every persisted model.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&project.Project{},
		&project.Contact{},
		&form.Form{},
		&signing.Token{},
		&audit.AuditLog{},
	)
}
