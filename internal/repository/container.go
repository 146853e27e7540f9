package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repos struct {
	Project ProjectRepo
	Form    FormRepo
	Token   TokenRepo
	User    UserRepo
	Audit   AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Project: NewProjectRepo(db),
		Form:    NewFormRepo(db),
		Token:   NewTokenRepo(db),
		User:    NewUserRepo(db),
		Audit:   NewAuditRepo(db),
		db:      db,
	}
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Project: r.Project.WithTx(tx),
		Form:    r.Form.WithTx(tx),
		Token:   r.Token.WithTx(tx),
		User:    r.User.WithTx(tx),
		Audit:   r.Audit.WithTx(tx),
		db:      tx,
	}
}

// ExecTx runs fn against repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Ping checks database connectivity.
func (r *Repos) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
