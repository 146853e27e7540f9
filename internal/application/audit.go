package application

import (
	"time"

	"github.com/linskybing/projectsign/internal/domain/audit"
	"github.com/linskybing/projectsign/internal/repository"
)

type AuditService struct {
	Repos *repository.Repos
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{
		Repos: repos,
	}
}

func (s *AuditService) QueryAuditLogs(params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	return s.Repos.Audit.GetAuditLogs(params)
}

func (s *AuditService) CleanupOldLogs(days int) error {
	return s.Repos.Audit.DeleteOldAuditLogs(days)
}

// CleanupStaleTokens deletes tokens that expired more than days ago.
func (s *AuditService) CleanupStaleTokens(days int) (int64, error) {
	return s.Repos.Token.DeleteStale(time.Now().UTC().AddDate(0, 0, -days))
}
