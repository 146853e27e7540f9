package utils

import (
	"encoding/json"

	"github.com/linskybing/projectsign/internal/domain/audit"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/types"
	"go.uber.org/zap"
)

// AuditEntry describes one audited change before it is persisted.
type AuditEntry struct {
	Actor        types.Actor
	Action       string
	ResourceType string
	ResourceID   string
	Before       any
	After        any
	Description  string
}

// LogAuditWithConsole persists the entry in the background and logs failures.
var LogAuditWithConsole = func(repos repository.AuditRepo, entry AuditEntry) {
	go func() {
		if err := LogAudit(repos, entry); err != nil {
			zap.L().Warn("audit log write failed",
				zap.String("action", entry.Action),
				zap.String("resource_type", entry.ResourceType),
				zap.String("resource_id", entry.ResourceID),
				zap.Error(err))
		}
	}()
}

var LogAudit = func(repos repository.AuditRepo, entry AuditEntry) error {
	auditLog := &audit.AuditLog{
		UserID:       entry.Actor.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		OldData:      marshalAuditData(entry.Before),
		NewData:      marshalAuditData(entry.After),
		IPAddress:    entry.Actor.IP,
		UserAgent:    entry.Actor.UserAgent,
		Description:  entry.Description,
	}
	return repos.CreateAuditLog(auditLog)
}

func marshalAuditData(v any) []byte {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		zap.L().Warn("audit marshal failed", zap.Error(err))
		return nil
	}
	return b
}
