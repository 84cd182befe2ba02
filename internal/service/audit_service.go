package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"socialdesk/internal/models"
	"socialdesk/internal/repository"
	"socialdesk/internal/transfer"
)

type AuditService interface {
	// Record enqueues an audit entry. It never blocks and never fails
	// the caller; a full queue or a failed write is logged and counted.
	Record(entry transfer.AuditEntry)
	Logs(ctx context.Context, limit int) ([]*models.AuditLog, error)
	// Close flushes pending entries and stops the writer.
	Close()
}

type auditService struct {
	ar      repository.AuditLogRepository
	entries chan transfer.AuditEntry
	done    chan struct{}
	dropped atomic.Int64
	once    sync.Once

	// mu orders Record sends against Close; sending on the closed
	// entries channel would panic.
	mu      sync.RWMutex
	closing bool
}

func NewAuditService(ar repository.AuditLogRepository, queueSize int) AuditService {
	if queueSize <= 0 {
		queueSize = 1024
	}
	s := &auditService{
		ar:      ar,
		entries: make(chan transfer.AuditEntry, queueSize),
		done:    make(chan struct{}),
	}
	go s.writer()
	return s
}

func (s *auditService) Record(entry transfer.AuditEntry) {
	entry.Details = redact(entry.Details)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closing {
		s.dropped.Add(1)
		slog.Warn("audit recorder closed, entry dropped", "action", entry.Action, "dropped_total", s.dropped.Load())
		return
	}

	select {
	case s.entries <- entry:
	default:
		s.dropped.Add(1)
		slog.Warn("audit queue full, entry dropped", "action", entry.Action, "dropped_total", s.dropped.Load())
	}
}

func (s *auditService) writer() {
	defer close(s.done)

	for entry := range s.entries {
		row := toAuditLog(entry)
		if _, err := s.ar.Create(context.Background(), row); err != nil {
			slog.Error("audit write failed", "action", entry.Action, "error", err)
		}
	}
}

func (s *auditService) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closing = true
		s.mu.Unlock()
		close(s.entries)
	})
	<-s.done
}

func (s *auditService) Logs(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	return s.ar.List(ctx, limit)
}

func toAuditLog(entry transfer.AuditEntry) *models.AuditLog {
	row := &models.AuditLog{
		Action:    entry.Action,
		IPAddress: entry.IPAddress,
		Resource:  entry.Resource,
	}

	if entry.UserID != 0 {
		userID := entry.UserID
		row.UserID = &userID
	}

	details, err := json.Marshal(entry.Details)
	if err != nil || entry.Details == nil {
		details = []byte("{}")
	}
	row.Details = details

	return row
}

var sensitiveFields = []string{"password", "token", "secret", "key"}

func redact(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}

	filtered := make(map[string]any, len(details))
	for key, value := range details {
		if isSensitive(key) {
			filtered[key] = "[REDACTED]"
			continue
		}
		filtered[key] = value
	}
	return filtered
}

func isSensitive(field string) bool {
	lower := strings.ToLower(field)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
