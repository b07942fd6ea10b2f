package service

import (
	"context"
	"sync"
	"time"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/metrics"
	"go.uber.org/zap"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.QueryLog) error
}

// AuditService persists query logs off the request path. Entries are
// buffered; when the buffer is full they are dropped, never blocking a query.
type AuditService struct {
	repo         AuditRepository
	metrics      *metrics.Collector
	log          *zap.Logger
	writeTimeout time.Duration

	mu      sync.RWMutex
	closed  bool
	entries chan *domain.QueryLog
	done    chan struct{}
}

func NewAuditService(repo AuditRepository, bufferSize int, writeTimeout time.Duration, m *metrics.Collector, log *zap.Logger) *AuditService {
	svc := &AuditService{
		repo:         repo,
		metrics:      m,
		log:          log,
		writeTimeout: writeTimeout,
		entries:      make(chan *domain.QueryLog, bufferSize),
		done:         make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAsync enqueues an audit entry for async persistence.
// If the buffer is full, the entry is dropped and a warning is emitted.
func (s *AuditService) LogAsync(_ context.Context, entry AuditEntry) {
	ql := &domain.QueryLog{
		Action:      entry.Action,
		Query:       entry.Query,
		RequestID:   entry.RequestID,
		IPAddress:   entry.IPAddress,
		ResultCount: entry.ResultCount,
		TopResult:   entry.TopResult,
		Severity:    entry.Severity,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.entries <- ql:
	default:
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit log buffer full, dropping entry",
			zap.String("action", string(entry.Action)),
			zap.String("request_id", entry.RequestID),
		)
	}
}

// Shutdown stops accepting entries and waits for the buffer to drain.
func (s *AuditService) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.entries)
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-time.After(timeout):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit log", zap.Error(err))
		} else {
			s.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
