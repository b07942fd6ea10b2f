package repository

import (
	"context"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.QueryLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("inserting query log: %w", err)
	}
	return nil
}

// LogAuditRepository writes query logs to the application log. It is used
// when no database is configured.
type LogAuditRepository struct {
	log *zap.Logger
}

func NewLogAuditRepository(log *zap.Logger) *LogAuditRepository {
	return &LogAuditRepository{log: log.Named("audit")}
}

func (r *LogAuditRepository) Create(_ context.Context, entry *domain.QueryLog) error {
	r.log.Info("query",
		zap.String("action", string(entry.Action)),
		zap.String("query", entry.Query),
		zap.String("request_id", entry.RequestID),
		zap.Int("result_count", entry.ResultCount),
		zap.String("top_result", entry.TopResult),
		zap.String("severity", entry.Severity),
	)
	return nil
}
