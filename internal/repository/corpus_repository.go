// Package repository persists the protocol corpus and query audit trail in
// Postgres through gorm.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
	"gorm.io/gorm"
)

const insertBatchSize = 100

// ProtocolRecord stores one protocol as a JSON document. Position preserves
// the authored load order, which ranked queries depend on.
type ProtocolRecord struct {
	ID       string          `gorm:"column:id;type:varchar(100);primaryKey"`
	Position int             `gorm:"column:position;not null;uniqueIndex"`
	Category domain.Category `gorm:"column:category;type:varchar(30);not null;index"`
	Priority domain.Priority `gorm:"column:priority;type:varchar(20);not null"`

	Payload protocol.Protocol `gorm:"column:payload;serializer:json;type:jsonb;not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProtocolRecord) TableName() string {
	return "kb.protocols"
}

type RedFlagRecord struct {
	ID       string          `gorm:"column:id;type:varchar(100);primaryKey"`
	Position int             `gorm:"column:position;not null;uniqueIndex"`
	Urgency  domain.Priority `gorm:"column:urgency;type:varchar(20);not null;index"`

	Payload redflag.RedFlag `gorm:"column:payload;serializer:json;type:jsonb;not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (RedFlagRecord) TableName() string {
	return "kb.red_flags"
}

type CorpusRepository struct {
	db *gorm.DB
}

func NewCorpusRepository(db *gorm.DB) *CorpusRepository {
	return &CorpusRepository{db: db}
}

// LoadCorpus returns every stored record in position order.
func (r *CorpusRepository) LoadCorpus(ctx context.Context) ([]protocol.Protocol, []redflag.RedFlag, error) {
	var protocols []ProtocolRecord
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&protocols).Error; err != nil {
		return nil, nil, fmt.Errorf("querying protocols: %w", err)
	}

	var flags []RedFlagRecord
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&flags).Error; err != nil {
		return nil, nil, fmt.Errorf("querying red flags: %w", err)
	}

	return fromProtocolRecords(protocols), fromRedFlagRecords(flags), nil
}

// ReplaceCorpus swaps the stored corpus in a single transaction. Callers are
// expected to have validated the records first.
func (r *CorpusRepository) ReplaceCorpus(ctx context.Context, protocols []protocol.Protocol, flags []redflag.RedFlag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&RedFlagRecord{}).Error; err != nil {
			return fmt.Errorf("clearing red flags: %w", err)
		}
		if err := all.Delete(&ProtocolRecord{}).Error; err != nil {
			return fmt.Errorf("clearing protocols: %w", err)
		}

		if recs := toProtocolRecords(protocols); len(recs) > 0 {
			if err := tx.CreateInBatches(recs, insertBatchSize).Error; err != nil {
				return fmt.Errorf("inserting protocols: %w", err)
			}
		}
		if recs := toRedFlagRecords(flags); len(recs) > 0 {
			if err := tx.CreateInBatches(recs, insertBatchSize).Error; err != nil {
				return fmt.Errorf("inserting red flags: %w", err)
			}
		}
		return nil
	})
}

func toProtocolRecords(protocols []protocol.Protocol) []ProtocolRecord {
	out := make([]ProtocolRecord, len(protocols))
	for i := range protocols {
		p := protocols[i].Clone()
		out[i] = ProtocolRecord{
			ID:       p.ID,
			Position: i,
			Category: p.Category,
			Priority: p.Priority,
			Payload:  p,
		}
	}
	return out
}

func fromProtocolRecords(recs []ProtocolRecord) []protocol.Protocol {
	out := make([]protocol.Protocol, len(recs))
	for i, rec := range recs {
		out[i] = rec.Payload
	}
	return out
}

func toRedFlagRecords(flags []redflag.RedFlag) []RedFlagRecord {
	out := make([]RedFlagRecord, len(flags))
	for i := range flags {
		f := flags[i].Clone()
		out[i] = RedFlagRecord{
			ID:       f.ID,
			Position: i,
			Urgency:  f.Urgency,
			Payload:  f,
		}
	}
	return out
}

func fromRedFlagRecords(recs []RedFlagRecord) []redflag.RedFlag {
	out := make([]redflag.RedFlag, len(recs))
	for i, rec := range recs {
		out[i] = rec.Payload
	}
	return out
}
