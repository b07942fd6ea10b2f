package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/corpus"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/knowledgebase"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MaxSymptoms bounds one symptom-check request.
const MaxSymptoms = 50

type KnowledgeService struct {
	store    *knowledgebase.Store
	source   corpus.Source
	auditSvc *AuditService
	metrics  *metrics.Collector
	tracer   trace.Tracer
	log      *zap.Logger

	reloadMu sync.Mutex
}

func NewKnowledgeService(store *knowledgebase.Store, source corpus.Source, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *KnowledgeService {
	s := &KnowledgeService{
		store:    store,
		source:   source,
		auditSvc: auditSvc,
		metrics:  m,
		tracer:   otel.Tracer("emergencykb/service"),
		log:      log,
	}
	s.recordCorpusSize()
	return s
}

// GetProtocol returns protocol.ErrProtocolNotFound for an unknown id.
func (s *KnowledgeService) GetProtocol(ctx context.Context, id string, caller Caller) (protocol.Protocol, error) {
	_, span := s.tracer.Start(ctx, "KnowledgeService.GetProtocol", trace.WithAttributes(attribute.String("protocol.id", id)))
	defer span.End()

	p, ok := s.store.Protocol(id)

	entry := AuditEntry{Caller: caller, Action: domain.ActionLookup, Query: id}
	if ok {
		entry.ResultCount, entry.TopResult, entry.Severity = 1, p.ID, string(p.Priority)
	}
	s.record(ctx, entry)
	span.SetAttributes(attribute.Bool("protocol.found", ok))

	if !ok {
		return protocol.Protocol{}, protocol.ErrProtocolNotFound
	}
	return p, nil
}

// ListProtocols returns every protocol when category is empty, otherwise the
// protocols of that category. An unknown category matches nothing.
func (s *KnowledgeService) ListProtocols(ctx context.Context, category string, caller Caller) ([]protocol.Protocol, error) {
	_, span := s.tracer.Start(ctx, "KnowledgeService.ListProtocols", trace.WithAttributes(attribute.String("protocol.category", category)))
	defer span.End()

	if category == "" {
		out := s.store.Protocols()
		s.record(ctx, protocolEntry(caller, domain.ActionCategory, "", out))
		return out, nil
	}

	out := []protocol.Protocol{}
	if c, err := domain.ParseCategory(category); err == nil {
		out = s.store.ByCategory(c)
	} else {
		s.log.Warn("protocols requested for unknown category",
			zap.String("category", category),
			zap.String("known", joinCategories()),
		)
	}

	s.record(ctx, protocolEntry(caller, domain.ActionCategory, category, out))
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out, nil
}

// Search returns protocols matching q ordered by priority rank. A blank
// query returns an empty list.
func (s *KnowledgeService) Search(ctx context.Context, q string, caller Caller) []protocol.Protocol {
	_, span := s.tracer.Start(ctx, "KnowledgeService.Search")
	defer span.End()

	out := s.store.Search(q)
	s.record(ctx, protocolEntry(caller, domain.ActionSearch, q, out))
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out
}

// CheckSymptoms returns the red flags hit by any reported symptom, most
// urgent first. No symptoms means no matches.
func (s *KnowledgeService) CheckSymptoms(ctx context.Context, symptoms []string, caller Caller) ([]redflag.Match, error) {
	_, span := s.tracer.Start(ctx, "KnowledgeService.CheckSymptoms", trace.WithAttributes(attribute.Int("symptoms.count", len(symptoms))))
	defer span.End()

	if len(symptoms) > MaxSymptoms {
		return nil, &ValidationError{Fields: []string{fmt.Sprintf("at most %d symptoms per request", MaxSymptoms)}}
	}

	out := s.store.CheckRedFlags(symptoms)
	for _, m := range out {
		s.metrics.RedFlagMatches.WithLabelValues(string(m.Urgency)).Inc()
	}

	entry := AuditEntry{Caller: caller, Action: domain.ActionSymptomCheck, Query: strings.Join(symptoms, "; "), ResultCount: len(out)}
	if len(out) > 0 {
		entry.TopResult, entry.Severity = out[0].ID, string(out[0].Urgency)
	}
	s.record(ctx, entry)
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out, nil
}

func (s *KnowledgeService) RedFlags() []redflag.RedFlag {
	return s.store.RedFlags()
}

func (s *KnowledgeService) Stats() knowledgebase.Stats {
	return s.store.Stats()
}

// Reload reads the configured source again and swaps the corpus in. The
// active corpus is kept when the source fails or the new data is invalid.
func (s *KnowledgeService) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ctx, span := s.tracer.Start(ctx, "KnowledgeService.Reload", trace.WithAttributes(attribute.String("corpus.source", s.source.Name())))
	defer span.End()

	c, err := s.source.Load(ctx)
	if err == nil {
		err = s.store.Reload(c.Protocols, c.RedFlags)
	}
	if err != nil {
		s.metrics.CorpusReloads.WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "reload failed")
		s.log.Error("corpus reload failed, keeping active corpus",
			zap.String("source", s.source.Name()),
			zap.Error(err),
		)
		return fmt.Errorf("reloading corpus from %s: %w", s.source.Name(), err)
	}

	s.metrics.CorpusReloads.WithLabelValues("ok").Inc()
	s.recordCorpusSize()
	return nil
}

func (s *KnowledgeService) recordCorpusSize() {
	st := s.store.Stats()
	s.metrics.CorpusProtocols.Set(float64(st.Protocols))
	s.metrics.CorpusRedFlags.Set(float64(st.RedFlags))
}

func (s *KnowledgeService) record(ctx context.Context, entry AuditEntry) {
	s.metrics.QueriesTotal.WithLabelValues(string(entry.Action)).Inc()
	s.metrics.QueryResults.WithLabelValues(string(entry.Action)).Observe(float64(entry.ResultCount))
	s.auditSvc.LogAsync(ctx, entry)
}

func protocolEntry(caller Caller, action domain.QueryAction, q string, out []protocol.Protocol) AuditEntry {
	entry := AuditEntry{Caller: caller, Action: action, Query: q, ResultCount: len(out)}
	if len(out) > 0 {
		entry.TopResult, entry.Severity = out[0].ID, string(out[0].Priority)
	}
	return entry
}

func joinCategories() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
