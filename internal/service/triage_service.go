package service

import (
	"context"
	"time"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/triage"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type TriageService struct {
	classifier *triage.Classifier
	auditSvc   *AuditService
	metrics    *metrics.Collector
	tracer     trace.Tracer
	log        *zap.Logger
	now        func() time.Time
}

func NewTriageService(classifier *triage.Classifier, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *TriageService {
	return &TriageService{
		classifier: classifier,
		auditSvc:   auditSvc,
		metrics:    m,
		tracer:     otel.Tracer("emergencykb/service"),
		log:        log,
		now:        time.Now,
	}
}

// Classify stamps the survey and assigns a triage category. Malformed
// assessments are returned as a *ValidationError listing every problem.
func (s *TriageService) Classify(ctx context.Context, a triage.Assessment, caller Caller) (triage.Result, error) {
	_, span := s.tracer.Start(ctx, "TriageService.Classify")
	defer span.End()

	a.Survey = a.Survey.Stamped(s.now().UTC())

	res, err := s.classifier.Classify(&a)
	if err != nil {
		return triage.Result{}, validationFromJoined(err)
	}

	s.metrics.TriageCategories.WithLabelValues(string(res.Category), string(res.Algorithm)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:      caller,
		Action:      domain.ActionTriage,
		Query:       string(res.Algorithm),
		ResultCount: 1,
		TopResult:   res.SurveyID.String(),
		Severity:    string(res.Category),
	})

	span.SetAttributes(
		attribute.String("triage.category", string(res.Category)),
		attribute.String("triage.algorithm", string(res.Algorithm)),
	)
	s.log.Debug("triage classified",
		zap.String("survey_id", res.SurveyID.String()),
		zap.String("category", string(res.Category)),
		zap.String("request_id", caller.RequestID),
	)
	return res, nil
}
