package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/corpus"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/triage"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/knowledgebase"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap/zaptest"
)

type memoryAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.QueryLog
}

func (r *memoryAuditRepo) Create(_ context.Context, entry *domain.QueryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryAuditRepo) all() []*domain.QueryLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.QueryLog(nil), r.entries...)
}

type fixedSource struct {
	c   *corpus.Corpus
	err error
}

func (fixedSource) Name() string { return "fixed" }

func (f fixedSource) Load(context.Context) (*corpus.Corpus, error) { return f.c, f.err }

type fixture struct {
	knowledge *KnowledgeService
	triage    *TriageService
	audit     *AuditService
	repo      *memoryAuditRepo
	source    *fixedSource
}

// flush drains the audit worker so recorded entries can be inspected.
func (f *fixture) flush() { f.audit.Shutdown(time.Second) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)

	c, err := corpus.Builtin().Load(context.Background())
	if err != nil {
		t.Fatalf("loading builtin corpus: %v", err)
	}
	store, err := knowledgebase.New(c.Protocols, c.RedFlags, log)
	if err != nil {
		t.Fatalf("knowledgebase.New: %v", err)
	}

	m := metrics.NewCollector(prometheus.NewRegistry())
	repo := &memoryAuditRepo{}
	audit := NewAuditService(repo, 100, time.Second, m, log)
	src := &fixedSource{c: c}

	f := &fixture{
		knowledge: NewKnowledgeService(store, src, audit, m, log),
		triage:    NewTriageService(triage.NewClassifier(triage.DefaultConfig()), audit, m, log),
		audit:     audit,
		repo:      repo,
		source:    src,
	}
	t.Cleanup(f.flush)
	return f
}

var caller = Caller{RequestID: "req-1", IPAddress: "10.0.0.1"}

func TestGetProtocol(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.knowledge.GetProtocol(ctx, "cardiac-arrest-adult", caller)
	if err != nil {
		t.Fatalf("GetProtocol: %v", err)
	}
	if p.Priority != domain.PriorityImmediate {
		t.Errorf("unexpected priority %s", p.Priority)
	}

	if _, err := f.knowledge.GetProtocol(ctx, "nonexistent", caller); !errors.Is(err, protocol.ErrProtocolNotFound) {
		t.Errorf("expected ErrProtocolNotFound, got %v", err)
	}

	f.flush()
	entries := f.repo.all()
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if e := entries[0]; e.Action != domain.ActionLookup || e.TopResult != "cardiac-arrest-adult" || e.RequestID != "req-1" {
		t.Errorf("unexpected audit entry %+v", e)
	}
	if entries[1].ResultCount != 0 {
		t.Errorf("expected not-found lookup to record zero results, got %d", entries[1].ResultCount)
	}
}

func TestListProtocols(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all, err := f.knowledge.ListProtocols(ctx, "", caller)
	if err != nil || len(all) != f.knowledge.Stats().Protocols {
		t.Fatalf("expected every protocol, got %d (%v)", len(all), err)
	}

	env, err := f.knowledge.ListProtocols(ctx, "environmental", caller)
	if err != nil {
		t.Fatalf("ListProtocols: %v", err)
	}
	for _, p := range env {
		if p.Category != domain.CategoryEnvironmental {
			t.Errorf("unexpected category %s for %s", p.Category, p.ID)
		}
	}

	for _, category := range []string{"cardiac", "pediatric", "TRAUMA"} {
		got, err := f.knowledge.ListProtocols(ctx, category, caller)
		if err != nil {
			t.Errorf("%s: unexpected error %v", category, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("%s: expected empty non-nil list, got %v", category, got)
		}
	}
}

func TestSearchOrdersByPriority(t *testing.T) {
	f := newFixture(t)

	got := f.knowledge.Search(context.Background(), "choking", caller)
	if len(got) < 2 {
		t.Fatalf("expected both choking protocols, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Priority.Rank() > got[i].Priority.Rank() {
			t.Errorf("rank decreases at %d", i)
		}
	}

	if blank := f.knowledge.Search(context.Background(), "  ", caller); len(blank) != 0 {
		t.Errorf("expected empty result for blank query, got %d", len(blank))
	}
}

func TestCheckSymptoms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.knowledge.CheckSymptoms(ctx, []string{"severe chest pain", "mild rash on arm"}, caller)
	if err != nil {
		t.Fatalf("CheckSymptoms: %v", err)
	}
	if len(got) != 2 || got[0].ID != "rf-chest-pain" || got[1].ID != "rf-mild-rash" {
		t.Errorf("unexpected matches %+v", got)
	}

	for _, symptoms := range [][]string{nil, {}, {" ", ""}} {
		none, err := f.knowledge.CheckSymptoms(ctx, symptoms, caller)
		if err != nil {
			t.Errorf("%q: unexpected error %v", symptoms, err)
		}
		if none == nil || len(none) != 0 {
			t.Errorf("%q: expected empty non-nil list, got %v", symptoms, none)
		}
	}

	var ve *ValidationError
	if _, err := f.knowledge.CheckSymptoms(ctx, make([]string, MaxSymptoms+1), caller); !errors.As(err, &ve) {
		t.Errorf("expected *ValidationError, got %v", err)
	}

	f.flush()
	var check *domain.QueryLog
	for _, e := range f.repo.all() {
		if e.Action == domain.ActionSymptomCheck && check == nil {
			check = e
		}
	}
	if check == nil || check.Severity != string(domain.PriorityImmediate) {
		t.Errorf("expected symptom check audit with IMMEDIATE severity, got %+v", check)
	}
}

func TestReload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := f.knowledge.Stats()

	f.source.err = errors.New("source unavailable")
	if err := f.knowledge.Reload(ctx); err == nil {
		t.Fatal("expected reload error")
	}

	f.source.err = nil
	f.source.c = &corpus.Corpus{Protocols: []protocol.Protocol{{
		ID: "x", Name: "", Category: domain.CategoryMedical, Priority: domain.PriorityPrompt, AgeGroup: domain.AgeGroupAll,
	}}}
	err := f.knowledge.Reload(ctx)
	if !errors.Is(err, knowledgebase.ErrInvalidCorpus) {
		t.Fatalf("expected ErrInvalidCorpus, got %v", err)
	}
	if got := f.knowledge.Stats(); got.Protocols != before.Protocols || got.RedFlags != before.RedFlags {
		t.Errorf("failed reload changed the corpus: %+v", got)
	}

	f.source.c = &corpus.Corpus{Protocols: []protocol.Protocol{{
		ID: "x", Name: "X", Category: domain.CategoryMedical, Priority: domain.PriorityPrompt, AgeGroup: domain.AgeGroupAll,
	}}}
	if err := f.knowledge.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := f.knowledge.Stats(); got.Protocols != 1 || got.RedFlags != 0 {
		t.Errorf("unexpected stats after reload %+v", got)
	}
}

func TestTriageClassify(t *testing.T) {
	f := newFixture(t)

	a := triage.Assessment{
		Ambulatory: true,
		Survey: triage.PrimarySurvey{
			Airway:      triage.Airway{Status: triage.AirwayClear},
			Breathing:   triage.Breathing{Present: true, Rate: 18},
			Circulation: triage.Circulation{PulsePresent: true, Bleeding: triage.BleedingNone},
			Disability:  triage.Disability{Conscious: true, Response: triage.ResponseAlert, FollowsCommands: true},
		},
	}

	res, err := f.triage.Classify(context.Background(), a, caller)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Category != triage.CategoryMinor {
		t.Errorf("expected MINOR, got %s", res.Category)
	}
	if res.SurveyID == uuid.Nil {
		t.Error("expected survey to be stamped with an id")
	}

	a.Survey.Breathing.Rate = -1
	a.Survey.Airway.Status = "blocked"
	_, err = f.triage.Classify(context.Background(), a, caller)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Errorf("expected one field per problem, got %v", ve.Fields)
	}
}

type blockingAuditRepo struct {
	started chan struct{}
	release chan struct{}
	memoryAuditRepo
}

func (r *blockingAuditRepo) Create(ctx context.Context, entry *domain.QueryLog) error {
	select {
	case r.started <- struct{}{}:
	default:
	}
	<-r.release
	return r.memoryAuditRepo.Create(ctx, entry)
}

func TestAuditDropsWhenBufferFull(t *testing.T) {
	repo := &blockingAuditRepo{started: make(chan struct{}, 1), release: make(chan struct{})}
	svc := NewAuditService(repo, 1, time.Second, metrics.NewCollector(prometheus.NewRegistry()), zaptest.NewLogger(t))

	svc.LogAsync(context.Background(), AuditEntry{Action: domain.ActionSearch, Query: "first"})
	<-repo.started
	svc.LogAsync(context.Background(), AuditEntry{Action: domain.ActionSearch, Query: "buffered"})
	svc.LogAsync(context.Background(), AuditEntry{Action: domain.ActionSearch, Query: "dropped"})

	close(repo.release)
	svc.Shutdown(time.Second)
	svc.LogAsync(context.Background(), AuditEntry{Action: domain.ActionSearch, Query: "after shutdown"})

	entries := repo.all()
	if len(entries) != 2 || entries[0].Query != "first" || entries[1].Query != "buffered" {
		t.Errorf("unexpected persisted entries %+v", entries)
	}
}
