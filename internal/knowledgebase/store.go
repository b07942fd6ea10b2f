// Package knowledgebase holds the loaded emergency protocols and red flags
// and answers lookup, category, search and symptom queries over them.
//
// The store keeps one immutable snapshot behind an atomic pointer. Reload
// builds and validates a complete replacement before swapping it in, so a
// query sees either the old corpus or the new one, never a mix.
package knowledgebase

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
	"go.uber.org/zap"
)

type snapshot struct {
	// protocols is in load order; every other view points into it.
	protocols  []*protocol.Protocol
	byID       map[string]*protocol.Protocol
	byCategory map[domain.Category][]*protocol.Protocol
	text       []searchText

	redFlags []*redflag.RedFlag
	symptoms []string // lower-cased, parallel to redFlags

	loadedAt time.Time
}

// searchText is the lower-cased searchable text of one protocol.
type searchText struct {
	name  string
	signs []string
}

type Stats struct {
	Protocols int       `json:"protocols"`
	RedFlags  int       `json:"redFlags"`
	LoadedAt  time.Time `json:"loadedAt"`
}

type Store struct {
	current atomic.Pointer[snapshot]
	log     *zap.Logger
}

// New validates and indexes the corpus. Records are copied, so the caller
// keeps ownership of its slices.
func New(protocols []protocol.Protocol, redFlags []redflag.RedFlag, log *zap.Logger) (*Store, error) {
	s := &Store{log: log}
	if err := s.Reload(protocols, redFlags); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the whole corpus. On error the current corpus stays active.
func (s *Store) Reload(protocols []protocol.Protocol, redFlags []redflag.RedFlag) error {
	snap, err := build(protocols, redFlags)
	if err != nil {
		return err
	}
	s.current.Store(snap)

	s.log.Info("knowledge base loaded",
		zap.Int("protocols", len(snap.protocols)),
		zap.Int("red_flags", len(snap.redFlags)),
	)
	return nil
}

func (s *Store) Stats() Stats {
	snap := s.current.Load()
	return Stats{
		Protocols: len(snap.protocols),
		RedFlags:  len(snap.redFlags),
		LoadedAt:  snap.loadedAt,
	}
}

// Protocol looks up by exact id. A missing id is reported by ok=false.
func (s *Store) Protocol(id string) (protocol.Protocol, bool) {
	rec, ok := s.current.Load().byID[id]
	if !ok {
		return protocol.Protocol{}, false
	}
	return rec.Clone(), true
}

// ByCategory returns the protocols of one category in load order.
func (s *Store) ByCategory(c domain.Category) []protocol.Protocol {
	return cloneAll(s.current.Load().byCategory[c])
}

// Protocols returns every protocol in load order.
func (s *Store) Protocols() []protocol.Protocol {
	return cloneAll(s.current.Load().protocols)
}

func (s *Store) RedFlags() []redflag.RedFlag {
	flags := s.current.Load().redFlags
	out := make([]redflag.RedFlag, len(flags))
	for i, f := range flags {
		out[i] = f.Clone()
	}
	return out
}

func cloneAll(recs []*protocol.Protocol) []protocol.Protocol {
	out := make([]protocol.Protocol, len(recs))
	for i, p := range recs {
		out[i] = p.Clone()
	}
	return out
}

func build(protocols []protocol.Protocol, redFlags []redflag.RedFlag) (*snapshot, error) {
	snap := &snapshot{
		protocols:  make([]*protocol.Protocol, 0, len(protocols)),
		byID:       make(map[string]*protocol.Protocol, len(protocols)),
		byCategory: make(map[domain.Category][]*protocol.Protocol),
		text:       make([]searchText, 0, len(protocols)),
		redFlags:   make([]*redflag.RedFlag, 0, len(redFlags)),
		symptoms:   make([]string, 0, len(redFlags)),
		loadedAt:   time.Now(),
	}

	var rejected []*RecordError

	for i := range protocols {
		rec := protocols[i].Clone()
		errs := rec.Validate()
		if _, dup := snap.byID[rec.ID]; dup && rec.ID != "" {
			errs = append(errs, fmt.Errorf("%w %q", ErrDuplicateID, rec.ID))
		}
		if len(errs) > 0 {
			rejected = append(rejected, &RecordError{Kind: "protocol", Index: i, ID: rec.ID, Errs: errs})
			continue
		}

		snap.protocols = append(snap.protocols, &rec)
		snap.byID[rec.ID] = &rec
		snap.byCategory[rec.Category] = append(snap.byCategory[rec.Category], &rec)
		snap.text = append(snap.text, newSearchText(&rec))
	}

	seenFlags := make(map[string]struct{}, len(redFlags))
	for i := range redFlags {
		rf := redFlags[i].Clone()
		errs := rf.Validate()
		if _, dup := seenFlags[rf.ID]; dup && rf.ID != "" {
			errs = append(errs, fmt.Errorf("%w %q", ErrDuplicateID, rf.ID))
		}
		for _, ref := range rf.RelatedProtocols {
			if ref == "" {
				continue
			}
			if _, ok := snap.byID[ref]; !ok && !rejectedProtocol(rejected, ref) {
				errs = append(errs, fmt.Errorf("%w %q", redflag.ErrUnknownProtocol, ref))
			}
		}
		if len(errs) > 0 {
			rejected = append(rejected, &RecordError{Kind: "red flag", Index: i, ID: rf.ID, Errs: errs})
			continue
		}

		seenFlags[rf.ID] = struct{}{}
		snap.redFlags = append(snap.redFlags, &rf)
		snap.symptoms = append(snap.symptoms, normalize(rf.Symptom))
	}

	if len(rejected) > 0 {
		return nil, &LoadError{Records: rejected}
	}
	return snap, nil
}

// rejectedProtocol keeps a protocol that failed validation from also
// producing a dangling-reference error on every red flag that names it.
func rejectedProtocol(rejected []*RecordError, id string) bool {
	for _, r := range rejected {
		if r.Kind == "protocol" && r.ID == id {
			return true
		}
	}
	return false
}
