package knowledgebase

import (
	"slices"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func newSearchText(p *protocol.Protocol) searchText {
	t := searchText{
		name:  strings.ToLower(p.Name),
		signs: make([]string, len(p.RecognitionSigns)),
	}
	for i, sign := range p.RecognitionSigns {
		t.signs[i] = strings.ToLower(sign.Text)
	}
	return t
}

func (t searchText) contains(q string) bool {
	if strings.Contains(t.name, q) {
		return true
	}
	for _, s := range t.signs {
		if strings.Contains(s, q) {
			return true
		}
	}
	return false
}

// Search returns the protocols whose name or any recognition sign contains
// the query, case-insensitively. Results are ordered by priority rank; equal
// ranks keep load order. A blank query matches nothing; otherwise the query
// is matched as given, surrounding whitespace included.
func (s *Store) Search(query string) []protocol.Protocol {
	out := []protocol.Protocol{}

	if strings.TrimSpace(query) == "" {
		return out
	}
	q := strings.ToLower(query)

	snap := s.current.Load()
	for i, t := range snap.text {
		if t.contains(q) {
			out = append(out, snap.protocols[i].Clone())
		}
	}

	slices.SortStableFunc(out, func(a, b protocol.Protocol) int {
		return domain.ComparePriority(a.Priority, b.Priority)
	})
	return out
}

// CheckRedFlags matches reported symptoms against the red flag table. A flag
// matches a symptom when either contains the other, case-insensitively.
//
// Each flag appears at most once; MatchedSymptoms lists every reported
// symptom that hit it. Results are ordered by urgency rank, then table order.
// Blank symptoms are ignored.
func (s *Store) CheckRedFlags(symptoms []string) []redflag.Match {
	out := []redflag.Match{}

	reported := make([]string, 0, len(symptoms))
	originals := make([]string, 0, len(symptoms))
	for _, sym := range symptoms {
		if n := normalize(sym); n != "" {
			reported = append(reported, n)
			originals = append(originals, strings.TrimSpace(sym))
		}
	}
	if len(reported) == 0 {
		return out
	}

	snap := s.current.Load()
	for i, flagSymptom := range snap.symptoms {
		var hits []string
		for j, r := range reported {
			if redflag.Matches(r, flagSymptom) {
				hits = append(hits, originals[j])
			}
		}
		if len(hits) > 0 {
			out = append(out, redflag.Match{RedFlag: snap.redFlags[i].Clone(), MatchedSymptoms: hits})
		}
	}

	slices.SortStableFunc(out, func(a, b redflag.Match) int {
		return domain.ComparePriority(a.Urgency, b.Urgency)
	})
	return out
}
