package knowledgebase

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
)

func TestSearchPriorityOrdering(t *testing.T) {
	s := newStore(t, []protocol.Protocol{
		newProtocol("a", "Choking", domain.CategoryLifeThreatening, domain.PriorityUrgent),
		newProtocol("b", "Choking Response", domain.CategoryLifeThreatening, domain.PriorityImmediate),
	}, nil)

	got := s.Search("choking")
	if want := []string{"b", "a"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("expected %v, got %v", want, ids(got))
	}
}

func TestSearchStableWithinRank(t *testing.T) {
	s := newStore(t, []protocol.Protocol{
		newProtocol("p1", "Burn (minor)", domain.CategoryTrauma, domain.PriorityPrompt),
		newProtocol("i1", "Burn (chemical)", domain.CategoryTrauma, domain.PriorityImmediate),
		newProtocol("p2", "Burn (sunburn)", domain.CategoryEnvironmental, domain.PriorityPrompt),
		newProtocol("i2", "Burn (electrical)", domain.CategoryTrauma, domain.PriorityImmediate),
		newProtocol("p3", "Burn (friction)", domain.CategoryTrauma, domain.PriorityPrompt),
	}, nil)

	got := ids(s.Search("burn"))
	if want := []string{"i1", "i2", "p1", "p2", "p3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected load order within rank %v, got %v", want, got)
	}
}

func TestSearchMatchesSignsCaseInsensitively(t *testing.T) {
	s := newStore(t, fixture(), nil)

	got := ids(s.Search("DIFFICULTY BREATHING"))
	if want := []string{"anaphylaxis"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = ids(s.Search("swelling"))
	if want := []string{"anaphylaxis", "sprain"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSearchKeepsSurroundingWhitespace(t *testing.T) {
	s := newStore(t, []protocol.Protocol{
		newProtocol("severe-bleeding", "Severe Bleeding", domain.CategoryTrauma, domain.PriorityImmediate),
		newProtocol("bleeding-gums", "Bleeding gums", domain.CategoryMedical, domain.PriorityNonUrgent),
	}, nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"bleeding", []string{"severe-bleeding", "bleeding-gums"}},
		{"bleeding ", []string{"bleeding-gums"}},
		{" bleeding", []string{"severe-bleeding"}},
		{" bleeding ", []string{}},
	}
	for _, tc := range tests {
		got := s.Search(tc.query)
		if !reflect.DeepEqual(ids(got), tc.want) {
			t.Errorf("query %q: expected %v, got %v", tc.query, tc.want, ids(got))
		}
		for _, p := range got {
			if !matchesNaively(p, tc.query) {
				t.Errorf("query %q: %s is not a substring match", tc.query, p.ID)
			}
		}
	}
}

func TestSearchBlankQuery(t *testing.T) {
	s := newStore(t, fixture(), nil)
	for _, q := range []string{"", "   ", "\t\n"} {
		got := s.Search(q)
		if got == nil || len(got) != 0 {
			t.Errorf("query %q: expected empty non-nil result, got %v", q, ids(got))
		}
	}
	if got := s.Search("no such protocol"); len(got) != 0 {
		t.Errorf("expected no hits, got %v", ids(got))
	}
}

func TestSearchSoundnessAndOrdering(t *testing.T) {
	protocols := fixture()
	s := newStore(t, protocols, nil)

	queries := []string{"a", "e", "ing", "heat", "skin", "blood", "arrest", "(", "swell", "x", "ing ", " swell"}
	for _, q := range queries {
		got := s.Search(q)

		for i := 1; i < len(got); i++ {
			if got[i-1].Priority.Rank() > got[i].Priority.Rank() {
				t.Errorf("query %q: rank decreases at %d (%s before %s)", q, i, got[i-1].Priority, got[i].Priority)
			}
		}

		inResult := make(map[string]bool, len(got))
		for _, p := range got {
			inResult[p.ID] = true
		}
		for _, p := range protocols {
			if matchesNaively(p, q) != inResult[p.ID] {
				t.Errorf("query %q: protocol %q inclusion=%v, expected %v", q, p.ID, inResult[p.ID], !inResult[p.ID])
			}
		}
	}
}

func TestSearchIdempotent(t *testing.T) {
	s := newStore(t, fixture(), nil)
	first := s.Search("e")
	for range 5 {
		if again := s.Search("e"); !reflect.DeepEqual(first, again) {
			t.Fatalf("repeated search differs:\n%v\n%v", ids(first), ids(again))
		}
	}
}

func matchesNaively(p protocol.Protocol, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, sign := range p.RecognitionSigns {
		if strings.Contains(strings.ToLower(sign.Text), q) {
			return true
		}
	}
	return false
}

func redFlagFixture() []redflag.RedFlag {
	return []redflag.RedFlag{
		{ID: "rf-fever", Symptom: "high fever", Urgency: domain.PriorityPrompt, Action: "See a clinician today"},
		{ID: "rf-chest", Symptom: "chest pain", Urgency: domain.PriorityImmediate, Action: "Call emergency services",
			RelatedProtocols: []string{"cardiac-arrest-adult"}},
		{ID: "rf-stiff-neck", Symptom: "stiff neck with fever", Urgency: domain.PriorityUrgent, Action: "Seek emergency care"},
		{ID: "rf-breathing", Symptom: "difficulty breathing", Urgency: domain.PriorityImmediate, Action: "Call emergency services",
			RelatedProtocols: []string{"anaphylaxis"}},
	}
}

func TestCheckRedFlagsSuperstring(t *testing.T) {
	s := newStore(t, fixture(), redFlagFixture())

	got := s.CheckRedFlags([]string{"severe chest pain"})
	if len(got) != 1 || got[0].ID != "rf-chest" {
		t.Fatalf("expected rf-chest, got %+v", got)
	}
	if got[0].Urgency != domain.PriorityImmediate {
		t.Errorf("expected IMMEDIATE, got %s", got[0].Urgency)
	}
	if !reflect.DeepEqual(got[0].MatchedSymptoms, []string{"severe chest pain"}) {
		t.Errorf("unexpected matched symptoms %v", got[0].MatchedSymptoms)
	}
}

func TestCheckRedFlagsBidirectional(t *testing.T) {
	s := newStore(t, fixture(), redFlagFixture())

	got := s.CheckRedFlags([]string{"Fever"})
	var flagIDs []string
	for _, m := range got {
		flagIDs = append(flagIDs, m.ID)
	}
	if want := []string{"rf-stiff-neck", "rf-fever"}; !reflect.DeepEqual(flagIDs, want) {
		t.Errorf("expected %v ordered by urgency, got %v", want, flagIDs)
	}
}

func TestCheckRedFlagsDeduplicates(t *testing.T) {
	s := newStore(t, fixture(), redFlagFixture())

	got := s.CheckRedFlags([]string{"chest pain", "crushing chest pain", "pain"})
	count := 0
	for _, m := range got {
		if m.ID == "rf-chest" {
			count++
			want := []string{"chest pain", "crushing chest pain", "pain"}
			if !reflect.DeepEqual(m.MatchedSymptoms, want) {
				t.Errorf("expected matched symptoms %v, got %v", want, m.MatchedSymptoms)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected rf-chest exactly once, got %d", count)
	}
}

func TestCheckRedFlagsOrderingAndBlanks(t *testing.T) {
	s := newStore(t, fixture(), redFlagFixture())

	got := s.CheckRedFlags([]string{"", "  ", "high fever", "trouble: difficulty breathing", "chest pain"})
	for i := 1; i < len(got); i++ {
		if got[i-1].Urgency.Rank() > got[i].Urgency.Rank() {
			t.Errorf("urgency rank decreases at %d", i)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected 3 matches, got %d", len(got))
	}
	if got[0].ID != "rf-chest" || got[1].ID != "rf-breathing" {
		t.Errorf("expected table order within IMMEDIATE, got %s, %s", got[0].ID, got[1].ID)
	}

	if none := s.CheckRedFlags([]string{"", " "}); none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil result for blank symptoms, got %v", none)
	}
	if none := s.CheckRedFlags(nil); len(none) != 0 {
		t.Errorf("expected no matches for nil input, got %v", none)
	}
}
