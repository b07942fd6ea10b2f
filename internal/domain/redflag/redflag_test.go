package redflag

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		reported, flag string
		want           bool
	}{
		{"severe chest pain", "chest pain", true},
		{"fever", "stiff neck with fever", true},
		{"chest pain", "chest pain", true},
		{"headache", "chest pain", false},
		{"", "chest pain", false},
		{"chest pain", "", false},
	}
	for _, tc := range tests {
		if got := Matches(tc.reported, tc.flag); got != tc.want {
			t.Errorf("Matches(%q, %q) = %v, expected %v", tc.reported, tc.flag, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	ok := RedFlag{ID: "rf-1", Symptom: "chest pain", Urgency: domain.PriorityImmediate}
	if errs := ok.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid red flag, got %v", errs)
	}

	bad := RedFlag{RelatedProtocols: []string{""}, Urgency: "LATER"}
	err := errors.Join(bad.Validate()...)
	for _, want := range []error{ErrIDRequired, ErrSymptomRequired, ErrInvalidUrgency} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
	if len(bad.Validate()) != 4 {
		t.Errorf("expected 4 problems, got %d", len(bad.Validate()))
	}

	long := ok
	long.ID = strings.Repeat("x", domain.MaxRecordIDLen+1)
	if !errors.Is(errors.Join(long.Validate()...), ErrIDTooLong) {
		t.Errorf("expected ErrIDTooLong, got %v", long.Validate())
	}
	long.ID = long.ID[1:]
	if errs := long.Validate(); len(errs) != 0 {
		t.Errorf("expected id at the limit to be accepted, got %v", errs)
	}
}
