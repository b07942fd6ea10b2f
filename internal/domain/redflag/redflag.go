package redflag

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
)

// RedFlag maps a reported symptom to candidate conditions and an urgency.
type RedFlag struct {
	ID                 string          `json:"id" yaml:"id"`
	Symptom            string          `json:"symptom" yaml:"symptom"`
	PossibleConditions []string        `json:"possibleConditions" yaml:"possibleConditions"`
	Urgency            domain.Priority `json:"urgency" yaml:"urgency"`
	Action             string          `json:"action" yaml:"action"`
	TimeFrame          string          `json:"timeFrame" yaml:"timeFrame"` // e.g. "within minutes"
	RelatedProtocols   []string        `json:"relatedProtocols,omitempty" yaml:"relatedProtocols,omitempty"`
}

// Validate checks the record in isolation. Related protocol ids are resolved
// by the store, which knows the loaded protocol set.
func (r *RedFlag) Validate() []error {
	var errs []error
	if strings.TrimSpace(r.ID) == "" {
		errs = append(errs, ErrIDRequired)
	} else if len(r.ID) > domain.MaxRecordIDLen {
		errs = append(errs, fmt.Errorf("%w: %d bytes, limit %d", ErrIDTooLong, len(r.ID), domain.MaxRecordIDLen))
	}
	if strings.TrimSpace(r.Symptom) == "" {
		errs = append(errs, ErrSymptomRequired)
	}
	if !r.Urgency.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidUrgency, r.Urgency))
	}
	for i, id := range r.RelatedProtocols {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Errorf("relatedProtocols[%d]: empty protocol id", i))
		}
	}
	return errs
}

func (r *RedFlag) Clone() RedFlag {
	c := *r
	c.PossibleConditions = slices.Clone(r.PossibleConditions)
	c.RelatedProtocols = slices.Clone(r.RelatedProtocols)
	return c
}

// Match is one red flag hit. MatchedSymptoms holds every input symptom that
// matched the flag, in input order.
type Match struct {
	RedFlag
	MatchedSymptoms []string `json:"matchedSymptoms"`
}

// Matches reports whether a reported symptom and a flag symptom contain one
// another. Both arguments must already be lower-cased and trimmed.
func Matches(reported, flagSymptom string) bool {
	if reported == "" || flagSymptom == "" {
		return false
	}
	return strings.Contains(reported, flagSymptom) || strings.Contains(flagSymptom, reported)
}
