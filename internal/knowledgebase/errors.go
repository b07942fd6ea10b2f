package knowledgebase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCorpus = errors.New("invalid corpus")
	ErrDuplicateID   = errors.New("duplicate id")
)

// RecordError names the record that failed a bulk load and everything wrong
// with it.
type RecordError struct {
	Kind  string // "protocol" or "red flag"
	Index int
	ID    string
	Errs  []error
}

func (e *RecordError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s[%d] %q: %s", e.Kind, e.Index, e.ID, strings.Join(msgs, "; "))
}

func (e *RecordError) Unwrap() []error {
	return e.Errs
}

// LoadError aggregates every RecordError from one load attempt.
type LoadError struct {
	Records []*RecordError
}

func (e *LoadError) Error() string {
	lines := make([]string, len(e.Records))
	for i, r := range e.Records {
		lines[i] = r.Error()
	}
	return fmt.Sprintf("%s: %d record(s) rejected:\n  - %s",
		ErrInvalidCorpus, len(e.Records), strings.Join(lines, "\n  - "))
}

func (e *LoadError) Unwrap() []error {
	errs := make([]error, 0, len(e.Records)+1)
	errs = append(errs, ErrInvalidCorpus)
	for _, r := range e.Records {
		errs = append(errs, r)
	}
	return errs
}
