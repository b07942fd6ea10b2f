package service

import (
	"strings"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// validationFromJoined splits an errors.Join result into one field per error.
func validationFromJoined(err error) *ValidationError {
	return &ValidationError{Fields: strings.Split(err.Error(), "\n")}
}

// Caller identifies the request behind a query for the audit trail.
type Caller struct {
	RequestID string
	IPAddress string
}

type AuditEntry struct {
	Caller

	Action      domain.QueryAction
	Query       string
	ResultCount int
	TopResult   string
	Severity    string
}
