package protocol

import "errors"

var (
	ErrProtocolNotFound = errors.New("protocol not found")
	ErrIDRequired       = errors.New("protocol id is required")
	ErrIDTooLong        = errors.New("protocol id is too long")
	ErrNameRequired     = errors.New("protocol name is required")
	ErrInvalidCategory  = errors.New("invalid protocol category")
	ErrInvalidPriority  = errors.New("invalid protocol priority")
	ErrInvalidAgeGroup  = errors.New("invalid protocol age group")
	ErrStepSequence     = errors.New("step numbers must be contiguous starting at 1")
	ErrEmergencyNumber  = errors.New("emergency number is required when callEmergency is set")
)
