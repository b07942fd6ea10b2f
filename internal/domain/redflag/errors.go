package redflag

import "errors"

var (
	ErrIDRequired      = errors.New("red flag id is required")
	ErrIDTooLong       = errors.New("red flag id is too long")
	ErrSymptomRequired = errors.New("red flag symptom is required")
	ErrInvalidUrgency  = errors.New("invalid red flag urgency")
	ErrUnknownProtocol = errors.New("red flag references an unknown protocol")
)
