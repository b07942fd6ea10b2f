package triage

import "errors"

var (
	ErrInvalidAirway      = errors.New("invalid airway status")
	ErrInvalidBreathing   = errors.New("invalid breathing findings")
	ErrInvalidCirculation = errors.New("invalid circulation findings")
	ErrInvalidDisability  = errors.New("invalid disability findings")
	ErrInvalidExposure    = errors.New("invalid exposure findings")
	ErrInvalidAge         = errors.New("age cannot be negative")
)
