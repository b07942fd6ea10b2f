package triage

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type AirwayStatus string

const (
	AirwayClear      AirwayStatus = "clear"
	AirwayPartial    AirwayStatus = "partial"
	AirwayObstructed AirwayStatus = "obstructed"
)

func (a AirwayStatus) IsValid() bool {
	switch a {
	case AirwayClear, AirwayPartial, AirwayObstructed:
		return true
	}
	return false
}

type BreathingQuality string

const (
	BreathingNormal  BreathingQuality = "normal"
	BreathingLabored BreathingQuality = "labored"
	BreathingShallow BreathingQuality = "shallow"
	BreathingAgonal  BreathingQuality = "agonal"
)

func (q BreathingQuality) IsValid() bool {
	switch q {
	case BreathingNormal, BreathingLabored, BreathingShallow, BreathingAgonal:
		return true
	}
	return false
}

type PulseQuality string

const (
	PulseStrong  PulseQuality = "strong"
	PulseWeak    PulseQuality = "weak"
	PulseThready PulseQuality = "thready"
	PulseAbsent  PulseQuality = "absent"
)

func (q PulseQuality) IsValid() bool {
	switch q {
	case PulseStrong, PulseWeak, PulseThready, PulseAbsent:
		return true
	}
	return false
}

type BleedingState string

const (
	BleedingNone         BleedingState = "none"
	BleedingControlled   BleedingState = "controlled"
	BleedingUncontrolled BleedingState = "uncontrolled"
)

func (b BleedingState) IsValid() bool {
	switch b {
	case BleedingNone, BleedingControlled, BleedingUncontrolled:
		return true
	}
	return false
}

// ResponseLevel is the AVPU scale.
type ResponseLevel string

const (
	ResponseAlert        ResponseLevel = "alert"
	ResponseVerbal       ResponseLevel = "verbal"
	ResponsePain         ResponseLevel = "pain"
	ResponseUnresponsive ResponseLevel = "unresponsive"
)

func (r ResponseLevel) IsValid() bool {
	switch r {
	case ResponseAlert, ResponseVerbal, ResponsePain, ResponseUnresponsive:
		return true
	}
	return false
}

type PupilState string

const (
	PupilsEqual       PupilState = "equal"
	PupilsUnequal     PupilState = "unequal"
	PupilsFixed       PupilState = "fixed"
	PupilsDilated     PupilState = "dilated"
	PupilsConstricted PupilState = "constricted"
)

func (p PupilState) IsValid() bool {
	switch p {
	case PupilsEqual, PupilsUnequal, PupilsFixed, PupilsDilated, PupilsConstricted:
		return true
	}
	return false
}

type Airway struct {
	Status AirwayStatus `json:"status"`
}

type Breathing struct {
	Present bool             `json:"present"`
	Rate    int              `json:"rate"` // breaths per minute
	Quality BreathingQuality `json:"quality,omitempty"`
}

type Circulation struct {
	PulsePresent           bool          `json:"pulsePresent"`
	PulseRate              int           `json:"pulseRate,omitempty"`
	PulseQuality           PulseQuality  `json:"pulseQuality,omitempty"`
	CapillaryRefillSeconds float64       `json:"capillaryRefillSeconds,omitempty"` // zero when not measured
	Bleeding               BleedingState `json:"bleeding"`
}

type Disability struct {
	Conscious       bool          `json:"conscious"`
	Response        ResponseLevel `json:"response"`
	Pupils          PupilState    `json:"pupils,omitempty"`
	FollowsCommands bool          `json:"followsCommands"`
}

type Injury struct {
	Description string `json:"description"`
	Region      string `json:"region,omitempty"`
	Serious     bool   `json:"serious"`
}

type Exposure struct {
	Injuries           []Injury `json:"injuries,omitempty"`
	TemperatureCelsius *float64 `json:"temperatureCelsius,omitempty"`
	Environment        string   `json:"environment,omitempty"`
}

// PrimarySurvey is a point-in-time ABCDE snapshot. A later finding is a new
// survey, not an edit of this one.
type PrimarySurvey struct {
	ID         uuid.UUID `json:"id"`
	RecordedAt time.Time `json:"recordedAt"`

	Airway      Airway      `json:"airway"`
	Breathing   Breathing   `json:"breathing"`
	Circulation Circulation `json:"circulation"`
	Disability  Disability  `json:"disability"`
	Exposure    Exposure    `json:"exposure"`
}

// Stamped returns a copy with an id and recording time assigned where missing.
func (s PrimarySurvey) Stamped(now time.Time) PrimarySurvey {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.RecordedAt.IsZero() {
		s.RecordedAt = now
	}
	return s
}

func (s *PrimarySurvey) SeriousInjuries() []Injury {
	var out []Injury
	for _, inj := range s.Exposure.Injuries {
		if inj.Serious {
			out = append(out, inj)
		}
	}
	return out
}

func (s *PrimarySurvey) Validate() error {
	var errs []error

	if !s.Airway.Status.IsValid() {
		errs = append(errs, fmt.Errorf("%w: airway.status %q", ErrInvalidAirway, s.Airway.Status))
	}

	b := s.Breathing
	switch {
	case b.Rate < 0:
		errs = append(errs, fmt.Errorf("%w: breathing.rate cannot be negative", ErrInvalidBreathing))
	case b.Present && b.Rate == 0:
		errs = append(errs, fmt.Errorf("%w: breathing.rate is required when breathing is present", ErrInvalidBreathing))
	case !b.Present && b.Rate > 0:
		errs = append(errs, fmt.Errorf("%w: breathing.rate given but breathing is absent", ErrInvalidBreathing))
	}
	if b.Quality != "" && !b.Quality.IsValid() {
		errs = append(errs, fmt.Errorf("%w: breathing.quality %q", ErrInvalidBreathing, b.Quality))
	}

	c := s.Circulation
	if c.PulseRate < 0 {
		errs = append(errs, fmt.Errorf("%w: circulation.pulseRate cannot be negative", ErrInvalidCirculation))
	}
	if c.PulseQuality != "" && !c.PulseQuality.IsValid() {
		errs = append(errs, fmt.Errorf("%w: circulation.pulseQuality %q", ErrInvalidCirculation, c.PulseQuality))
	}
	if c.PulsePresent && c.PulseQuality == PulseAbsent {
		errs = append(errs, fmt.Errorf("%w: pulse marked present with quality absent", ErrInvalidCirculation))
	}
	if math.IsNaN(c.CapillaryRefillSeconds) || math.IsInf(c.CapillaryRefillSeconds, 0) || c.CapillaryRefillSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: circulation.capillaryRefillSeconds must be a non-negative number", ErrInvalidCirculation))
	}
	if !c.Bleeding.IsValid() {
		errs = append(errs, fmt.Errorf("%w: circulation.bleeding %q", ErrInvalidCirculation, c.Bleeding))
	}

	d := s.Disability
	if !d.Response.IsValid() {
		errs = append(errs, fmt.Errorf("%w: disability.response %q", ErrInvalidDisability, d.Response))
	}
	if d.Conscious && d.Response == ResponseUnresponsive {
		errs = append(errs, fmt.Errorf("%w: conscious patient cannot be unresponsive", ErrInvalidDisability))
	}
	if !d.Conscious && d.Response == ResponseAlert {
		errs = append(errs, fmt.Errorf("%w: unconscious patient cannot be alert", ErrInvalidDisability))
	}
	if d.Pupils != "" && !d.Pupils.IsValid() {
		errs = append(errs, fmt.Errorf("%w: disability.pupils %q", ErrInvalidDisability, d.Pupils))
	}

	if t := s.Exposure.TemperatureCelsius; t != nil && (math.IsNaN(*t) || math.IsInf(*t, 0)) {
		errs = append(errs, fmt.Errorf("%w: exposure.temperatureCelsius must be a number", ErrInvalidExposure))
	}

	return errors.Join(errs...)
}
