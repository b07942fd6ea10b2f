package triage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category is a mass-casualty triage tag.
type Category string

const (
	CategoryImmediate Category = "IMMEDIATE"
	CategoryDelayed   Category = "DELAYED"
	CategoryMinor     Category = "MINOR"
	CategoryExpectant Category = "EXPECTANT"
)

var Categories = []Category{CategoryImmediate, CategoryDelayed, CategoryMinor, CategoryExpectant}

func (c Category) IsValid() bool {
	switch c {
	case CategoryImmediate, CategoryDelayed, CategoryMinor, CategoryExpectant:
		return true
	}
	return false
}

// Color is the tag colour used in the field.
func (c Category) Color() string {
	switch c {
	case CategoryImmediate:
		return "red"
	case CategoryDelayed:
		return "yellow"
	case CategoryMinor:
		return "green"
	case CategoryExpectant:
		return "black"
	}
	return ""
}

type Algorithm string

const (
	AlgorithmSTART     Algorithm = "START"
	AlgorithmJumpSTART Algorithm = "JumpSTART"
)

// Assessment is a primary survey plus the field observations START needs.
type Assessment struct {
	Survey PrimarySurvey `json:"survey"`

	// Ambulatory is true when the patient walks unassisted.
	Ambulatory bool `json:"ambulatory"`
	// AgeYears selects JumpSTART below the pediatric age limit. Nil means adult.
	AgeYears *int `json:"ageYears,omitempty"`

	BreathingAfterRepositioning bool `json:"breathingAfterRepositioning"`
	BreathingAfterRescueBreaths bool `json:"breathingAfterRescueBreaths"`

	// MassCasualty enables expectant tagging of patients who stay apneic.
	MassCasualty bool `json:"massCasualty"`
}

func (a *Assessment) Validate() error {
	var errs []error
	if a.AgeYears != nil && *a.AgeYears < 0 {
		errs = append(errs, ErrInvalidAge)
	}
	if err := a.Survey.Validate(); err != nil {
		errs = append(errs, err)
	}
	if a.Ambulatory && !a.Survey.Breathing.Present {
		errs = append(errs, fmt.Errorf("%w: ambulatory patient recorded as not breathing", ErrInvalidBreathing))
	}
	return errors.Join(errs...)
}

type Result struct {
	SurveyID  uuid.UUID `json:"surveyId"`
	Category  Category  `json:"category"`
	Color     string    `json:"color"`
	Algorithm Algorithm `json:"algorithm"`
	Reasons   []string  `json:"reasons"`
}

type Config struct {
	AdultRespiratoryMin     int
	AdultRespiratoryMax     int
	PediatricRespiratoryMin int
	PediatricRespiratoryMax int
	// CapillaryRefillLimit is the longest acceptable refill, in seconds.
	CapillaryRefillLimit float64
	// PediatricAgeLimit is the first age, in years, assessed with START.
	PediatricAgeLimit int
}

func DefaultConfig() Config {
	return Config{
		AdultRespiratoryMin:     10,
		AdultRespiratoryMax:     30,
		PediatricRespiratoryMin: 15,
		PediatricRespiratoryMax: 45,
		CapillaryRefillLimit:    2,
		PediatricAgeLimit:       8,
	}
}

// Classifier applies START to adults and JumpSTART to children. It holds no
// state beyond its thresholds and is safe for concurrent use.
type Classifier struct {
	cfg Config
}

// NewClassifier fills zero thresholds from DefaultConfig.
func NewClassifier(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.AdultRespiratoryMin == 0 {
		cfg.AdultRespiratoryMin = def.AdultRespiratoryMin
	}
	if cfg.AdultRespiratoryMax == 0 {
		cfg.AdultRespiratoryMax = def.AdultRespiratoryMax
	}
	if cfg.PediatricRespiratoryMin == 0 {
		cfg.PediatricRespiratoryMin = def.PediatricRespiratoryMin
	}
	if cfg.PediatricRespiratoryMax == 0 {
		cfg.PediatricRespiratoryMax = def.PediatricRespiratoryMax
	}
	if cfg.CapillaryRefillLimit == 0 {
		cfg.CapillaryRefillLimit = def.CapillaryRefillLimit
	}
	if cfg.PediatricAgeLimit == 0 {
		cfg.PediatricAgeLimit = def.PediatricAgeLimit
	}
	return &Classifier{cfg: cfg}
}

// Classify returns exactly one category for a well-formed assessment. The
// only error is a validation failure of the input.
func (c *Classifier) Classify(a *Assessment) (Result, error) {
	if err := a.Validate(); err != nil {
		return Result{}, err
	}

	pediatric := a.AgeYears != nil && *a.AgeYears < c.cfg.PediatricAgeLimit
	res := Result{SurveyID: a.Survey.ID, Algorithm: AlgorithmSTART}
	if pediatric {
		res.Algorithm = AlgorithmJumpSTART
	}

	s := &a.Survey

	if !s.Breathing.Present {
		switch {
		case a.BreathingAfterRepositioning:
			return res.tag(CategoryImmediate, "breathing only after airway repositioning"), nil
		case pediatric && s.Circulation.PulsePresent && a.BreathingAfterRescueBreaths:
			return res.tag(CategoryImmediate, "breathing resumed after rescue breaths"), nil
		case a.MassCasualty:
			return res.tag(CategoryExpectant, "apneic after airway repositioning in a mass-casualty incident"), nil
		default:
			return res.tag(CategoryImmediate, "apneic; resuscitate outside a mass-casualty incident"), nil
		}
	}

	var findings []string

	minRR, maxRR := c.cfg.AdultRespiratoryMin, c.cfg.AdultRespiratoryMax
	if pediatric {
		minRR, maxRR = c.cfg.PediatricRespiratoryMin, c.cfg.PediatricRespiratoryMax
	}
	if rr := s.Breathing.Rate; rr < minRR || rr > maxRR {
		findings = append(findings, fmt.Sprintf("respiratory rate %d/min outside %d-%d", rr, minRR, maxRR))
	}

	if s.Circulation.Bleeding == BleedingUncontrolled {
		findings = append(findings, "uncontrolled hemorrhage")
	}

	switch {
	case !s.Circulation.PulsePresent:
		findings = append(findings, "no palpable pulse")
	case !pediatric && s.Circulation.CapillaryRefillSeconds > c.cfg.CapillaryRefillLimit:
		findings = append(findings, fmt.Sprintf("capillary refill %.1fs exceeds %.0fs",
			s.Circulation.CapillaryRefillSeconds, c.cfg.CapillaryRefillLimit))
	}

	d := s.Disability
	if pediatric {
		if d.Response == ResponseUnresponsive || (d.Response == ResponsePain && !d.FollowsCommands) {
			findings = append(findings, fmt.Sprintf("AVPU %s without purposeful response", d.Response))
		}
	} else if (!d.Conscious || d.Response != ResponseAlert) && !d.FollowsCommands {
		findings = append(findings, "altered mental status and cannot follow commands")
	}

	if len(findings) > 0 {
		return res.tag(CategoryImmediate, findings...), nil
	}

	if a.Ambulatory {
		return res.tag(CategoryMinor, "walking wounded with no immediately life-threatening findings"), nil
	}

	reasons := []string{"respiration, perfusion and mental status within bounds"}
	for _, inj := range s.SeriousInjuries() {
		reasons = append(reasons, "serious injury: "+strings.TrimSpace(inj.Description))
	}
	if len(reasons) == 1 {
		reasons = append(reasons, "unable to walk")
	}
	return res.tag(CategoryDelayed, reasons...), nil
}

func (r Result) tag(c Category, reasons ...string) Result {
	r.Category = c
	r.Color = c.Color()
	r.Reasons = reasons
	return r
}
