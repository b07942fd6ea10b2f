package protocol

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
)

type SignSeverity string

const (
	SeverityCritical SignSeverity = "critical"
	SeveritySerious  SignSeverity = "serious"
	SeverityModerate SignSeverity = "moderate"
)

func (s SignSeverity) IsValid() bool {
	switch s {
	case SeverityCritical, SeveritySerious, SeverityModerate:
		return true
	}
	return false
}

type RecognitionSign struct {
	Text      string       `json:"text" yaml:"text"`
	Severity  SignSeverity `json:"severity" yaml:"severity"`
	VisualCue string       `json:"visualCue,omitempty" yaml:"visualCue,omitempty"`
}

type Step struct {
	Number      int    `json:"stepNumber" yaml:"stepNumber"`
	Action      string `json:"action" yaml:"action"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"` // e.g. "2 minutes"
	Repetitions int    `json:"repetitions,omitempty" yaml:"repetitions,omitempty"`
	Technique   string `json:"technique,omitempty" yaml:"technique,omitempty"`
	Warning     string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// Prohibition reads as "do not Action because Reason, else Consequence".
type Prohibition struct {
	Action      string `json:"action" yaml:"action"`
	Reason      string `json:"reason" yaml:"reason"`
	Consequence string `json:"consequence,omitempty" yaml:"consequence,omitempty"`
}

type Supply struct {
	Name         string   `json:"name" yaml:"name"`
	Quantity     string   `json:"quantity" yaml:"quantity"`
	Usage        string   `json:"usage" yaml:"usage"`
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
}

type RecoveryPosition struct {
	Name              string   `json:"name" yaml:"name"`
	Instructions      []string `json:"instructions" yaml:"instructions"`
	Contraindications []string `json:"contraindications,omitempty" yaml:"contraindications,omitempty"`
}

// Visualization points the rendering layer at anatomy and media assets.
type Visualization struct {
	AnatomyRegions []string `json:"anatomyRegions,omitempty" yaml:"anatomyRegions,omitempty"`
	Animation      string   `json:"animation,omitempty" yaml:"animation,omitempty"`
	HighlightColor string   `json:"highlightColor,omitempty" yaml:"highlightColor,omitempty"`
}

type Reference struct {
	Title  string `json:"title" yaml:"title"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Year   int    `json:"year,omitempty" yaml:"year,omitempty"`
}

// Protocol is authored once and never mutated at runtime.
type Protocol struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	AlternateNames []string `json:"alternateNames,omitempty" yaml:"alternateNames,omitempty"`

	Category domain.Category `json:"category" yaml:"category"`
	Priority domain.Priority `json:"priority" yaml:"priority"`
	AgeGroup domain.AgeGroup `json:"ageGroup" yaml:"ageGroup"`

	CallEmergency   bool   `json:"callEmergency" yaml:"callEmergency"`
	EmergencyNumber string `json:"emergencyNumber,omitempty" yaml:"emergencyNumber,omitempty"`

	RecognitionSigns []RecognitionSign `json:"recognitionSigns" yaml:"recognitionSigns"`
	Steps            []Step            `json:"steps" yaml:"steps"`
	DoNot            []Prohibition     `json:"doNot,omitempty" yaml:"doNot,omitempty"`
	Supplies         []Supply          `json:"supplies,omitempty" yaml:"supplies,omitempty"`

	RecoveryPosition *RecoveryPosition `json:"recoveryPosition,omitempty" yaml:"recoveryPosition,omitempty"`
	Visualization    *Visualization    `json:"visualization,omitempty" yaml:"visualization,omitempty"`
	Aftercare        []string          `json:"aftercare,omitempty" yaml:"aftercare,omitempty"`
	References       []Reference       `json:"references,omitempty" yaml:"references,omitempty"`
}

// Validate reports every integrity problem in the record. A nil result means
// the record may be loaded.
func (p *Protocol) Validate() []error {
	var errs []error

	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, ErrIDRequired)
	} else if len(p.ID) > domain.MaxRecordIDLen {
		errs = append(errs, fmt.Errorf("%w: %d bytes, limit %d", ErrIDTooLong, len(p.ID), domain.MaxRecordIDLen))
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if !p.Category.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category))
	}
	if !p.Priority.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPriority, p.Priority))
	}
	if !p.AgeGroup.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidAgeGroup, p.AgeGroup))
	}
	if p.CallEmergency && strings.TrimSpace(p.EmergencyNumber) == "" {
		errs = append(errs, ErrEmergencyNumber)
	}

	for i, s := range p.RecognitionSigns {
		if strings.TrimSpace(s.Text) == "" {
			errs = append(errs, fmt.Errorf("recognitionSigns[%d]: text is required", i))
		}
		if !s.Severity.IsValid() {
			errs = append(errs, fmt.Errorf("recognitionSigns[%d]: invalid severity %q", i, s.Severity))
		}
	}

	for i, s := range p.Steps {
		if s.Number != i+1 {
			errs = append(errs, fmt.Errorf("%w: steps[%d] has number %d", ErrStepSequence, i, s.Number))
		}
		if strings.TrimSpace(s.Action) == "" {
			errs = append(errs, fmt.Errorf("steps[%d]: action is required", i))
		}
		if s.Repetitions < 0 {
			errs = append(errs, fmt.Errorf("steps[%d]: repetitions cannot be negative", i))
		}
	}

	for i, d := range p.DoNot {
		if strings.TrimSpace(d.Action) == "" {
			errs = append(errs, fmt.Errorf("doNot[%d]: action is required", i))
		}
	}

	for i, s := range p.Supplies {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("supplies[%d]: name is required", i))
		}
	}

	return errs
}

// Clone returns a deep copy so callers cannot reach the store's records.
func (p *Protocol) Clone() Protocol {
	c := *p
	c.AlternateNames = slices.Clone(p.AlternateNames)
	c.RecognitionSigns = slices.Clone(p.RecognitionSigns)
	c.Steps = slices.Clone(p.Steps)
	c.DoNot = slices.Clone(p.DoNot)
	c.Aftercare = slices.Clone(p.Aftercare)
	c.References = slices.Clone(p.References)

	if p.Supplies != nil {
		c.Supplies = make([]Supply, len(p.Supplies))
		for i, s := range p.Supplies {
			s.Alternatives = slices.Clone(s.Alternatives)
			c.Supplies[i] = s
		}
	}
	if p.RecoveryPosition != nil {
		rp := *p.RecoveryPosition
		rp.Instructions = slices.Clone(rp.Instructions)
		rp.Contraindications = slices.Clone(rp.Contraindications)
		c.RecoveryPosition = &rp
	}
	if p.Visualization != nil {
		v := *p.Visualization
		v.AnatomyRegions = slices.Clone(v.AnatomyRegions)
		c.Visualization = &v
	}
	return c
}
