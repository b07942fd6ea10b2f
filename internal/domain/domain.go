package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Priority is the clinical urgency of a protocol or red flag.
type Priority string

const (
	PriorityImmediate Priority = "IMMEDIATE"
	PriorityUrgent    Priority = "URGENT"
	PriorityPrompt    Priority = "PROMPT"
	PriorityNonUrgent Priority = "NON_URGENT"
)

// Priorities lists every priority, most life-threatening first.
var Priorities = []Priority{PriorityImmediate, PriorityUrgent, PriorityPrompt, PriorityNonUrgent}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityImmediate, PriorityUrgent, PriorityPrompt, PriorityNonUrgent:
		return true
	}
	return false
}

// Rank is the total order used by every ranked query: IMMEDIATE=0 < URGENT=1
// < PROMPT=2 < NON_URGENT=3. Invalid values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityImmediate:
		return 0
	case PriorityUrgent:
		return 1
	case PriorityPrompt:
		return 2
	case PriorityNonUrgent:
		return 3
	}
	return len(Priorities)
}

// ComparePriority orders a before b when a is more urgent. It is shaped for
// slices.SortStableFunc.
func ComparePriority(a, b Priority) int {
	return a.Rank() - b.Rank()
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority %q", s)
	}
	return p, nil
}

type Category string

const (
	CategoryLifeThreatening Category = "life-threatening"
	CategoryTrauma          Category = "trauma"
	CategoryMedical         Category = "medical"
	CategorySituational     Category = "situational"
	CategoryEnvironmental   Category = "environmental"
)

var Categories = []Category{
	CategoryLifeThreatening, CategoryTrauma, CategoryMedical, CategorySituational, CategoryEnvironmental,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryLifeThreatening, CategoryTrauma, CategoryMedical, CategorySituational, CategoryEnvironmental:
		return true
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category %q", s)
	}
	return c, nil
}

type AgeGroup string

const (
	AgeGroupInfant  AgeGroup = "infant"
	AgeGroupChild   AgeGroup = "child"
	AgeGroupAdult   AgeGroup = "adult"
	AgeGroupElderly AgeGroup = "elderly"
	AgeGroupAll     AgeGroup = "all"
)

func (a AgeGroup) IsValid() bool {
	switch a {
	case AgeGroupInfant, AgeGroupChild, AgeGroupAdult, AgeGroupElderly, AgeGroupAll:
		return true
	}
	return false
}

type QueryAction string

const (
	ActionLookup       QueryAction = "lookup"
	ActionCategory     QueryAction = "category"
	ActionSearch       QueryAction = "search"
	ActionSymptomCheck QueryAction = "symptom_check"
	ActionTriage       QueryAction = "triage"
)

// Storage limits. The repository columns are sized to match.
const (
	MaxRecordIDLen  = 100
	MaxRequestIDLen = 64
)

// QueryLog records one knowledge-base query. It holds no patient identifiers.
type QueryLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	Action    QueryAction `gorm:"column:action;type:varchar(30);not null;index"`
	Query     string      `gorm:"column:query;type:text"`
	RequestID string      `gorm:"column:request_id;type:varchar(64);index"`
	IPAddress string      `gorm:"column:ip_address;type:varchar(45)"`

	ResultCount int    `gorm:"column:result_count"`
	TopResult   string `gorm:"column:top_result;type:varchar(100)"`
	// Highest priority among the results, or the triage category.
	Severity string `gorm:"column:severity;type:varchar(30);index"`
}

func (QueryLog) TableName() string {
	return "audit.query_logs"
}
