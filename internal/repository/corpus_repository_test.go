package repository

import (
	"reflect"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
)

func TestProtocolRecordsKeepLoadOrder(t *testing.T) {
	protocols := []protocol.Protocol{
		{ID: "b", Name: "B", Category: domain.CategoryTrauma, Priority: domain.PriorityUrgent, AgeGroup: domain.AgeGroupAll,
			Steps: []protocol.Step{{Number: 1, Action: "Act"}}},
		{ID: "a", Name: "A", Category: domain.CategoryMedical, Priority: domain.PriorityImmediate, AgeGroup: domain.AgeGroupAdult},
	}

	recs := toProtocolRecords(protocols)
	for i, rec := range recs {
		if rec.Position != i {
			t.Errorf("record %q: expected position %d, got %d", rec.ID, i, rec.Position)
		}
		if rec.ID != protocols[i].ID || rec.Category != protocols[i].Category || rec.Priority != protocols[i].Priority {
			t.Errorf("record %d: indexed columns do not match payload: %+v", i, rec)
		}
	}

	if got := fromProtocolRecords(recs); !reflect.DeepEqual(got, protocols) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, protocols)
	}

	protocols[0].Steps[0].Action = "mutated"
	if recs[0].Payload.Steps[0].Action != "Act" {
		t.Error("records share slices with the caller")
	}
}

func TestRedFlagRecords(t *testing.T) {
	flags := []redflag.RedFlag{
		{ID: "rf-1", Symptom: "chest pain", Urgency: domain.PriorityImmediate, RelatedProtocols: []string{"a"}},
		{ID: "rf-2", Symptom: "mild rash", Urgency: domain.PriorityNonUrgent},
	}

	recs := toRedFlagRecords(flags)
	if recs[1].Position != 1 || recs[1].Urgency != domain.PriorityNonUrgent {
		t.Errorf("unexpected record %+v", recs[1])
	}
	if got := fromRedFlagRecords(recs); !reflect.DeepEqual(got, flags) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, flags)
	}
}

func TestEmptyCorpusRecords(t *testing.T) {
	if got := toProtocolRecords(nil); len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
	if got := fromRedFlagRecords(nil); got == nil {
		t.Error("expected empty non-nil slice")
	}
}
