package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/knowledgebase"
	"go.uber.org/zap/zaptest"
)

func TestBuiltinCorpusLoads(t *testing.T) {
	c, err := Builtin().Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s, err := knowledgebase.New(c.Protocols, c.RedFlags, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("builtin corpus rejected: %v", err)
	}
	if s.Stats().Protocols != len(c.Protocols) || s.Stats().RedFlags != len(c.RedFlags) {
		t.Errorf("unexpected stats %+v", s.Stats())
	}

	for _, c := range domain.Categories {
		if len(s.ByCategory(c)) == 0 {
			t.Errorf("no builtin protocol in category %s", c)
		}
	}
	if _, ok := s.Protocol("cardiac-arrest-adult"); !ok {
		t.Error("expected cardiac-arrest-adult in builtin corpus")
	}
}

func TestBuiltinLoadReturnsFreshCopies(t *testing.T) {
	first, _ := Builtin().Load(context.Background())
	first.Protocols[0].Steps[0].Action = "changed"

	second, _ := Builtin().Load(context.Background())
	if second.Protocols[0].Steps[0].Action == "changed" {
		t.Error("builtin corpus shared between loads")
	}
}

const yamlCorpus = `
protocols:
  - id: nosebleed
    name: Nosebleed
    category: trauma
    priority: NON_URGENT
    ageGroup: all
    callEmergency: false
    recognitionSigns:
      - text: Bleeding from one nostril
        severity: moderate
    steps:
      - stepNumber: 1
        action: Sit up and lean forward
      - stepNumber: 2
        action: Pinch the soft part of the nose
        duration: 10 minutes
redFlags:
  - id: rf-nosebleed
    symptom: nosebleed that will not stop
    possibleConditions: [Clotting disorder]
    urgency: PROMPT
    action: Go to urgent care
    timeFrame: within 1 hour
    relatedProtocols: [nosebleed]
`

const jsonCorpus = `{
  "protocols": [{
    "id": "nosebleed",
    "name": "Nosebleed",
    "category": "trauma",
    "priority": "NON_URGENT",
    "ageGroup": "all",
    "callEmergency": false,
    "recognitionSigns": [{"text": "Bleeding from one nostril", "severity": "moderate"}],
    "steps": [
      {"stepNumber": 1, "action": "Sit up and lean forward"},
      {"stepNumber": 2, "action": "Pinch the soft part of the nose", "duration": "10 minutes"}
    ]
  }],
  "redFlags": [{
    "id": "rf-nosebleed",
    "symptom": "nosebleed that will not stop",
    "possibleConditions": ["Clotting disorder"],
    "urgency": "PROMPT",
    "action": "Go to urgent care",
    "timeFrame": "within 1 hour",
    "relatedProtocols": ["nosebleed"]
  }]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadFileFormats(t *testing.T) {
	want := &Corpus{
		Protocols: []protocol.Protocol{{
			ID:       "nosebleed",
			Name:     "Nosebleed",
			Category: domain.CategoryTrauma,
			Priority: domain.PriorityNonUrgent,
			AgeGroup: domain.AgeGroupAll,
			RecognitionSigns: []protocol.RecognitionSign{
				{Text: "Bleeding from one nostril", Severity: protocol.SeverityModerate},
			},
			Steps: []protocol.Step{
				{Number: 1, Action: "Sit up and lean forward"},
				{Number: 2, Action: "Pinch the soft part of the nose", Duration: "10 minutes"},
			},
		}},
		RedFlags: []redflag.RedFlag{{
			ID:                 "rf-nosebleed",
			Symptom:            "nosebleed that will not stop",
			PossibleConditions: []string{"Clotting disorder"},
			Urgency:            domain.PriorityPrompt,
			Action:             "Go to urgent care",
			TimeFrame:          "within 1 hour",
			RelatedProtocols:   []string{"nosebleed"},
		}},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "corpus.yaml", yamlCorpus},
		{"yml", "corpus.yml", yamlCorpus},
		{"json", "corpus.json", jsonCorpus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := File(writeFile(t, tc.file, tc.content)).Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("decoded corpus mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestLoadFileRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"typo.yaml", "protocols:\n  - id: x\n    nmae: Typo\n"},
		{"typo.json", `{"protocols": [{"id": "x", "nmae": "Typo"}]}`},
	}
	for _, tc := range tests {
		if _, err := LoadFile(writeFile(t, tc.file, tc.content)); err == nil {
			t.Errorf("%s: expected unknown field error", tc.file)
		}
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile("corpus.toml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	c, _ := Builtin().Load(context.Background())

	out, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := LoadFile(writeFile(t, "builtin.yaml", string(out)))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(got, c) {
		t.Error("encoded builtin corpus does not decode to the same records")
	}
}

type stubReader struct {
	protocols []protocol.Protocol
	flags     []redflag.RedFlag
	err       error
}

func (s stubReader) LoadCorpus(context.Context) ([]protocol.Protocol, []redflag.RedFlag, error) {
	return s.protocols, s.flags, s.err
}

func TestDatabaseSource(t *testing.T) {
	builtin, _ := Builtin().Load(context.Background())

	got, err := Database(stubReader{protocols: builtin.Protocols, flags: builtin.RedFlags}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Protocols) != len(builtin.Protocols) || len(got.RedFlags) != len(builtin.RedFlags) {
		t.Errorf("unexpected corpus sizes %d/%d", len(got.Protocols), len(got.RedFlags))
	}

	boom := errors.New("connection refused")
	if _, err := Database(stubReader{err: boom}).Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped reader error, got %v", err)
	}
}
