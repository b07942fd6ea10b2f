// Package corpus supplies protocol and red flag records to the knowledge
// base. The store never loads data on its own; a Source is chosen by
// configuration and its result is passed to knowledgebase.New.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/redflag"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported corpus file format")

type Corpus struct {
	Protocols []protocol.Protocol `json:"protocols" yaml:"protocols"`
	RedFlags  []redflag.RedFlag   `json:"redFlags" yaml:"redFlags"`
}

type Source interface {
	// Name identifies the source in logs.
	Name() string
	Load(ctx context.Context) (*Corpus, error)
}

type builtinSource struct{}

// Builtin returns the corpus authored in this package.
func Builtin() Source { return builtinSource{} }

func (builtinSource) Name() string { return "builtin" }

func (builtinSource) Load(context.Context) (*Corpus, error) {
	return &Corpus{Protocols: builtinProtocols(), RedFlags: builtinRedFlags()}, nil
}

type fileSource struct {
	path string
}

// File reads a YAML (.yaml, .yml) or JSON (.json) corpus document.
func File(path string) Source { return fileSource{path: path} }

func (f fileSource) Name() string { return "file:" + f.path }

func (f fileSource) Load(context.Context) (*Corpus, error) {
	return LoadFile(f.path)
}

// LoadFile decodes a corpus file. Unknown fields are rejected so authoring
// typos surface at load time instead of silently dropping data.
func LoadFile(path string) (*Corpus, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer fh.Close()

	var c Corpus
	if ext == ".json" {
		dec := json.NewDecoder(fh)
		dec.DisallowUnknownFields()
		err = dec.Decode(&c)
	} else {
		dec := yaml.NewDecoder(fh)
		dec.KnownFields(true)
		err = dec.Decode(&c)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding corpus file %s: %w", path, err)
	}
	return &c, nil
}

// Encode writes c as YAML, the format read by LoadFile.
func Encode(c *Corpus) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding corpus: %w", err)
	}
	return out, nil
}

// Reader is implemented by the Postgres corpus repository.
type Reader interface {
	LoadCorpus(ctx context.Context) ([]protocol.Protocol, []redflag.RedFlag, error)
}

type databaseSource struct {
	r Reader
}

// Database reads the corpus imported by corpusctl.
func Database(r Reader) Source { return databaseSource{r: r} }

func (databaseSource) Name() string { return "database" }

func (d databaseSource) Load(ctx context.Context) (*Corpus, error) {
	protocols, flags, err := d.r.LoadCorpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus from database: %w", err)
	}
	return &Corpus{Protocols: protocols, RedFlags: flags}, nil
}
