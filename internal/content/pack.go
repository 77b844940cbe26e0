package content

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/sjostromVilgot/Facta-sub000/internal/quiz"
)

// SupportedMajor is the pack format major version this build reads.
const SupportedMajor = "v1"

// ErrIncompatiblePack is returned for packs whose version major differs
// from SupportedMajor.
var ErrIncompatiblePack = errors.New("content: incompatible pack version")

//go:embed data/pack.schema.json
var packSchemaJSON []byte

const packSchemaURL = "schema://facta/pack.schema.json"

var compilePackSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(packSchemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("parse pack schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(packSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(packSchemaURL)
})

// Pack is a versioned bundle of facts and questions.
type Pack struct {
	Version   string          `json:"version"`
	Name      string          `json:"name,omitempty"`
	Facts     []Fact          `json:"facts,omitempty"`
	Questions []quiz.Question `json:"questions,omitempty"`
}

// ParsePack validates raw against the pack schema, checks the version and
// decodes it. Every question must also pass quiz.Question.Validate.
func ParsePack(raw []byte) (*Pack, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compilePackSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var p Pack
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	if err := checkVersion(p.Version); err != nil {
		return nil, err
	}
	for _, q := range p.Questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func checkVersion(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q: %w", v, ErrIncompatiblePack)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("version %s (major %s, want %s): %w", v, major, SupportedMajor, ErrIncompatiblePack)
	}
	return nil
}
