package llm

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var compiled sync.Map // schema name → *jsonschema.Schema

// validateResponse checks raw against s. Failures are ErrInvalidResponse.
func validateResponse(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalidResponse(raw, "not JSON: %w", err)
	}
	sch, err := compile(s)
	if err != nil {
		return invalidResponse(raw, "schema %s: %w", s.Name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalidResponse(raw, "does not match %s: %w", s.Name, err)
	}
	return nil
}

func compile(s *Schema) (*jsonschema.Schema, error) {
	if sch, ok := compiled.Load(s.Name); ok {
		return sch.(*jsonschema.Schema), nil
	}

	// Round-trip so Go literals ([]string, int) become the JSON values the
	// compiler expects.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, err
	}

	url := "mem://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	actual, _ := compiled.LoadOrStore(s.Name, sch)
	return actual.(*jsonschema.Schema), nil
}
