package packgen

import (
	"fmt"
	"strings"

	"github.com/sjostromVilgot/Facta-sub000/internal/content"
)

// Validator checks a generated pack before it is written.
type Validator interface {
	Name() string
	Validate(p *content.Pack, input GenerateInput) *ValidationError
}

// ValidationError describes why a pack failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator requires the requested counts and question kinds.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *content.Pack, input GenerateInput) *ValidationError {
	if len(p.Facts) < input.Facts {
		return &ValidationError{v.Name(), fmt.Sprintf("got %d facts, want %d", len(p.Facts), input.Facts)}
	}
	if len(p.Questions) < input.Questions {
		return &ValidationError{v.Name(), fmt.Sprintf("got %d questions, want %d", len(p.Questions), input.Questions)}
	}
	for _, q := range p.Questions {
		allowed := false
		for _, k := range input.Kinds {
			if q.Kind == k {
				allowed = true
				break
			}
		}
		if !allowed {
			return &ValidationError{v.Name(), fmt.Sprintf("question %q has unrequested kind %s", q.Prompt, q.Kind)}
		}
	}
	return nil
}

// DuplicateValidator rejects packs that repeat an existing fact title or
// question prompt, compared case-insensitively.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(p *content.Pack, input GenerateInput) *ValidationError {
	seen := make(map[string]bool, len(input.Existing))
	for _, s := range input.Existing {
		seen[normalize(s)] = true
	}
	check := func(s string) *ValidationError {
		n := normalize(s)
		if seen[n] {
			return &ValidationError{v.Name(), fmt.Sprintf("duplicate item %q", s)}
		}
		seen[n] = true
		return nil
	}
	for _, f := range p.Facts {
		if err := check(f.Title); err != nil {
			return err
		}
	}
	for _, q := range p.Questions {
		if err := check(q.Prompt); err != nil {
			return err
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
