package packgen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run on every generated pack, in order. The first failure
	// stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorItems caps how many existing prompts and titles are listed in
	// the prompt for deduplication.
	MaxPriorItems int
}

// DefaultConfig returns the standard validator chain and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:     4096,
		Temperature:   0.8,
		MaxPriorItems: 40,
	}
}
