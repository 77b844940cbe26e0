package packgen

import "github.com/sjostromVilgot/Facta-sub000/internal/llm"

// PackSchema is the structured output shape requested from the LLM. Every
// field is required so strict structured-output modes accept it; fields
// that do not apply to a question kind carry -1, false or "".
var PackSchema = &llm.Schema{
	Name:        "trivia-pack",
	Description: "A batch of trivia facts and quiz questions on one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"facts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":    map[string]any{"type": "string", "description": "One-line headline of the fact"},
						"body":     map[string]any{"type": "string", "description": "Two or three sentences explaining the fact"},
						"category": map[string]any{"type": "string", "description": "Short category label, e.g. Animals, Space"},
						"emoji":    map[string]any{"type": "string", "description": "A single emoji illustrating the fact"},
						"source":   map[string]any{"type": "string", "description": "A reputable source name"},
					},
					"required":             []any{"title", "body", "category", "emoji", "source"},
					"additionalProperties": false,
				},
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type": "string",
							"enum": []any{"multiple_choice", "true_false", "image_choice", "fill_blank"},
						},
						"prompt":      map[string]any{"type": "string"},
						"category":    map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string", "description": "One sentence shown after answering"},
						"image":       map[string]any{"type": "string", "description": "An emoji picture for image_choice, else empty"},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for multiple_choice and image_choice, else empty",
						},
						"correct_index": map[string]any{"type": "integer", "description": "Index of the correct option, -1 when not a choice question"},
						"correct_bool":  map[string]any{"type": "boolean", "description": "Answer for true_false, false otherwise"},
						"correct_text":  map[string]any{"type": "string", "description": "Single missing word for fill_blank, else empty"},
					},
					"required": []any{
						"kind", "prompt", "category", "explanation", "image",
						"options", "correct_index", "correct_bool", "correct_text",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"facts", "questions"},
		"additionalProperties": false,
	},
}
