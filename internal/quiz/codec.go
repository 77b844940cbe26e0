package quiz

import (
	"encoding/json"
	"fmt"
)

// questionJSON is the on-disk shape used by content packs.
type questionJSON struct {
	ID           string   `json:"id"`
	Kind         Kind     `json:"kind"`
	Prompt       string   `json:"prompt"`
	Category     string   `json:"category,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
	Image        string   `json:"image,omitempty"`
	Options      []string `json:"options,omitempty"`
	CorrectIndex *int     `json:"correct_index,omitempty"`
	CorrectBool  *bool    `json:"correct_bool,omitempty"`
	CorrectText  *string  `json:"correct_text,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{
		ID:          q.ID,
		Kind:        q.Kind,
		Prompt:      q.Prompt,
		Category:    q.Category,
		Explanation: q.Explanation,
		Image:       q.Image,
	}
	switch a := q.Answer.(type) {
	case ChoiceAnswer:
		idx := a.Correct
		out.Options = a.Options
		out.CorrectIndex = &idx
	case BoolAnswer:
		v := a.Correct
		out.CorrectBool = &v
	case TextAnswer:
		s := a.Correct
		out.CorrectText = &s
	}
	return json.Marshal(out)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var in questionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	parsed := Question{
		ID:          in.ID,
		Kind:        in.Kind,
		Prompt:      in.Prompt,
		Category:    in.Category,
		Explanation: in.Explanation,
		Image:       in.Image,
	}

	switch in.Kind {
	case KindMultipleChoice, KindImageChoice:
		if in.CorrectIndex == nil {
			return fmt.Errorf("question %q: missing correct_index", in.ID)
		}
		parsed.Answer = ChoiceAnswer{Options: in.Options, Correct: *in.CorrectIndex}
	case KindTrueFalse:
		if in.CorrectBool == nil {
			return fmt.Errorf("question %q: missing correct_bool", in.ID)
		}
		parsed.Answer = BoolAnswer{Correct: *in.CorrectBool}
	case KindFillBlank:
		if in.CorrectText == nil {
			return fmt.Errorf("question %q: missing correct_text", in.ID)
		}
		parsed.Answer = TextAnswer{Correct: *in.CorrectText}
	default:
		return fmt.Errorf("question %q: unknown kind %q", in.ID, in.Kind)
	}

	*q = parsed
	return nil
}
