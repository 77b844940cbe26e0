package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the answer shape of a question.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindImageChoice    Kind = "image_choice"
	KindFillBlank      Kind = "fill_blank"
)

var (
	ErrEmptyAnswer = errors.New("empty answer")
	ErrAnswerKind  = errors.New("answer does not match question kind")
)

// Question is a single quiz item. It is immutable once loaded.
type Question struct {
	ID          string
	Kind        Kind
	Prompt      string
	Category    string
	Explanation string

	// Image is the illustration shown for image-choice questions.
	Image string

	Answer Answer
}

// Answer is the correct-answer data of a question. Exactly one of
// ChoiceAnswer, BoolAnswer or TextAnswer.
type Answer interface {
	isAnswer()
}

// ChoiceAnswer backs multiple-choice and image-choice questions.
type ChoiceAnswer struct {
	Options []string
	Correct int
}

// BoolAnswer backs true/false questions.
type BoolAnswer struct {
	Correct bool
}

// TextAnswer backs fill-in-the-blank questions.
type TextAnswer struct {
	Correct string
}

func (ChoiceAnswer) isAnswer() {}
func (BoolAnswer) isAnswer()   {}
func (TextAnswer) isAnswer()   {}

// Response is what the player submitted.
type Response struct {
	kind  responseKind
	index int
	value bool
	text  string
}

type responseKind int

const (
	responseNone responseKind = iota
	responseChoice
	responseBool
	responseText
)

// Choice is a response selecting option i.
func Choice(i int) Response { return Response{kind: responseChoice, index: i} }

// Bool is a true/false response.
func Bool(v bool) Response { return Response{kind: responseBool, value: v} }

// Text is a free-text response.
func Text(s string) Response { return Response{kind: responseText, text: s} }

// String renders the response for feedback and logs.
func (r Response) String() string {
	switch r.kind {
	case responseChoice:
		return fmt.Sprintf("option %d", r.index+1)
	case responseBool:
		if r.value {
			return "true"
		}
		return "false"
	case responseText:
		return r.text
	}
	return ""
}

// Evaluate reports whether r is the correct answer to q. Free text is
// compared trimmed and case-insensitively.
func (q Question) Evaluate(r Response) (bool, error) {
	switch a := q.Answer.(type) {
	case ChoiceAnswer:
		if r.kind != responseChoice || r.index < 0 || r.index >= len(a.Options) {
			return false, ErrAnswerKind
		}
		return r.index == a.Correct, nil
	case BoolAnswer:
		if r.kind != responseBool {
			return false, ErrAnswerKind
		}
		return r.value == a.Correct, nil
	case TextAnswer:
		if r.kind != responseText {
			return false, ErrAnswerKind
		}
		given := strings.TrimSpace(r.text)
		if given == "" {
			return false, ErrEmptyAnswer
		}
		return strings.EqualFold(given, strings.TrimSpace(a.Correct)), nil
	}
	return false, fmt.Errorf("question %q: %w", q.ID, ErrAnswerKind)
}

// CorrectText renders the correct answer for feedback.
func (q Question) CorrectText() string {
	switch a := q.Answer.(type) {
	case ChoiceAnswer:
		if a.Correct >= 0 && a.Correct < len(a.Options) {
			return a.Options[a.Correct]
		}
	case BoolAnswer:
		if a.Correct {
			return "True"
		}
		return "False"
	case TextAnswer:
		return a.Correct
	}
	return ""
}

// Validate checks that the answer shape matches the kind.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("question %q: empty prompt", q.ID)
	}
	switch a := q.Answer.(type) {
	case ChoiceAnswer:
		if q.Kind != KindMultipleChoice && q.Kind != KindImageChoice {
			return fmt.Errorf("question %q: choice answer on %s: %w", q.ID, q.Kind, ErrAnswerKind)
		}
		if len(a.Options) < 2 {
			return fmt.Errorf("question %q: need at least two options", q.ID)
		}
		if a.Correct < 0 || a.Correct >= len(a.Options) {
			return fmt.Errorf("question %q: correct index %d out of range", q.ID, a.Correct)
		}
	case BoolAnswer:
		if q.Kind != KindTrueFalse {
			return fmt.Errorf("question %q: boolean answer on %s: %w", q.ID, q.Kind, ErrAnswerKind)
		}
	case TextAnswer:
		if q.Kind != KindFillBlank {
			return fmt.Errorf("question %q: text answer on %s: %w", q.ID, q.Kind, ErrAnswerKind)
		}
		if strings.TrimSpace(a.Correct) == "" {
			return fmt.Errorf("question %q: empty correct text", q.ID)
		}
	default:
		return fmt.Errorf("question %q: missing answer", q.ID)
	}
	return nil
}
