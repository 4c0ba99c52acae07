package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// QuestionRef is either a bare question identifier or a fully embedded question.
// The zero value is an empty identifier reference.
type QuestionRef struct {
	id       string
	question *Question
}

// RefID builds an identifier-only reference.
func RefID(id string) QuestionRef {
	return QuestionRef{id: id}
}

// RefFull builds a reference that embeds the whole question.
func RefFull(question Question) QuestionRef {
	q := question
	return QuestionRef{id: question.ID, question: &q}
}

// IsFull reports whether the reference embeds a question.
func (r QuestionRef) IsFull() bool {
	return r.question != nil
}

// ID returns the referenced question identifier for either variant.
func (r QuestionRef) ID() string {
	if r.question != nil {
		return r.question.ID
	}
	return r.id
}

// Question returns the embedded question when the reference is full.
func (r QuestionRef) Question() (Question, bool) {
	if r.question == nil {
		return Question{}, false
	}
	return *r.question, true
}

// MarshalJSON encodes identifier references as strings and full references as objects.
func (r QuestionRef) MarshalJSON() ([]byte, error) {
	if r.question != nil {
		return json.Marshal(r.question)
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON decodes a string or an object into the matching variant.
func (r *QuestionRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("question ref: empty value")
	}
	switch trimmed[0] {
	case '"':
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return fmt.Errorf("question ref id: %w", err)
		}
		*r = RefID(id)
		return nil
	case '{':
		var question Question
		if err := json.Unmarshal(trimmed, &question); err != nil {
			return fmt.Errorf("question ref object: %w", err)
		}
		*r = RefFull(question)
		return nil
	default:
		return fmt.Errorf("question ref: unsupported value %s", string(trimmed))
	}
}
