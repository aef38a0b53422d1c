package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// QuestionType defines the input kind of a question
type QuestionType string

const (
	QuestionTypeText     QuestionType = "text"
	QuestionTypeTextarea QuestionType = "textarea"
	QuestionTypeRadio    QuestionType = "radio"
	QuestionTypeCheckbox QuestionType = "checkbox"
	QuestionTypeEmail    QuestionType = "email"
	QuestionTypeNumber   QuestionType = "number"
)

// optionSeparator joins options and multi-select answers on the JSON boundary
const optionSeparator = ","

// Valid reports whether t is one of the known question types
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeTextarea, QuestionTypeRadio,
		QuestionTypeCheckbox, QuestionTypeEmail, QuestionTypeNumber:
		return true
	}
	return false
}

// Question is one entry of a survey definition
type Question struct {
	Type     QuestionType `json:"type" bson:"type"`
	Prompt   string       `json:"prompt" bson:"prompt"`
	Options  []string     `json:"options,omitempty" bson:"options,omitempty"` // radio/checkbox only
	Required bool         `json:"required" bson:"required"`
}

// OptionList returns the ordered choices of q. An empty choice list is never an error.
func (q Question) OptionList() []string {
	out := make([]string, len(q.Options))
	copy(out, q.Options)
	return out
}

// ParseOptions splits a comma-joined option field, trimming each element.
// A blank field yields an empty list; inner empty segments are kept.
func ParseOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, optionSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// FormatOptions joins options into the external comma-joined form
func FormatOptions(options []string) string {
	return strings.Join(options, optionSeparator)
}

type questionJSON struct {
	Type     QuestionType `json:"type"`
	Prompt   string       `json:"prompt"`
	Options  string       `json:"options,omitempty"`
	Required bool         `json:"required"`
}

type questionInputJSON struct {
	Type     QuestionType    `json:"type"`
	Prompt   *string         `json:"prompt"`
	Question *string         `json:"question"` // legacy name for prompt
	Options  json.RawMessage `json:"options"`
	Required bool            `json:"required"`
}

// MarshalJSON emits options as a single comma-joined string
func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionJSON{
		Type:     q.Type,
		Prompt:   q.Prompt,
		Options:  FormatOptions(q.Options),
		Required: q.Required,
	})
}

// UnmarshalJSON accepts options either as a comma-joined string or as an array
func (q *Question) UnmarshalJSON(data []byte) error {
	var in questionInputJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	q.Type = in.Type
	if !q.Type.Valid() {
		q.Type = QuestionTypeText
	}
	q.Required = in.Required

	q.Prompt = ""
	if in.Prompt != nil {
		q.Prompt = *in.Prompt
	} else if in.Question != nil {
		q.Prompt = *in.Question
	}

	options, err := decodeOptions(in.Options)
	if err != nil {
		return fmt.Errorf("question options: %w", err)
	}
	q.Options = options
	return nil
}

func decodeOptions(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return ParseOptions(joined), nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.New("expected string or array of strings")
	}
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
	return list, nil
}
