package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AnonymousRespondent is recorded when a respondent leaves no email
const AnonymousRespondent = "anonymous"

// Answers maps a 0-based question index to the submitted value.
// Multi-select answers are the selected labels joined with a comma.
type Answers map[int]string

// Answered reports whether index i holds a non-blank answer
func (a Answers) Answered(i int) bool {
	return strings.TrimSpace(a[i]) != ""
}

// UnmarshalJSON accepts each value as a string or an array of strings
func (a *Answers) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Answers, len(raw))
	for key, value := range raw {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return fmt.Errorf("answer key %q is not a question index", key)
		}
		v, err := decodeAnswer(value)
		if err != nil {
			return fmt.Errorf("answer %d: %w", idx, err)
		}
		out[idx] = v
	}
	*a = out
	return nil
}

func decodeAnswer(raw json.RawMessage) (string, error) {
	if string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var selected []string
	if err := json.Unmarshal(raw, &selected); err == nil {
		kept := selected[:0]
		for _, label := range selected {
			if label = strings.TrimSpace(label); label != "" {
				kept = append(kept, label)
			}
		}
		return FormatOptions(kept), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("unsupported answer value %s", string(raw))
}

// Response is one respondent's submission for a survey
type Response struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	SurveyID        string    `json:"surveyId" bson:"surveyId"`
	Answers         Answers   `json:"answers" bson:"answers"`
	RespondentEmail string    `json:"respondentEmail" bson:"respondentEmail"`
	SubmittedAt     time.Time `json:"submittedAt" bson:"submittedAt"`
}

// Submission is the outcome of collecting a response.
// Simulated submissions were accepted but never stored.
type Submission struct {
	Response  *Response `json:"response"`
	Persisted bool      `json:"persisted"`
	Simulated bool      `json:"simulated"`
}
