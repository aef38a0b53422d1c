package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty field", raw: "", want: []string{}},
		{name: "whitespace field", raw: "   ", want: []string{}},
		{name: "single option", raw: "Yes", want: []string{"Yes"}},
		{name: "trims each option", raw: " Red , Green,Blue ", want: []string{"Red", "Green", "Blue"}},
		{name: "keeps inner empty segments", raw: "a,,b", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOptions(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseOptions(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestOptionListIsIdempotent(t *testing.T) {
	q := Question{
		Type:    QuestionTypeCheckbox,
		Prompt:  "Pick some",
		Options: ParseOptions("Dashboard, Reports,Analytics"),
	}

	first := q.OptionList()
	second := q.OptionList()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical lists, got %v and %v", first, second)
	}

	first[0] = "changed"
	if q.Options[0] != "Dashboard" {
		t.Error("OptionList must return a copy")
	}
}

func TestOptionListWithoutOptions(t *testing.T) {
	q := Question{Type: QuestionTypeRadio, Prompt: "No choices"}
	if got := q.OptionList(); len(got) != 0 {
		t.Errorf("Expected no options, got %v", got)
	}
}

func TestCheckboxSelectionRoundTrip(t *testing.T) {
	q := Question{
		Type:    QuestionTypeCheckbox,
		Prompt:  "Which features do you use?",
		Options: ParseOptions("Dashboard,Reports,Analytics,Integrations,Mobile App,API"),
	}
	options := q.OptionList()

	selections := [][]string{
		{options[0]},
		{options[1], options[4]},
		{options[5], options[0], options[2]},
		options,
	}
	for _, selected := range selections {
		joined := FormatOptions(selected)
		got := ParseOptions(joined)
		if !reflect.DeepEqual(got, selected) {
			t.Errorf("Round trip of %v gave %v", selected, got)
		}
	}
}

func TestQuestionUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Question
	}{
		{
			name: "comma-joined options",
			body: `{"type":"radio","prompt":"Rate us","options":"Good, Bad","required":true}`,
			want: Question{Type: QuestionTypeRadio, Prompt: "Rate us", Options: []string{"Good", "Bad"}, Required: true},
		},
		{
			name: "array options",
			body: `{"type":"checkbox","prompt":"Pick","options":[" a","b "]}`,
			want: Question{Type: QuestionTypeCheckbox, Prompt: "Pick", Options: []string{"a", "b"}},
		},
		{
			name: "legacy question field",
			body: `{"type":"text","question":"Your name?","required":true}`,
			want: Question{Type: QuestionTypeText, Prompt: "Your name?", Required: true},
		},
		{
			name: "unknown type falls back to text",
			body: `{"type":"slider","prompt":"How much?"}`,
			want: Question{Type: QuestionTypeText, Prompt: "How much?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Question
			if err := json.Unmarshal([]byte(tt.body), &got); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestQuestionUnmarshalRejectsBadOptions(t *testing.T) {
	var q Question
	if err := json.Unmarshal([]byte(`{"type":"radio","prompt":"x","options":42}`), &q); err == nil {
		t.Error("Expected error for numeric options")
	}
}

func TestQuestionMarshalJoinsOptions(t *testing.T) {
	q := Question{Type: QuestionTypeRadio, Prompt: "Rate", Options: []string{"Good", "Bad"}, Required: true}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if out["options"] != "Good,Bad" {
		t.Errorf("Expected options 'Good,Bad', got %v", out["options"])
	}
	if out["prompt"] != "Rate" {
		t.Errorf("Expected prompt 'Rate', got %v", out["prompt"])
	}
}
