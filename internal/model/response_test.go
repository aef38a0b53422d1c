package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestAnswersUnmarshalJSON(t *testing.T) {
	var got Answers
	body := `{"0":"Alice","1":["Dashboard","API"],"2":null,"3":42}`
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := Answers{0: "Alice", 1: "Dashboard,API", 2: "", 3: "42"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Got %#v, want %#v", got, want)
	}
}

func TestAnswersUnmarshalDropsBlankSelections(t *testing.T) {
	var got Answers
	body := `{"0":["",""],"1":[" A ","","C"],"2":[]}`
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := Answers{0: "", 1: "A,C", 2: ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Got %#v, want %#v", got, want)
	}
	if got.Answered(0) {
		t.Error("Expected blank selections not to count as an answer")
	}
}

func TestAnswersUnmarshalRejectsBadKeys(t *testing.T) {
	for _, body := range []string{`{"name":"x"}`, `{"-1":"x"}`} {
		var a Answers
		if err := json.Unmarshal([]byte(body), &a); err == nil {
			t.Errorf("Expected error for %s", body)
		}
	}
}

func TestAnswersAnswered(t *testing.T) {
	a := Answers{0: "yes", 1: "   ", 2: ""}

	if !a.Answered(0) {
		t.Error("Expected index 0 answered")
	}
	for _, i := range []int{1, 2, 3} {
		if a.Answered(i) {
			t.Errorf("Expected index %d unanswered", i)
		}
	}
}

func TestValidationFailedErrorListsEveryViolation(t *testing.T) {
	err := error(&ValidationFailedError{Violations: []RequiredFieldMissing{{Index: 0}, {Index: 2}}})

	msg := err.Error()
	if !strings.Contains(msg, "question 1") || !strings.Contains(msg, "question 3") {
		t.Errorf("Expected both questions in message, got %q", msg)
	}

	var failed *ValidationFailedError
	if !errors.As(err, &failed) || len(failed.Violations) != 2 {
		t.Errorf("Expected ValidationFailedError with 2 violations, got %v", err)
	}
}
