package ws

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
)

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		if !ok {
			t.Fatal("Send closed before a message arrived")
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Failed to decode message: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for message")
	}
	return Message{}
}

func TestHubPublishReachesSurveySubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	watcher := NewConnection("survey-1", "u1")
	other := NewConnection("survey-2", "u2")
	if !hub.Register(watcher) || !hub.Register(other) {
		t.Fatal("Register failed on an open hub")
	}

	hub.Publish("survey-1", string(MsgResponseSubmitted), map[string]string{"responseId": "r1"})

	msg := receive(t, watcher)
	if msg.Type != MsgResponseSubmitted {
		t.Errorf("Expected type %q, got %q", MsgResponseSubmitted, msg.Type)
	}
	var payload map[string]string
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload["responseId"] != "r1" {
		t.Errorf("Expected responseId r1, got %v", payload)
	}

	select {
	case data := <-other.Send:
		t.Errorf("Expected no message for another survey, got %s", data)
	case <-time.After(50 * time.Millisecond):
	}

	if n := hub.Subscribers("survey-1"); n != 1 {
		t.Errorf("Expected 1 subscriber, got %d", n)
	}
}

func TestHubUnregisterClosesQueue(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	conn := NewConnection("survey-1", "u1")
	hub.Register(conn)
	hub.Unregister(conn)

	select {
	case _, ok := <-conn.Send:
		if ok {
			t.Error("Expected Send to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for Send to close")
	}
	if n := hub.Subscribers("survey-1"); n != 0 {
		t.Errorf("Expected no subscribers, got %d", n)
	}
}

func TestHubClose(t *testing.T) {
	hub := NewHub(zap.NewNop())

	conn := NewConnection("survey-1", "u1")
	hub.Register(conn)
	hub.Close()

	select {
	case _, ok := <-conn.Send:
		if ok {
			t.Error("Expected Send to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for Send to close")
	}

	if hub.Register(NewConnection("survey-1", "u2")) {
		t.Error("Expected Register to fail on a closed hub")
	}
	hub.Publish("survey-1", string(MsgResponseSubmitted), nil)
	hub.Close()
}
