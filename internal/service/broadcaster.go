package service

// Broadcaster publishes survey events to live subscribers
type Broadcaster interface {
	Publish(surveyID string, msgType string, payload interface{})
}
