package broker

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestDecodeMessage_FlatCheckInPayload(t *testing.T) {
	msg := decodeMessage(kafka.Message{
		Topic: "attendees.checked-in",
		Value: []byte(`{"eventId":"264d0ff8-325b-439d-93a8-e433594e4606","attendeeId":42}`),
	})

	if msg.Topic != "attendees.checked-in" {
		t.Fatalf("unexpected topic: %s", msg.Topic)
	}
	if msg.Entity != "attendees" || msg.Action != "checked-in" {
		t.Fatalf("unexpected entity/action: %s/%s", msg.Entity, msg.Action)
	}
	if msg.ResourceID != "42" {
		t.Fatalf("unexpected resource id: %s", msg.ResourceID)
	}
	if msg.Metadata["eventId"] != "264d0ff8-325b-439d-93a8-e433594e4606" {
		t.Fatalf("unexpected metadata: %v", msg.Metadata)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}
}

func TestDecodeMessage_Envelope(t *testing.T) {
	msg := decodeMessage(kafka.Message{
		Topic: "passin.checkins",
		Value: []byte(`{"entity":"attendees","action":"checked-in","resourceId":"7","metadata":{"eventId":"abc"},"data":{"name":"Ana"}}`),
	})

	if msg.Topic != "passin.checkins" {
		t.Fatalf("topic must stay the kafka topic, got %s", msg.Topic)
	}
	if msg.Entity != "attendees" || msg.Action != "checked-in" || msg.ResourceID != "7" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Metadata["eventId"] != "abc" {
		t.Fatalf("unexpected metadata: %v", msg.Metadata)
	}
	if msg.Data == nil {
		t.Fatal("expected data to be kept")
	}
}

func TestDecodeMessage_NonJSON(t *testing.T) {
	msg := decodeMessage(kafka.Message{Topic: "attendees.checked-in", Value: []byte("ping")})

	if msg.Action != "checked-in" || msg.Data != "ping" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}
