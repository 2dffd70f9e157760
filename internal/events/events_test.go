package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

func TestEncodeUsesEntityKeyAndJSONBody(t *testing.T) {
	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	msg, err := encode(Event{Type: CampRegistered, EntityID: 7, OccurredAt: at, Payload: map[string]string{"name": "Drive"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(msg.Key) != "camp/7" {
		t.Fatalf("unexpected key %q", msg.Key)
	}
	if !msg.Time.Equal(at) {
		t.Fatalf("expected message time %s, got %s", at, msg.Time)
	}
	var decoded struct {
		Type     string            `json:"type"`
		EntityID int64             `json:"entityId"`
		Payload  map[string]string `json:"payload"`
	}
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if decoded.Type != "camp.registered" || decoded.EntityID != 7 || decoded.Payload["name"] != "Drive" {
		t.Fatalf("unexpected body %+v", decoded)
	}
}

func TestEncodeRejectsUnmarshalablePayload(t *testing.T) {
	if _, err := encode(Event{Type: DonationRecorded, Payload: make(chan int)}); err == nil {
		t.Fatalf("expected encode error for channel payload")
	}
}

func TestLogPublisherNeverFails(t *testing.T) {
	p := NewLogPublisher()
	if err := p.Publish(context.Background(), Event{Type: UserRegistered, EntityID: 1, OccurredAt: time.Now()}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestEventsOfOneEntityShareAPartition(t *testing.T) {
	registered := Event{Type: CampRegistered, EntityID: 5}
	approved := Event{Type: CampStatusChanged, EntityID: 5}
	if registered.Key() != approved.Key() {
		t.Fatalf("expected one key per camp, got %q and %q", registered.Key(), approved.Key())
	}
	if other := (Event{Type: CampRegistered, EntityID: 6}); other.Key() == registered.Key() {
		t.Fatalf("different camps must not share a key")
	}
	if inv := (Event{Type: InventoryUpdated, EntityID: 5}); inv.Key() == registered.Key() {
		t.Fatalf("inventory row 5 and camp 5 must not share a key")
	}

	partitions := []int{0, 1, 2, 3, 4, 5, 6, 7}
	balancer := &kafka.Hash{}
	first, err := encode(registered)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := encode(approved)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if a, b := balancer.Balance(first, partitions...), balancer.Balance(second, partitions...); a != b {
		t.Fatalf("camp events hashed to partitions %d and %d", a, b)
	}
}

func TestTypeKind(t *testing.T) {
	cases := map[Type]string{
		UserRegistered:    "user",
		CampRegistered:    "camp",
		CampStatusChanged: "camp",
		InventoryUpdated:  "inventory",
		DonationRecorded:  "donation",
	}
	for typ, want := range cases {
		if got := typ.Kind(); got != want {
			t.Fatalf("%s: expected kind %q, got %q", typ, want, got)
		}
	}
}
