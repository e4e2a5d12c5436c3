package log

import (
	"bytes"
	"testing"
	"time"
)

func sampleEvent() Event {
	dur := 48 * time.Millisecond
	return Event{
		Timestamp: time.Date(2024, 3, 10, 12, 0, 0, 123456789, time.UTC),
		SessionID: "7d444840-9dc0-11d1-b245-5ffdce74fad2",
		Direction: DirectionOut,
		Layer:     LayerAction,
		Category:  CategoryMessage,
		Endpoint:  "192.168.1.10:80",
		Action: &ActionEvent{
			Action:   "GetSystemDateAndTime",
			Outcome:  "resolved",
			Duration: &dur,
		},
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	event := sampleEvent()

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}

	if decoded.SessionID != event.SessionID {
		t.Errorf("SessionID = %q, want %q", decoded.SessionID, event.SessionID)
	}
	if decoded.Layer != LayerAction || decoded.Direction != DirectionOut {
		t.Errorf("layer/direction = %v/%v", decoded.Layer, decoded.Direction)
	}
	if decoded.Action == nil {
		t.Fatal("Action payload missing after roundtrip")
	}
	if decoded.Action.Action != "GetSystemDateAndTime" {
		t.Errorf("Action.Action = %q", decoded.Action.Action)
	}
	if decoded.Action.Duration == nil || *decoded.Action.Duration != 48*time.Millisecond {
		t.Errorf("Action.Duration = %v", decoded.Action.Duration)
	}
	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, event.Timestamp)
	}
}

func TestEncodeEventDeterministic(t *testing.T) {
	event := sampleEvent()

	first, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("first encode: %v", err)
	}
	second, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("second encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("canonical encoding produced different bytes for the same event")
	}
}

func TestDecodeEventMalformed(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00, 0x01}); err == nil {
		t.Error("malformed CBOR did not produce an error")
	}
}

func TestEncoderStream(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	for i := 0; i < 3; i++ {
		if err := enc.Encode(sampleEvent()); err != nil {
			t.Fatalf("encode %d: %v", i, err)
		}
	}

	dec := NewDecoder(&buf)
	count := 0
	for {
		var event Event
		if err := dec.Decode(&event); err != nil {
			break
		}
		count++
	}
	if count != 3 {
		t.Errorf("decoded %d events, want 3", count)
	}
}
