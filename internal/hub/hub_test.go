package hub

import (
	"encoding/json"
	"testing"
)

func recv(t *testing.T, c Client) Event {
	t.Helper()
	select {
	case data, ok := <-c:
		if !ok {
			t.Fatal("client channel closed unexpectedly")
		}
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return event
	default:
		t.Fatal("expected a buffered event, got none")
	}
	return Event{}
}

func assertEmpty(t *testing.T, c Client) {
	t.Helper()
	select {
	case data, ok := <-c:
		if ok {
			t.Fatalf("expected no event, got %s", data)
		}
	default:
	}
}

func TestBroadcastDeliversExactlyOnce(t *testing.T) {
	h := NewHub()
	client := make(Client, 4)
	h.Subscribe(client, 1)

	h.Broadcast(1, Event{Type: "message", Payload: "hi"})

	event := recv(t, client)
	if event.Type != "message" {
		t.Errorf("event type = %q, want %q", event.Type, "message")
	}
	if event.Payload != "hi" {
		t.Errorf("event payload = %v, want %q", event.Payload, "hi")
	}
	assertEmpty(t, client)
}

func TestBroadcastScopedToTopic(t *testing.T) {
	h := NewHub()
	one := make(Client, 4)
	two := make(Client, 4)
	h.Subscribe(one, 1)
	h.Subscribe(two, 2)

	h.Broadcast(1, Event{Type: "message", Payload: "for chat 1"})

	recv(t, one)
	assertEmpty(t, two)
}

func TestSubscribeManyTopics(t *testing.T) {
	h := NewHub()
	client := make(Client, 4)
	h.Subscribe(client, 1, 2, 3)

	h.Broadcast(1, Event{Type: "message", Payload: "a"})
	h.Broadcast(3, Event{Type: "message", Payload: "b"})

	if got := recv(t, client).Payload; got != "a" {
		t.Errorf("first payload = %v, want %q", got, "a")
	}
	if got := recv(t, client).Payload; got != "b" {
		t.Errorf("second payload = %v, want %q", got, "b")
	}
}

func TestUnsubscribedClientReceivesNothing(t *testing.T) {
	h := NewHub()
	client := make(Client, 4)
	h.Subscribe(client, 1)
	h.UnsubscribeAll(client)

	h.Broadcast(1, Event{Type: "message", Payload: "late"})

	if _, ok := <-client; ok {
		t.Fatal("expected channel to be closed with nothing buffered")
	}
}

func TestUnsubscribeAllIsIdempotent(t *testing.T) {
	h := NewHub()
	client := make(Client, 4)
	h.Subscribe(client, 1, 2)

	h.UnsubscribeAll(client)
	// A second call must not panic on the already-closed channel.
	h.UnsubscribeAll(client)
}

func TestSlowClientDoesNotBlockBroadcast(t *testing.T) {
	h := NewHub()
	slow := make(Client, 1)
	healthy := make(Client, 4)
	h.Subscribe(slow, 1)
	h.Subscribe(healthy, 1)

	// The second and third broadcasts overflow the slow client's buffer; they
	// must be dropped for it without stalling delivery to the healthy one.
	for i := 0; i < 3; i++ {
		h.Broadcast(1, Event{Type: "message", Payload: i})
	}

	if got := len(slow); got != 1 {
		t.Errorf("slow client buffered %d events, want %d", got, 1)
	}
	if got := len(healthy); got != 3 {
		t.Errorf("healthy client buffered %d events, want %d", got, 3)
	}
}

func TestCloseTearsDownEverything(t *testing.T) {
	h := NewHub()
	client := make(Client, 4)
	h.Subscribe(client, 1)

	h.Close()

	if _, ok := <-client; ok {
		t.Fatal("expected channel closed after hub close")
	}

	// After close, subscriptions are refused and broadcasts go nowhere.
	late := make(Client, 4)
	h.Subscribe(late, 1)
	h.Broadcast(1, Event{Type: "message", Payload: "x"})
	assertEmpty(t, late)
}
