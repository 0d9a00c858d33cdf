package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func waitForProviders(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ConnectedProviders() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected %d connected providers, got %d", want, hub.ConnectedProviders())
}

func TestHubDeliversToConnectedProvider(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, ProviderID: 1, Send: make(chan []byte, 8)}
	hub.Register <- client
	waitForProviders(t, hub, 1)

	hub.SendToProvider(1, &Message{Type: "booking_created", BookingID: 5, Title: "New booking"})

	select {
	case data := <-client.Send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msg.Type != "booking_created" || msg.BookingID != 5 {
			t.Fatalf("unexpected message: %+v", msg)
		}
		if msg.Timestamp.IsZero() {
			t.Fatal("timestamp not set")
		}
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubDropsForUnknownProvider(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Must not block or panic
	hub.SendToProvider(99, &Message{Type: "booking_created"})
}

func TestHubReplacesExistingConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := &Client{Hub: hub, ProviderID: 1, Send: make(chan []byte, 8)}
	hub.Register <- first
	waitForProviders(t, hub, 1)

	second := &Client{Hub: hub, ProviderID: 1, Send: make(chan []byte, 8)}
	hub.Register <- second
	waitForProviders(t, hub, 1)

	// The first connection's channel is closed on replacement
	select {
	case _, ok := <-first.Send:
		if ok {
			t.Fatal("expected the replaced channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("replaced channel never closed")
	}

	hub.SendToProvider(1, &Message{Type: "booking_approved"})
	select {
	case <-second.Send:
	case <-time.After(time.Second):
		t.Fatal("message not delivered to the new connection")
	}

	// Unregistering the stale client must not evict the new one
	hub.Unregister <- first
	time.Sleep(10 * time.Millisecond)
	if hub.ConnectedProviders() != 1 {
		t.Fatalf("stale unregister evicted the live connection")
	}
}
