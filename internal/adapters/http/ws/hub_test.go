package ws

import (
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, printer string) *Client {
	return &Client{
		hub:     hub,
		printer: printer,
		send:    make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, "kitchen")

	// Register client
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms["kitchen"] == nil {
		t.Fatal("printer room not created")
	}
	if !hub.rooms["kitchen"][client] {
		t.Fatal("client not registered in printer room")
	}
}

func TestHubUnregistrationCleansUpRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub, "kitchen")
	client2 := mockClient(hub, "kitchen")

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms["kitchen"]) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(hub.rooms["kitchen"]))
	}
	hub.mu.RUnlock()

	hub.unregister <- client1
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms["kitchen"]) != 1 {
		t.Fatalf("expected 1 client after first unregister, got %d", len(hub.rooms["kitchen"]))
	}
	hub.mu.RUnlock()

	hub.unregister <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	// Room should be cleaned up when empty
	if hub.rooms["kitchen"] != nil {
		t.Fatal("printer room not cleaned up after last client unregistered")
	}
}

func TestNotifyReachesOnlyTargetPrinter(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	kitchen := mockClient(hub, "kitchen")
	bar := mockClient(hub, "bar")

	hub.register <- kitchen
	hub.register <- bar
	time.Sleep(10 * time.Millisecond)

	hub.Notify("kitchen", "kot_printed", map[string]string{"order_id": "ORD-20260115-0001"})

	// Kitchen client receives the event
	select {
	case msg := <-kitchen.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "kot_printed" {
			t.Errorf("expected type 'kot_printed', got '%s'", received.Type)
		}
		payload, ok := received.Payload.(map[string]interface{})
		if !ok {
			t.Fatalf("unexpected payload shape: %T", received.Payload)
		}
		if payload["order_id"] != "ORD-20260115-0001" {
			t.Errorf("unexpected payload: %v", payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("kitchen client did not receive message")
	}

	// Bar client must not receive a kitchen event
	select {
	case <-bar.send:
		t.Fatal("bar client should not have received kitchen event")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message received
	}
}

func TestNotifyTargetedEventReachesFirehoseRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	expo := mockClient(hub, "")
	hub.register <- expo
	time.Sleep(10 * time.Millisecond)

	hub.Notify("bar", "item_status", map[string]string{"status": "ready"})

	select {
	case msg := <-expo.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "item_status" {
			t.Errorf("expected type 'item_status', got '%s'", received.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("firehose client did not receive targeted event")
	}
}

func TestNotifyEmptyPrinterFansOutToEveryRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clients := []*Client{
		mockClient(hub, "kitchen"),
		mockClient(hub, "bar"),
		mockClient(hub, ""),
	}
	for _, client := range clients {
		hub.register <- client
	}
	time.Sleep(10 * time.Millisecond)

	hub.Notify("", "order_cancelled", map[string]string{"order_id": "ORD-20260115-0002"})

	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "order_cancelled" {
				t.Errorf("client%d: expected type 'order_cancelled', got '%s'", i+1, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive broadcast", i+1)
		}
	}
}

func TestNotifyNonExistentPrinterIsSilent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	kitchen := mockClient(hub, "kitchen")
	hub.register <- kitchen
	time.Sleep(10 * time.Millisecond)

	hub.Notify("receipt", "printer_test", map[string]string{"printer": "receipt"})

	select {
	case <-kitchen.send:
		t.Fatal("kitchen client should not receive event for a different printer")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message
	}
}

func TestEventSerialization(t *testing.T) {
	testCases := []struct {
		name  string
		event Event
	}{
		{
			name: "kot printed event",
			event: Event{
				Type:    "kot_printed",
				Payload: map[string]interface{}{"order_id": "ORD-20260115-0003", "printer": "kitchen"},
			},
		},
		{
			name: "item status event",
			event: Event{
				Type:    "item_status",
				Payload: map[string]interface{}{"item_id": float64(12), "status": "preparing"},
			},
		},
		{
			name: "order ready event",
			event: Event{
				Type:    "order_ready",
				Payload: map[string]interface{}{"order_id": "ORD-20260115-0004"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.event)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}

			// Verify we can unmarshal back
			var decoded Event
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if decoded.Type != tc.event.Type {
				t.Errorf("Type mismatch: got %s, want %s", decoded.Type, tc.event.Type)
			}
		})
	}
}
