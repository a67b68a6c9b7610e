package auth

import (
	"testing"
	"time"
)

func TestBus_PublishAssignsMonotonicSeq(t *testing.T) {
	bus := NewBus()

	seq1 := bus.Publish(EventSignedIn, "user-1", "session-1")
	seq2 := bus.Publish(EventSignedOut, "user-1", "session-1")
	seq3 := bus.Publish(EventSignedIn, "user-1", "session-2")

	if !(seq1 < seq2 && seq2 < seq3) {
		t.Errorf("sequence numbers are not monotonic: %d, %d, %d", seq1, seq2, seq3)
	}
}

func TestBus_SubscriberReceivesEvents(t *testing.T) {
	bus := NewBus()
	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	bus.Publish(EventSignedIn, "user-1", "session-1")

	select {
	case event := <-events:
		if event.Type != EventSignedIn {
			t.Errorf("event.Type = %q, want %q", event.Type, EventSignedIn)
		}
		if event.UserID != "user-1" {
			t.Errorf("event.UserID = %q, want %q", event.UserID, "user-1")
		}
	case <-time.After(time.Second):
		t.Fatal("expected event")
	}
}

func TestBus_MultipleSubscribersReceiveSameEvent(t *testing.T) {
	bus := NewBus()
	ch1, unsub1 := bus.Subscribe()
	defer unsub1()
	ch2, unsub2 := bus.Subscribe()
	defer unsub2()

	seq := bus.Publish(EventSignedOut, "user-1", "session-1")

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Seq != seq {
				t.Errorf("subscriber %d: event.Seq = %d, want %d", i, event.Seq, seq)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: expected event", i)
		}
	}
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	events, unsubscribe := bus.Subscribe()

	unsubscribe()
	bus.Publish(EventSignedIn, "user-1", "session-1")

	// 解除後はチャネルがクローズされている
	if _, ok := <-events; ok {
		t.Error("expected closed channel after unsubscribe")
	}
}

func TestBus_UnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()
	_, unsubscribe := bus.Subscribe()

	unsubscribe()
	unsubscribe() // 2回呼んでもpanicしない
}

func TestBus_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := NewBus()
	_, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	// バッファ（16件）を超えてもPublishはブロックしない
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(EventSignedIn, "user-1", "session-1")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}

func TestBus_CloseStopsPublishing(t *testing.T) {
	bus := NewBus()
	events, _ := bus.Subscribe()

	before := bus.Seq()
	bus.Close()
	after := bus.Publish(EventSignedIn, "user-1", "session-1")

	if after != before {
		t.Errorf("Publish after Close advanced seq: before=%d after=%d", before, after)
	}
	if _, ok := <-events; ok {
		t.Error("expected closed channel after bus Close")
	}
}
