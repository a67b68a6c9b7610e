package auth

import (
	"sync"
)

// EventType は認証イベントの種別を表す。
type EventType string

const (
	// EventSignedIn はサインインまたはサインアップによりセッションが発行されたことを示す。
	EventSignedIn EventType = "SIGNED_IN"
	// EventSignedOut はセッションが破棄されたことを示す。
	EventSignedOut EventType = "SIGNED_OUT"
)

// Event は認証状態の変化を表す。
// Seqはバスが払い出す単調増加のシーケンス番号であり、
// 購読側は自身が処理済みのSeqより古いイベント由来の結果を破棄できる。
type Event struct {
	Seq       uint64
	Type      EventType
	UserID    string
	SessionID string
}

// Bus は認証イベントの配信を行う。
// Publishはシーケンス番号を採番して全購読者に配信する。
// 購読者のチャネルが詰まっている場合、そのイベントは購読者に対して破棄される。
type Bus struct {
	mu      sync.Mutex
	seq     uint64
	subs    map[int]chan Event
	nextKey int
	closed  bool
}

// NewBus はBusを生成する。
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
	}
}

// Publish はイベントにシーケンス番号を採番して全購読者に配信する。
// 採番されたシーケンス番号を返す。
func (b *Bus) Publish(eventType EventType, userID, sessionID string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return b.seq
	}

	b.seq++
	event := Event{
		Seq:       b.seq,
		Type:      eventType,
		UserID:    userID,
		SessionID: sessionID,
	}

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// 購読者が滞留している場合は破棄する
		}
	}

	return event.Seq
}

// Subscribe はイベントの購読を開始する。
// 返されたチャネルからイベントを受信できる。解除にはUnsubscribeを使用する。
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := b.nextKey
	b.nextKey++
	ch := make(chan Event, 16)
	b.subs[key] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[key]; ok {
			delete(b.subs, key)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// Close は全購読チャネルを閉じ、以後のPublishを無効化する。
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for key, ch := range b.subs {
		delete(b.subs, key)
		close(ch)
	}
}

// Seq は現在までに採番された最新のシーケンス番号を返す。
func (b *Bus) Seq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}
