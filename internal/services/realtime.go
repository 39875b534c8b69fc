package services

import (
	"log"
	"sync"
)

// Subscriber receives realtime events for one conversation. The websocket
// connection satisfies this through WriteJSON.
type Subscriber interface {
	WriteJSON(v interface{}) error
}

// RealtimeHub fans out inserted messages to everyone watching a conversation.
// Subscriptions are keyed by conversation id and managed explicitly, so the
// lifecycle is independent of any single connection.
type RealtimeHub struct {
	mu            sync.RWMutex
	conversations map[uint]map[Subscriber]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{
		conversations: make(map[uint]map[Subscriber]struct{}),
	}
}

// Subscribe registers a subscriber for a conversation. Subscribing the same
// subscriber twice is a no-op.
func (h *RealtimeHub) Subscribe(conversationID uint, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.conversations[conversationID]
	if !ok {
		subs = make(map[Subscriber]struct{})
		h.conversations[conversationID] = subs
	}
	subs[sub] = struct{}{}
}

// Unsubscribe removes a subscriber. Unknown subscribers are ignored, so
// teardown paths can call it unconditionally.
func (h *RealtimeHub) Unsubscribe(conversationID uint, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.conversations[conversationID]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.conversations, conversationID)
	}
}

// Broadcast delivers an event to all subscribers of a conversation. A failed
// write drops that subscriber; its connection is already gone.
func (h *RealtimeHub) Broadcast(conversationID uint, event interface{}) {
	h.mu.RLock()
	subs := make([]Subscriber, 0, len(h.conversations[conversationID]))
	for sub := range h.conversations[conversationID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.WriteJSON(event); err != nil {
			log.Printf("realtime: dropping subscriber on conversation %d: %v", conversationID, err)
			h.Unsubscribe(conversationID, sub)
		}
	}
}

// SubscriberCount reports how many subscribers watch a conversation
func (h *RealtimeHub) SubscriberCount(conversationID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conversations[conversationID])
}
