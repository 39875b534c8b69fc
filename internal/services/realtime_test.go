package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSubscriber struct {
	events []interface{}
	fail   bool
}

func (f *fakeSubscriber) WriteJSON(v interface{}) error {
	if f.fail {
		return errors.New("connection gone")
	}
	f.events = append(f.events, v)
	return nil
}

func TestSubscribeIsIdempotent(t *testing.T) {
	hub := NewRealtimeHub()
	sub := &fakeSubscriber{}

	hub.Subscribe(1, sub)
	hub.Subscribe(1, sub)
	assert.Equal(t, 1, hub.SubscriberCount(1))

	hub.Broadcast(1, "hello")
	assert.Len(t, sub.events, 1)
}

func TestUnsubscribeUnknownIsNoop(t *testing.T) {
	hub := NewRealtimeHub()
	sub := &fakeSubscriber{}

	// Never subscribed; teardown paths call this unconditionally
	hub.Unsubscribe(42, sub)
	assert.Equal(t, 0, hub.SubscriberCount(42))

	hub.Subscribe(42, sub)
	hub.Unsubscribe(42, sub)
	hub.Unsubscribe(42, sub)
	assert.Equal(t, 0, hub.SubscriberCount(42))
}

func TestBroadcastIsScopedToConversation(t *testing.T) {
	hub := NewRealtimeHub()
	a := &fakeSubscriber{}
	b := &fakeSubscriber{}

	hub.Subscribe(1, a)
	hub.Subscribe(2, b)

	hub.Broadcast(1, "for conversation one")

	assert.Len(t, a.events, 1)
	assert.Empty(t, b.events)
}

func TestBroadcastDropsDeadSubscribers(t *testing.T) {
	hub := NewRealtimeHub()
	alive := &fakeSubscriber{}
	dead := &fakeSubscriber{fail: true}

	hub.Subscribe(1, alive)
	hub.Subscribe(1, dead)

	hub.Broadcast(1, "first")
	assert.Equal(t, 1, hub.SubscriberCount(1))

	hub.Broadcast(1, "second")
	assert.Len(t, alive.events, 2)
}
