// Package events is the process-wide signal bus for game state changes.
package events

import "sync"

// Topic identifies a kind of event.
type Topic uint8

const (
	PlayerDied Topic = iota + 1
	PlayerRespawned
	PlayerJumped
	PlayerDashed
	PlayerHurt
)

func (t Topic) String() string {
	switch t {
	case PlayerDied:
		return "player_died"
	case PlayerRespawned:
		return "player_respawned"
	case PlayerJumped:
		return "player_jumped"
	case PlayerDashed:
		return "player_dashed"
	case PlayerHurt:
		return "player_hurt"
	default:
		return "unknown"
	}
}

// Died is the payload of PlayerDied.
type Died struct {
	Reason string
	Height float64
}

// Respawned is the payload of PlayerRespawned.
type Respawned struct {
	Attempt int
}

// Hurt is the payload of PlayerHurt.
type Hurt struct {
	Damage int
	Health int
}

// Event is delivered to every handler subscribed to its topic.
type Event struct {
	Topic   Topic
	Payload any
}

type Handler func(Event)

// Subscription identifies one registered handler.
type Subscription struct {
	topic Topic
	id    uint64
}

type subscriber struct {
	id      uint64
	handler Handler
	active  bool
}

// Bus delivers events synchronously, in subscription order. Publishing never
// waits for or reports on handler outcomes.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]*subscriber
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]*subscriber)}
}

// Close drops every subscriber. Later Publish and Subscribe calls are no-ops.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, list := range b.subs {
		for _, s := range list {
			s.active = false
		}
	}
	b.subs = nil
	b.closed = true
}

func (b *Bus) Subscribe(topic Topic, h Handler) Subscription {
	if b == nil || h == nil {
		return Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return Subscription{}
	}
	b.nextID++
	b.subs[topic] = append(b.subs[topic], &subscriber{id: b.nextID, handler: h, active: true})
	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes the handler. A handler removed while an event is being
// delivered does not receive that event if it has not been called yet.
func (b *Bus) Unsubscribe(sub Subscription) {
	if b == nil || sub.id == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[sub.topic]
	for i, s := range list {
		if s.id != sub.id {
			continue
		}
		s.active = false
		b.subs[sub.topic] = append(list[:i:i], list[i+1:]...)
		return
	}
}

// Publish delivers payload to the current subscribers of topic.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	list := append([]*subscriber(nil), b.subs[topic]...)
	b.mu.Unlock()

	evt := Event{Topic: topic, Payload: payload}
	for _, s := range list {
		b.mu.Lock()
		active := s.active
		b.mu.Unlock()
		if active {
			s.handler(evt)
		}
	}
}

// Len reports the number of subscribers of topic.
func (b *Bus) Len(topic Topic) int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
