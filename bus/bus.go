// bus.go
package bus

import (
	"sync"

	"keypad-motor-go/types"
)

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	kind types.Kind
	all  bool
	ch   chan types.Event
	bus  *Bus
}

func (s *Subscription) Kind() types.Kind            { return s.kind }
func (s *Subscription) Channel() <-chan types.Event { return s.ch }
func (s *Subscription) Unsubscribe()                { s.bus.unsubscribe(s) }

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

// Bus fans state events out to subscribers. Publishing never blocks: a
// full subscriber queue loses its oldest event. The last event of each kind
// is retained and handed to late subscribers.
type Bus struct {
	mu       sync.Mutex
	subs     []*Subscription
	retained map[types.Kind]types.Event
	qLen     int

	published uint32
	dropped   uint32
}

// NewBus creates a new bus with the given subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{
		retained: make(map[types.Kind]types.Event),
		qLen:     queueLen,
	}
}

// Subscribe registers for one kind of event.
func (b *Bus) Subscribe(kind types.Kind) *Subscription {
	return b.add(&Subscription{kind: kind, ch: make(chan types.Event, b.qLen), bus: b})
}

// SubscribeAll registers for every kind.
func (b *Bus) SubscribeAll() *Subscription {
	return b.add(&Subscription{all: true, ch: make(chan types.Event, b.qLen), bus: b})
}

func (b *Bus) add(sub *Subscription) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)

	// Deliver retained events.
	for k, ev := range b.retained {
		if sub.all || sub.kind == k {
			select {
			case sub.ch <- ev:
			default:
			}
		}
	}
	return sub
}

// Emit publishes ev. It reports false when some subscriber had to drop an
// event to make room.
func (b *Bus) Emit(ev types.Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.published++
	b.retained[ev.Kind] = ev

	ok := true
	for _, sub := range b.subs {
		if !sub.all && sub.kind != ev.Kind {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// drop oldest if queue full
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- ev
			b.dropped++
			ok = false
		}
	}
	return ok
}

// Last returns the retained event of a kind.
func (b *Bus) Last(kind types.Kind) (types.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ev, ok := b.retained[kind]
	return ev, ok
}

// Counters returns the number of published events and of events lost to
// full queues.
func (b *Bus) Counters() (published, dropped uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published, b.dropped
}

// unsubscribe removes a subscription and closes its channel.
func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub.ch)
			return
		}
	}
}
