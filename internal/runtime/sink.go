package runtime

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/aretw0/gestalt/pkg/domain"
)

// OverflowPolicy decides what a bounded event buffer does when it is full.
type OverflowPolicy int

const (
	// OverflowBlock makes the producer wait for space (or for its context to end).
	OverflowBlock OverflowPolicy = iota
	// OverflowDropOldest evicts the oldest queued event to make room.
	OverflowDropOldest
	// OverflowDropNewest discards the event being pushed.
	OverflowDropNewest
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowBlock:
		return "block"
	case OverflowDropOldest:
		return "drop-oldest"
	case OverflowDropNewest:
		return "drop-newest"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy parses the String form of a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "block":
		return OverflowBlock, nil
	case "drop-oldest":
		return OverflowDropOldest, nil
	case "drop-newest":
		return OverflowDropNewest, nil
	default:
		return 0, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// EventBuffer configures the event stream.
// A zero Capacity means unbounded: events queue without limit until consumed.
type EventBuffer struct {
	Capacity int
	Overflow OverflowPolicy
}

// Unbounded is the default event buffer.
var Unbounded = EventBuffer{}

// sink is the event stream behind System.Events.
type sink interface {
	// push enqueues ev. It returns the event that was discarded to honor the
	// overflow policy, if any. Pushing to a closed sink is a silent no-op.
	push(ctx context.Context, ev domain.ActionEvent) (dropped domain.ActionEvent)
	events() <-chan domain.ActionEvent
	close()
}

func newSink(cfg EventBuffer) sink {
	if cfg.Capacity <= 0 {
		return newQueueSink()
	}
	return newBoundedSink(cfg)
}

// queueSink is unbounded. A pump goroutine, started on the first call to events,
// moves queued events to the output channel. Without a consumer events accumulate.
// The pump only exits after close once the queue is empty, so it stays parked on
// a send if the consumer abandons the channel.
type queueSink struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []domain.ActionEvent
	closed bool

	once sync.Once
	out  chan domain.ActionEvent
}

func newQueueSink() *queueSink {
	s := &queueSink{out: make(chan domain.ActionEvent)}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *queueSink) push(_ context.Context, ev domain.ActionEvent) domain.ActionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.queue = append(s.queue, ev)
	s.cond.Signal()
	return nil
}

func (s *queueSink) events() <-chan domain.ActionEvent {
	s.once.Do(func() { go s.pump() })
	return s.out
}

func (s *queueSink) pump() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			close(s.out)
			return
		}
		ev := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		if len(s.queue) == 0 {
			s.queue = nil
		}
		s.mu.Unlock()

		s.out <- ev
	}
}

func (s *queueSink) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cond.Broadcast()
}

// pending reports the number of queued, undelivered events.
func (s *queueSink) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// boundedSink is a buffered channel with an overflow policy.
type boundedSink struct {
	mu     sync.RWMutex // held for reading while sending, for writing while closing
	out    chan domain.ActionEvent
	done   chan struct{}
	closed atomic.Bool
	policy OverflowPolicy
}

func newBoundedSink(cfg EventBuffer) *boundedSink {
	return &boundedSink{
		out:    make(chan domain.ActionEvent, cfg.Capacity),
		done:   make(chan struct{}),
		policy: cfg.Overflow,
	}
}

func (s *boundedSink) push(ctx context.Context, ev domain.ActionEvent) domain.ActionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed.Load() {
		return nil
	}

	switch s.policy {
	case OverflowDropNewest:
		select {
		case s.out <- ev:
			return nil
		default:
			return ev
		}

	case OverflowDropOldest:
		var dropped domain.ActionEvent
		for {
			select {
			case s.out <- ev:
				return dropped
			default:
			}
			select {
			case old := <-s.out:
				if dropped == nil {
					dropped = old
				}
			default:
			}
		}

	default:
		select {
		case s.out <- ev:
			return nil
		case <-ctx.Done():
			return ev
		case <-s.done:
			return nil
		}
	}
}

func (s *boundedSink) events() <-chan domain.ActionEvent {
	return s.out
}

func (s *boundedSink) close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.out)
}
