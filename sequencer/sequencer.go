// Package sequencer provides an in-process story sequencer that broadcasts playback signals to subscribers.
package sequencer

import (
	"sync"

	"github.com/anisan-cli/reel/log"
	"github.com/anisan-cli/reel/story"
)

// Sequencer implements story.Sequencer.
//
// Every subscriber owns an unbounded queue drained by its own goroutine, so
// commands never block on, or re-enter, a running handler.
type Sequencer struct {
	mu       sync.Mutex
	paused   bool
	position int
	closed   bool
	nextID   int
	subs     map[int]*subscriber
}

// New creates a running, unpaused sequencer positioned at the first item.
func New() *Sequencer {
	return &Sequencer{
		subs: make(map[int]*subscriber),
	}
}

// Pause halts the story and notifies subscribers.
func (s *Sequencer) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
	s.broadcast(story.SignalPause)
}

// Resume continues the story and notifies subscribers.
func (s *Sequencer) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	s.broadcast(story.SignalResume)
}

// Next moves to the following item and notifies subscribers.
func (s *Sequencer) Next() {
	s.mu.Lock()
	s.position++
	s.mu.Unlock()
	s.broadcast(story.SignalNext)
}

// Previous moves to the preceding item, if any, and notifies subscribers.
func (s *Sequencer) Previous() {
	s.mu.Lock()
	if s.position > 0 {
		s.position--
	}
	s.mu.Unlock()
	s.broadcast(story.SignalPrevious)
}

// Paused reports whether the story is currently halted.
func (s *Sequencer) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Position returns the index of the current item.
func (s *Sequencer) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Subscribe registers handler for every subsequent signal.
// Once the sequencer is closed the returned subscription is already inactive.
func (s *Sequencer) Subscribe(handler func(story.Signal)) story.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := newSubscriber(handler)
	if s.closed {
		sub.stop()
		return &subscription{seq: s, id: -1, sub: sub}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	go sub.run()

	return &subscription{seq: s, id: id, sub: sub}
}

// Close stops delivery to every subscriber.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, sub := range s.subs {
		sub.stop()
		delete(s.subs, id)
	}
}

func (s *Sequencer) broadcast(sig story.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Tracef("sequencer: %s to %d subscriber(s)", sig, len(s.subs))
	for _, sub := range s.subs {
		sub.enqueue(sig)
	}
}

func (s *Sequencer) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

type subscription struct {
	seq  *Sequencer
	id   int
	sub  *subscriber
	once sync.Once
}

// Cancel stops delivery to the subscription's handler. Pending signals are dropped.
func (s *subscription) Cancel() {
	s.once.Do(func() {
		s.sub.stop()
		if s.id >= 0 {
			s.seq.unsubscribe(s.id)
		}
	})
}

type subscriber struct {
	handler func(story.Signal)

	mu       sync.Mutex
	pending  []story.Signal
	wake     chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newSubscriber(handler func(story.Signal)) *subscriber {
	return &subscriber{
		handler: handler,
		wake:    make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (s *subscriber) enqueue(sig story.Signal) {
	s.mu.Lock()
	s.pending = append(s.pending, sig)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// run delivers queued signals in order until stopped.
func (s *subscriber) run() {
	for {
		select {
		case <-s.stopCh:
			return
		case <-s.wake:
		}

		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, sig := range batch {
			select {
			case <-s.stopCh:
				return
			default:
			}
			s.handler(sig)
		}
	}
}
