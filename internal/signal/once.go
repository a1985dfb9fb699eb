// Package signal provides single-value, replaying event channels used to
// coordinate the overlay close handshake.
package signal

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Source is the read-only side of a Once. Callers receive a Source so they can
// observe an event without being able to fire it.
type Source[T any] interface {
	Subscribe(fn func(T)) *Subscription
	Done() <-chan struct{}
	Value() (T, bool)
	Wait(ctx context.Context) (T, error)
}

// Once delivers a single value to every current and future subscriber. Only
// the first Emit has an effect; later calls are ignored.
type Once[T any] struct {
	name string

	mu     sync.Mutex
	fired  bool
	value  T
	nextID uint64
	subs   []subscriber[T]
	done   chan struct{}
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// New creates an unfired Once. The name is only used in log output.
func New[T any](name string) *Once[T] {
	return &Once[T]{
		name: name,
		done: make(chan struct{}),
	}
}

// Emit stores v and delivers it to all subscribers. It reports whether this
// call was the one that fired the channel.
func (o *Once[T]) Emit(v T) bool {
	o.mu.Lock()
	if o.fired {
		o.mu.Unlock()
		return false
	}
	o.fired = true
	o.value = v
	subs := o.subs
	o.subs = nil
	close(o.done)
	o.mu.Unlock()

	for _, s := range subs {
		o.deliver(s.fn, v)
	}
	return true
}

// Subscribe registers fn to receive the value. If the channel already fired,
// fn is called immediately with the stored value.
func (o *Once[T]) Subscribe(fn func(T)) *Subscription {
	o.mu.Lock()
	if o.fired {
		v := o.value
		o.mu.Unlock()
		o.deliver(fn, v)
		return &Subscription{}
	}

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})
	o.mu.Unlock()

	return &Subscription{cancel: func() { o.remove(id) }}
}

// Fired reports whether Emit has been called.
func (o *Once[T]) Fired() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fired
}

// Done returns a channel closed when the value is emitted.
func (o *Once[T]) Done() <-chan struct{} {
	return o.done
}

// Value returns the emitted value and whether the channel has fired.
func (o *Once[T]) Value() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value, o.fired
}

// Wait blocks until the value is emitted or ctx is done.
func (o *Once[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-o.done:
		v, _ := o.Value()
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (o *Once[T]) remove(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return
		}
	}
}

// deliver invokes fn, recovering panics so one failing subscriber cannot
// break delivery to the rest.
func (o *Once[T]) deliver(fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("signal", o.name).
				Interface("panic", r).
				Msg("subscriber panicked")
		}
	}()
	fn(v)
}

// Subscription is returned by Subscribe and detaches a pending subscriber.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the subscriber if it has not received a value yet. It is
// safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}
