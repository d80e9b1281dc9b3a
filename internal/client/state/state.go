// Package state holds observable request-state containers. A screen owns one
// container per remote call it makes and renders whatever state the
// container reports.
package state

import (
	"context"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"golang.org/x/sync/singleflight"
)

type Status uint8

const (
	Idle Status = iota
	Loading
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// RequestState is the tagged union Idle | Loading | Success(Value) |
// Error(Message, Err, Kind). Only the fields of the current Status are set.
type RequestState[T any] struct {
	Status  Status
	Value   T
	Message string
	Err     error
	Kind    common.Kind
}

// Terminal reports whether the state is Success or Error.
func (s RequestState[T]) Terminal() bool {
	return s.Status == Success || s.Status == Error
}

// Option configures a Container.
type Option func(*options)

type options struct {
	message func(error) string
}

// WithMessages sets how an error is turned into the user-facing message.
func WithMessages(fn func(error) string) Option {
	return func(o *options) { o.message = fn }
}

// Container tracks one request/response cycle at a time.
//
//	Idle --Run--> Loading --ok--> Success --Consume/Reset--> Idle
//	              Loading --err-> Error   --Consume/Reset--> Idle
//
// A Run issued while Loading joins the call in flight. Reset during Loading
// invalidates the in-flight call; its result is dropped.
type Container[T any] struct {
	key     string
	message func(error) string
	flights singleflight.Group

	mu     sync.Mutex
	state  RequestState[T]
	token  uint64
	flight string
	seq    uint64
	subs   map[int]func(RequestState[T])
	nextID int

	emitMu  sync.Mutex
	emitted uint64
}

func New[T any](key string, opts ...Option) *Container[T] {
	o := options{message: func(err error) string { return err.Error() }}
	for _, opt := range opts {
		opt(&o)
	}
	return &Container[T]{key: key, message: o.message, subs: map[int]func(RequestState[T]){}}
}

func (c *Container[T]) State() RequestState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for state changes and returns a function that
// removes it. Notifications are delivered in order; a change superseded
// before delivery is skipped. fn must not call Run, Reset or Consume.
func (c *Container[T]) Subscribe(fn func(RequestState[T])) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Run executes op unless a call is already in flight, in which case it waits
// for that call. Every caller gets the terminal state of the call it ran or
// joined.
func (c *Container[T]) Run(ctx context.Context, op func(ctx context.Context) (T, error)) RequestState[T] {
	c.mu.Lock()
	var seq uint64
	var notify []func(RequestState[T])
	if c.state.Status != Loading {
		c.token++
		c.flight = c.key + "#" + strconv.FormatUint(c.token, 10)
		c.state = RequestState[T]{Status: Loading}
		seq, notify = c.changed()
	}
	token := c.token
	// DoChan is registered under the lock: while the state is Loading the
	// flight has not resolved, so its key is still live and the call joins.
	ch := c.flights.DoChan(c.flight, func() (any, error) {
		v, err := op(ctx)
		return c.resolve(token, v, err), nil
	})
	c.mu.Unlock()

	c.emit(seq, RequestState[T]{Status: Loading}, notify)

	res := <-ch
	return res.Val.(RequestState[T])
}

func (c *Container[T]) resolve(token uint64, value T, err error) RequestState[T] {
	next := RequestState[T]{Status: Success, Value: value}
	if err != nil {
		next = RequestState[T]{Status: Error, Message: c.message(err), Err: err, Kind: common.KindOf(err)}
	}

	c.mu.Lock()
	if token != c.token {
		c.mu.Unlock()
		return next
	}
	c.state = next
	seq, notify := c.changed()
	c.mu.Unlock()

	c.emit(seq, next, notify)
	return next
}

// Reset returns the container to Idle and drops any call in flight.
func (c *Container[T]) Reset() {
	c.mu.Lock()
	if c.state.Status == Idle {
		c.mu.Unlock()
		return
	}
	c.token++
	c.state = RequestState[T]{}
	seq, notify := c.changed()
	c.mu.Unlock()

	c.emit(seq, RequestState[T]{}, notify)
}

// Consume hands a terminal state to the observer once and goes back to
// Idle. Idle and Loading states are returned unchanged.
func (c *Container[T]) Consume() RequestState[T] {
	c.mu.Lock()
	cur := c.state
	if !cur.Terminal() {
		c.mu.Unlock()
		return cur
	}
	c.state = RequestState[T]{}
	seq, notify := c.changed()
	c.mu.Unlock()

	c.emit(seq, RequestState[T]{}, notify)
	return cur
}

// changed numbers a state change and snapshots the subscribers. Caller holds mu.
func (c *Container[T]) changed() (uint64, []func(RequestState[T])) {
	c.seq++
	out := make([]func(RequestState[T]), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return c.seq, out
}

func (c *Container[T]) emit(seq uint64, st RequestState[T], fns []func(RequestState[T])) {
	if seq == 0 {
		return
	}
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	if seq <= c.emitted {
		return
	}
	c.emitted = seq
	for _, fn := range fns {
		fn(st)
	}
}
