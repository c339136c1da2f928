// Package optimistic applies a change locally before the server confirms it
// and restores the previous value when the server rejects it.
//
// Each Resource carries a token that increases with every mutation. Only the
// response for the newest token may write the displayed value; older
// responses are discarded with ErrSuperseded. After Detach every response is
// discarded with ErrDetached.
package optimistic

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrSuperseded is returned when a newer mutation was issued before this
	// one resolved.
	ErrSuperseded = errors.New("optimistic: superseded by a newer mutation")

	// ErrDetached is returned when the resource was detached while the
	// request was in flight.
	ErrDetached = errors.New("optimistic: resource detached")
)

// Phase is the state of the most recent mutation.
type Phase int

const (
	Idle Phase = iota
	AppliedLocally
	Confirming
	Confirmed
	RolledBack
)

func (p Phase) String() string {
	switch p {
	case AppliedLocally:
		return "applied-locally"
	case Confirming:
		return "confirming"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled-back"
	default:
		return "idle"
	}
}

// Pending reports whether a request is outstanding.
func (p Phase) Pending() bool {
	return p == AppliedLocally || p == Confirming
}

// Change is emitted to subscribers on every phase transition.
type Change[T any] struct {
	Phase Phase
	Value T
	Token uint64
	Err   error
}

// SendFunc performs the server mutation for next and returns the server's
// canonical value.
type SendFunc[T any] func(ctx context.Context, next T) (T, error)

// Resource holds one optimistically mutated value.
type Resource[T any] struct {
	mu    sync.Mutex
	clone func(T) T

	value T
	phase Phase
	token uint64

	// base is the newest value known to be stored by the server. Rollback
	// restores it.
	base      T
	baseToken uint64

	detached bool
	subs     map[int]chan Change[T]
	nextSub  int
}

// New returns a Resource holding initial. clone must return a deep copy; a
// nil clone means T is copied by value.
func New[T any](initial T, clone func(T) T) *Resource[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Resource[T]{
		clone: clone,
		value: clone(initial),
		base:  clone(initial),
		subs:  make(map[int]chan Change[T]),
	}
}

// Value returns a copy of the displayed value.
func (r *Resource[T]) Value() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clone(r.value)
}

func (r *Resource[T]) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Token returns the token of the newest mutation issued.
func (r *Resource[T]) Token() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// Set replaces the value with fresh server state, for example after a
// reload. In-flight mutations keep their tokens.
func (r *Resource[T]) Set(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return
	}
	r.value = r.clone(v)
	r.base = r.clone(v)
	r.baseToken = r.token
}

// Mutate writes next locally, calls send and settles the result. It blocks
// until send returns.
//
// On success with the newest token the displayed value becomes the server's
// value. On failure with the newest token the last server-confirmed value is
// restored and send's error returned. A response for an older token leaves
// the displayed value alone and returns ErrSuperseded.
func (r *Resource[T]) Mutate(ctx context.Context, next T, send SendFunc[T]) (T, error) {
	var zero T

	r.mu.Lock()
	if r.detached {
		r.mu.Unlock()
		return zero, ErrDetached
	}
	r.token++
	tok := r.token
	r.value = r.clone(next)
	r.setPhaseLocked(AppliedLocally, tok, nil)
	r.setPhaseLocked(Confirming, tok, nil)
	r.mu.Unlock()

	got, err := send(ctx, r.clone(next))

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.detached {
		return zero, ErrDetached
	}

	if err == nil && tok > r.baseToken {
		r.base = r.clone(got)
		r.baseToken = tok
	}

	if tok != r.token {
		if err != nil {
			return zero, errors.Join(ErrSuperseded, err)
		}
		return zero, ErrSuperseded
	}

	r.baseToken = tok
	if err != nil {
		r.value = r.clone(r.base)
		r.setPhaseLocked(RolledBack, tok, err)
		return zero, err
	}
	r.value = r.clone(got)
	r.setPhaseLocked(Confirmed, tok, nil)
	return r.clone(got), nil
}

// Detach stops the resource from accepting any further result and closes
// every subscription.
func (r *Resource[T]) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return
	}
	r.detached = true
	for id, ch := range r.subs {
		close(ch)
		delete(r.subs, id)
	}
}

func (r *Resource[T]) Detached() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detached
}

// Subscribe returns a channel of phase changes and a function that ends the
// subscription. Slow readers miss changes rather than block the mutation.
func (r *Resource[T]) Subscribe() (<-chan Change[T], func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan Change[T], 16)
	if r.detached {
		close(ch)
		return ch, func() {}
	}
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	return ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if c, ok := r.subs[id]; ok {
			close(c)
			delete(r.subs, id)
		}
	}
}

func (r *Resource[T]) setPhaseLocked(p Phase, tok uint64, err error) {
	r.phase = p
	for _, ch := range r.subs {
		select {
		case ch <- Change[T]{Phase: p, Value: r.clone(r.value), Token: tok, Err: err}:
		default:
		}
	}
}
