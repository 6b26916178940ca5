// Package promise implements a callback driven future for composing out-calls inside a single
// context. Promises are resolved by completion handlers running on the host thread and are not
// safe for concurrent use.
package promise

import "errors"

// ErrNoPromises rejects AnyOf called without inputs.
var ErrNoPromises = errors.New("promise: no promises to wait for")

type State uint8

const (
	Pending State = iota
	Fulfilled
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Promise holds a value that becomes available later. It resolves once: every Fulfill or
// Reject after the first is ignored.
type Promise[T any] struct {
	state  State
	value  T
	reason error

	// Continuations. onFulfilled and forward are attached by Then, catch by Catch.
	onFulfilled func(T)
	forward     func(error)
	catch       func(error)
}

func New[T any]() *Promise[T] {
	return &Promise[T]{}
}

// Resolve returns a promise already fulfilled with value.
func Resolve[T any](value T) *Promise[T] {
	p := New[T]()
	p.Fulfill(value)
	return p
}

// Reject returns a promise already rejected with err.
func Reject[T any](err error) *Promise[T] {
	p := New[T]()
	p.Reject(err)
	return p
}

func (p *Promise[T]) State() State { return p.state }

// Value returns the fulfilled value. The second result is false unless the promise is
// fulfilled.
func (p *Promise[T]) Value() (T, bool) {
	return p.value, p.state == Fulfilled
}

// Reason returns the rejection reason, or nil unless the promise is rejected.
func (p *Promise[T]) Reason() error {
	return p.reason
}

// Fulfill resolves the promise with value and runs the attached continuation synchronously.
func (p *Promise[T]) Fulfill(value T) {
	if p.state != Pending {
		return
	}
	p.state = Fulfilled
	p.value = value
	onFulfilled := p.onFulfilled
	p.onFulfilled, p.forward, p.catch = nil, nil, nil
	if onFulfilled != nil {
		onFulfilled(value)
	}
}

// Reject resolves the promise with err. The Catch handler runs first, then the rejection is
// passed on to the promise returned by Then.
func (p *Promise[T]) Reject(err error) {
	if p.state != Pending {
		return
	}
	p.state = Rejected
	p.reason = err
	catch, forward := p.catch, p.forward
	p.onFulfilled, p.forward, p.catch = nil, nil, nil
	if catch != nil {
		catch(err)
	}
	if forward != nil {
		forward(err)
	}
}

// Catch attaches f to the rejected path and returns p. f runs immediately if p is already
// rejected and never runs if p is fulfilled. A second Catch replaces the first.
func (p *Promise[T]) Catch(f func(error)) *Promise[T] {
	switch p.state {
	case Pending:
		p.catch = f
	case Rejected:
		f(p.reason)
	}
	return p
}

// Then returns a promise resolved with f applied to the value of p. A rejection of p rejects
// the returned promise with the same reason. If p is already resolved, f runs synchronously.
// A second Then on the same pending promise replaces the first.
func Then[T, R any](p *Promise[T], f func(T) R) *Promise[R] {
	switch p.state {
	case Fulfilled:
		return Resolve(f(p.value))
	case Rejected:
		return Reject[R](p.reason)
	}
	next := New[R]()
	p.onFulfilled = func(value T) { next.Fulfill(f(value)) }
	p.forward = next.Reject
	return next
}

// Chain is Then for continuations that start another asynchronous step. The returned promise
// follows the promise produced by f.
func Chain[T, R any](p *Promise[T], f func(T) *Promise[R]) *Promise[R] {
	next := New[R]()
	Then(p, func(value T) struct{} {
		inner := f(value)
		Then(inner, func(result R) struct{} {
			next.Fulfill(result)
			return struct{}{}
		}).Catch(next.Reject)
		return struct{}{}
	}).Catch(next.Reject)
	return next
}

// AllOf returns a promise fulfilled with the values of every input, in input order, once all
// of them are fulfilled. The first rejection rejects the result and later completions are
// ignored. An empty input fulfills immediately with an empty slice.
//
// AllOf attaches the only continuation each input keeps, so an input must not already have a
// Then or Catch attached, and the same promise must not be passed twice. A repeated input
// keeps only its last continuation and the result never settles.
func AllOf[T any](promises ...*Promise[T]) *Promise[[]T] {
	joined := New[[]T]()
	if len(promises) == 0 {
		joined.Fulfill([]T{})
		return joined
	}
	results := make([]T, len(promises))
	remaining := len(promises)
	rejected := false
	for i, p := range promises {
		Then(p, func(value T) struct{} {
			if rejected {
				return struct{}{}
			}
			results[i] = value
			remaining--
			if remaining == 0 {
				joined.Fulfill(results)
			}
			return struct{}{}
		}).Catch(func(err error) {
			if rejected {
				return
			}
			rejected = true
			joined.Reject(err)
		})
	}
	return joined
}

// AnyOf returns a promise fulfilled with the first value any input is fulfilled with. It is
// rejected only when every input is rejected, with the first rejection reason observed. An
// empty input rejects immediately with ErrNoPromises. As with AllOf, each input must be
// distinct and have no continuation attached.
func AnyOf[T any](promises ...*Promise[T]) *Promise[T] {
	joined := New[T]()
	if len(promises) == 0 {
		joined.Reject(ErrNoPromises)
		return joined
	}
	remaining := len(promises)
	settled := false
	var firstReason error
	haveReason := false
	for _, p := range promises {
		Then(p, func(value T) struct{} {
			if settled {
				return struct{}{}
			}
			settled = true
			joined.Fulfill(value)
			return struct{}{}
		}).Catch(func(err error) {
			if settled {
				return
			}
			if !haveReason {
				firstReason, haveReason = err, true
			}
			remaining--
			if remaining == 0 {
				settled = true
				joined.Reject(firstReason)
			}
		})
	}
	return joined
}
