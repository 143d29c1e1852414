package pages

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/desertthunder/showtime/internal/shared"
)

// Status is the render state of a page.
type Status int

const (
	Loading Status = iota
	Error
	Empty
	Ready
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// generations is shared by every loader so a result can never match a loader it was not issued by.
var generations atomic.Uint64

// Fetcher loads a page's payload.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Loader runs the Loading → Ready | Empty | Error lifecycle for one page.
//
// Each fetch gets a generation and a context derived from the page lifetime. Results carrying an old generation are
// discarded, as are results that arrive after [Loader.Cancel].
type Loader[T any] struct {
	fetch    Fetcher[T]
	isEmpty  func(T) bool
	emptyMsg string
	fallback string

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	status   Status
	data     T
	message  string
	retrying bool
}

// NewLoader creates a loader. isEmpty decides the Empty state; emptyMsg is shown for it and fallback is shown for
// errors that carry no message of their own.
func NewLoader[T any](fetch Fetcher[T], isEmpty func(T) bool, emptyMsg, fallback string) *Loader[T] {
	return &Loader[T]{fetch: fetch, isEmpty: isEmpty, emptyMsg: emptyMsg, fallback: fallback}
}

// Ticket is one issued fetch.
type Ticket[T any] struct {
	gen   uint64
	ctx   context.Context
	fetch Fetcher[T]
}

// Result is the outcome of running a [Ticket].
type Result[T any] struct {
	Gen  uint64
	Data T
	Err  error
}

// Run performs the fetch. It is safe to call from any goroutine.
func (t Ticket[T]) Run() Result[T] {
	data, err := t.fetch(t.ctx)
	return Result[T]{Gen: t.gen, Data: data, Err: err}
}

// Gen returns the ticket's generation.
func (t Ticket[T]) Gen() uint64 { return t.gen }

// Begin cancels any fetch in flight, moves to [Loading], and issues a new ticket bound to parent.
func (l *Loader[T]) Begin(parent context.Context) Ticket[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	l.gen = generations.Add(1)
	l.status = Loading
	l.message = ""

	var zero T
	l.data = zero

	return Ticket[T]{gen: l.gen, ctx: ctx, fetch: l.fetch}
}

// Apply records a result. It reports false when the result was stale or already applied, and dropped.
func (l *Loader[T]) Apply(res Result[T]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// a nil cancel means the current ticket has already been applied
	if res.Gen == 0 || res.Gen != l.gen || l.cancel == nil {
		return false
	}
	if res.Err != nil && errors.Is(res.Err, context.Canceled) {
		return false
	}

	l.cancel()
	l.cancel = nil
	l.retrying = false

	switch {
	case res.Err != nil:
		l.status = Error
		l.message = shared.UserMessage(res.Err, l.fallback)
	case l.isEmpty != nil && l.isEmpty(res.Data):
		l.status = Empty
		l.data = res.Data
		l.message = l.emptyMsg
	default:
		l.status = Ready
		l.data = res.Data
	}
	return true
}

// Load runs a fetch synchronously. The error is returned as well as recorded.
func (l *Loader[T]) Load(ctx context.Context) error {
	res := l.Begin(ctx).Run()
	l.Apply(res)
	return res.Err
}

// Retry starts a new fetch and marks the loader as retrying until it settles.
func (l *Loader[T]) Retry(parent context.Context) Ticket[T] {
	t := l.Begin(parent)
	l.mu.Lock()
	l.retrying = true
	l.mu.Unlock()
	return t
}

// Cancel aborts the fetch in flight, if any. Any later result is discarded.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen = 0
	l.retrying = false
}

func (l *Loader[T]) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Data returns the last successful payload.
func (l *Loader[T]) Data() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data
}

// Message is the error or empty-state text.
func (l *Loader[T]) Message() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.message
}

// Retrying reports whether a retry is in flight.
func (l *Loader[T]) Retrying() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.retrying
}

// RetryLabel is the text of the retry action.
func (l *Loader[T]) RetryLabel() string {
	if l.Retrying() {
		return "Retrying..."
	}
	return "Try Again"
}
