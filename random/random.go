// Package random implements the randomness providers consumed by key generation and encryption.
//
// A [Generator] is a provider backend (the operating system, a seeded deterministic stream, ...).
// A [Context] binds a Generator to its private state for the lifetime of one or more operations:
// it is acquired with [NewContext] or [NewDeterministicContext], drained with [Context.Generate]
// or [Context.Read], and released with [Context.Close].
//
// A Context is not safe for concurrent use. Callers that generate keys concurrently should use
// one Context per goroutine, seeded independently.
package random

import (
	"errors"
	"fmt"
)

var (
	// ErrRandomnessUnavailable is returned when a provider fails to produce the requested bytes.
	ErrRandomnessUnavailable = errors.New("randomness unavailable")

	// ErrReleased is returned by a Context used after Close.
	ErrReleased = errors.New("random context has been released")

	// ErrNotDeterministic is returned when a seed is given to a provider that cannot use one.
	ErrNotDeterministic = errors.New("generator does not accept a seed")
)

// Generator is a randomness provider.
type Generator interface {
	// Name returns the name of the provider.
	Name() string
	// Deterministic returns true if the provider's output is a function of its seed.
	Deterministic() bool
	// New acquires a fresh provider state. A nil seed asks deterministic providers
	// to seed themselves from the system entropy source.
	New(seed []byte) (State, error)
}

// State is the provider-private state of a Context.
type State interface {
	// Read fills p entirely or returns an error.
	Read(p []byte) (n int, err error)
	// Close releases the resources held by the state.
	Close() error
}

// Context is a handle on a provider state.
type Context struct {
	gen   Generator
	seed  []byte
	state State
}

// NewContext acquires a Context on the given provider.
func NewContext(gen Generator) (*Context, error) {
	state, err := gen.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cannot NewContext(%s): %w", gen.Name(), err)
	}
	return &Context{gen: gen, state: state}, nil
}

// NewDeterministicContext acquires a Context on the given deterministic provider, seeded with seed.
// Two contexts built from the same provider and seed produce the same byte sequence.
func NewDeterministicContext(gen Generator, seed []byte) (*Context, error) {

	if !gen.Deterministic() {
		return nil, fmt.Errorf("cannot NewDeterministicContext(%s): %w", gen.Name(), ErrNotDeterministic)
	}

	if len(seed) == 0 || len(seed) > 0xffff {
		return nil, fmt.Errorf("cannot NewDeterministicContext(%s): invalid seed length %d", gen.Name(), len(seed))
	}

	s := make([]byte, len(seed))
	copy(s, seed)

	state, err := gen.New(s)
	if err != nil {
		return nil, fmt.Errorf("cannot NewDeterministicContext(%s): %w", gen.Name(), err)
	}

	return &Context{gen: gen, seed: s, state: state}, nil
}

// Generator returns the provider of the context.
func (ctx *Context) Generator() Generator {
	return ctx.gen
}

// Seed returns a copy of the deterministic seed, or nil.
func (ctx *Context) Seed() []byte {
	if ctx.seed == nil {
		return nil
	}
	s := make([]byte, len(ctx.seed))
	copy(s, ctx.seed)
	return s
}

// Read fills p with random bytes. It implements io.Reader.
func (ctx *Context) Read(p []byte) (n int, err error) {

	if ctx.state == nil {
		return 0, ErrReleased
	}

	if len(p) == 0 {
		return 0, nil
	}

	if n, err = ctx.state.Read(p); err != nil {
		return n, fmt.Errorf("%s: %w: %v", ctx.gen.Name(), ErrRandomnessUnavailable, err)
	}

	if n != len(p) {
		return n, fmt.Errorf("%s: %w: short read (%d/%d)", ctx.gen.Name(), ErrRandomnessUnavailable, n, len(p))
	}

	return
}

// Generate returns n random bytes.
func (ctx *Context) Generate(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot Generate: negative length %d", n)
	}
	p := make([]byte, n)
	if _, err := ctx.Read(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Close releases the provider state. Calling Close more than once is a no-op.
func (ctx *Context) Close() (err error) {
	if ctx.state == nil {
		return nil
	}
	err = ctx.state.Close()
	ctx.state = nil
	for i := range ctx.seed {
		ctx.seed[i] = 0
	}
	return
}
