package random

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
)

// System is the default provider. It reads from the operating system entropy
// source through crypto/rand.
var System Generator = systemGenerator{}

// DevURandom reads from /dev/urandom. The descriptor is opened when the
// context is acquired and closed on release.
var DevURandom Generator = deviceGenerator{name: "devurandom", path: "/dev/urandom"}

// DevRandom reads from /dev/random, which may block until the kernel entropy
// pool is initialized.
var DevRandom Generator = deviceGenerator{name: "devrandom", path: "/dev/random"}

type systemGenerator struct{}

func (systemGenerator) Name() string        { return "system" }
func (systemGenerator) Deterministic() bool { return false }

func (systemGenerator) New(seed []byte) (State, error) {
	if seed != nil {
		return nil, ErrNotDeterministic
	}
	return systemState{}, nil
}

type systemState struct{}

func (systemState) Read(p []byte) (int, error) {
	return io.ReadFull(rand.Reader, p)
}

func (systemState) Close() error {
	return nil
}

type deviceGenerator struct {
	name string
	path string
}

func (g deviceGenerator) Name() string      { return g.name }
func (deviceGenerator) Deterministic() bool { return false }

func (g deviceGenerator) New(seed []byte) (State, error) {
	if seed != nil {
		return nil, ErrNotDeterministic
	}
	f, err := os.Open(g.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return &deviceState{f: f}, nil
}

type deviceState struct {
	f *os.File
}

func (s *deviceState) Read(p []byte) (int, error) {
	return io.ReadFull(s.f, p)
}

func (s *deviceState) Close() error {
	return s.f.Close()
}

// systemSeed returns n bytes from crypto/rand, used by deterministic providers
// acquired without a seed.
func systemSeed(n int) ([]byte, error) {
	seed := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return seed, nil
}
