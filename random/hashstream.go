package random

import (
	"encoding/binary"

	"github.com/tuneinsight/ntru/digest"
)

// HashStream returns a deterministic provider whose output is the concatenation of
// H(seed || counter) for counter = 0, 1, 2, ... (counter as a 4-byte big-endian integer).
// It is the stream read by the index generation function during encryption and
// during the re-encryption check of decryption, where the seed is derived from the
// message and the public key.
func HashStream(h digest.Func) Generator {
	return hashStreamGenerator{h: h}
}

type hashStreamGenerator struct {
	h digest.Func
}

func (g hashStreamGenerator) Name() string      { return "hash-" + g.h.Name() }
func (hashStreamGenerator) Deterministic() bool { return true }

func (g hashStreamGenerator) New(seed []byte) (State, error) {
	var err error
	if seed == nil {
		if seed, err = systemSeed(g.h.Size()); err != nil {
			return nil, err
		}
	}
	s := &hashStreamState{h: g.h}
	s.input = make([]byte, len(seed)+4)
	copy(s.input, seed)
	return s, nil
}

type hashStreamState struct {
	h       digest.Func
	input   []byte // seed || counter
	counter uint32
	block   []byte // unread part of the current digest
}

func (s *hashStreamState) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(s.block) == 0 {
			binary.BigEndian.PutUint32(s.input[len(s.input)-4:], s.counter)
			s.block = s.h.Sum(s.input)
			s.counter++
		}
		c := copy(p[n:], s.block)
		s.block = s.block[c:]
		n += c
	}
	return
}

func (s *hashStreamState) Close() error {
	for i := range s.input {
		s.input[i] = 0
	}
	s.block = nil
	return nil
}
