package random

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// ChaCha20 is a deterministic provider whose output is the ChaCha20 keystream
// under the key BLAKE2b-256(seed) and an all-zero nonce.
var ChaCha20 Generator = chacha20Generator{}

type chacha20Generator struct{}

func (chacha20Generator) Name() string        { return "chacha20" }
func (chacha20Generator) Deterministic() bool { return true }

func (chacha20Generator) New(seed []byte) (State, error) {
	var err error
	if seed == nil {
		if seed, err = systemSeed(chacha20.KeySize); err != nil {
			return nil, err
		}
	}

	key := blake2b.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, err
	}

	return &chacha20State{c: c}, nil
}

type chacha20State struct {
	c *chacha20.Cipher
}

func (s *chacha20State) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.c.XORKeyStream(p, p)
	return len(p), nil
}

func (s *chacha20State) Close() error {
	s.c = nil
	return nil
}
