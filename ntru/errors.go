package ntru

import (
	"errors"

	"github.com/tuneinsight/ntru/random"
)

var (
	// ErrInvalidParameter is returned when a parameter set is inconsistent.
	ErrInvalidParameter = errors.New("invalid parameter set")

	// ErrNonInvertibleKey is returned when key generation could not find an
	// invertible private polynomial within MaxKeyGenAttempts samples. It is fatal.
	ErrNonInvertibleKey = errors.New("no invertible key polynomial found")

	// ErrInputTooLarge is returned when a message exceeds the capacity of the parameter set.
	ErrInputTooLarge = errors.New("message too large for parameter set")

	// ErrMalformedCiphertext is returned when a ciphertext has the wrong length.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrDecryptionInvalid is the single error returned by a failed decryption,
	// whichever integrity check failed.
	ErrDecryptionInvalid = errors.New("invalid ciphertext")

	// ErrMalformedKey is returned when an encoded key cannot be parsed.
	ErrMalformedKey = errors.New("malformed key")

	// ErrRandomnessUnavailable is returned when the randomness provider fails.
	ErrRandomnessUnavailable = random.ErrRandomnessUnavailable
)
