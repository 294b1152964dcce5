package utils

import (
	"errors"
)

// ErrShortBuffer is returned when a read goes past the end of a Buffer.
var ErrShortBuffer = errors.New("buffer too short")

// Buffer is a simple wrapper around a []byte to facilitate efficient marshaling of keys.
// Multi-byte integers are written big-endian.
type Buffer struct {
	buf []byte
}

// NewBuffer creates a new buffer from the provided backing slice.
// Writes append to s and reads consume it from the front.
func NewBuffer(s []byte) *Buffer {
	return &Buffer{s}
}

// WriteUint8 appends a byte to the buffer.
func (b *Buffer) WriteUint8(c byte) {
	b.buf = append(b.buf, c)
}

// WriteUint16 appends v to the buffer on two bytes, big-endian.
func (b *Buffer) WriteUint16(v uint16) {
	b.buf = append(b.buf, byte(v>>8), byte(v))
}

// WriteUint8Slice appends the bytes of s to the buffer.
func (b *Buffer) WriteUint8Slice(s []uint8) {
	b.buf = append(b.buf, s...)
}

// ReadUint8 reads the next byte of the buffer.
// It returns ErrShortBuffer if the buffer is empty.
func (b *Buffer) ReadUint8() (byte, error) {
	if len(b.buf) < 1 {
		return 0, ErrShortBuffer
	}
	v := b.buf[0]
	b.buf = b.buf[1:]
	return v, nil
}

// ReadUint16 reads the next two bytes of the buffer as a big-endian uint16.
// It returns ErrShortBuffer if fewer than two bytes remain.
func (b *Buffer) ReadUint16() (uint16, error) {
	if len(b.buf) < 2 {
		return 0, ErrShortBuffer
	}
	v := uint16(b.buf[0])<<8 | uint16(b.buf[1])
	b.buf = b.buf[2:]
	return v, nil
}

// Next returns the next n bytes of the buffer and advances past them.
// The returned slice aliases the buffer.
func (b *Buffer) Next(n int) ([]byte, error) {
	if n < 0 || len(b.buf) < n {
		return nil, ErrShortBuffer
	}
	v := b.buf[:n]
	b.buf = b.buf[n:]
	return v, nil
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Bytes returns the unread content of the buffer, which is the whole encoding
// when the buffer has only been written to.
func (b *Buffer) Bytes() []byte {
	return b.buf
}
