// Copyright (c) tkc17.

package util

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Buffer is a bounded buffer which extends io.Writer.
// The oldest bytes are dropped when the capacity is exceeded.
type Buffer interface {
	io.Writer
	// WriteLine writes a formatted line to the buffer.
	WriteLine(format string, args ...any) error
	// Consume advances the buffer position by size.
	Consume(size int)
	// Len returns the length of the unread bytes.
	Len() int
	// String returns the string of the unread bytes.
	String() string
	// StringWithLen returns the string and size of the unread bytes.
	StringWithLen() (string, int)
	// Truncated returns true if older bytes have been dropped.
	Truncated() bool
}

type boundedBuffer struct {
	maxCap    int
	mutex     *sync.Mutex
	buffer    *bytes.Buffer
	truncated bool
}

// NewBuffer creates an instance of Buffer.
func NewBuffer(maxCap int) Buffer {
	return &boundedBuffer{maxCap: maxCap, mutex: &sync.Mutex{}, buffer: &bytes.Buffer{}}
}

// Write writes to the buffer.
func (b *boundedBuffer) Write(ba []byte) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	n, err := b.buffer.Write(ba)
	if err != nil {
		return n, err
	}
	excess := b.buffer.Len() - b.maxCap
	if excess > 0 {
		// Consume the excess (FIFO).
		b.buffer.Next(excess)
		b.truncated = true
	}
	return n, nil
}

// WriteLine implements Buffer method.
func (b *boundedBuffer) WriteLine(format string, args ...any) error {
	_, err := b.Write([]byte(fmt.Sprintf(format+"\n", args...)))
	return err
}

// Len implements Buffer method.
func (b *boundedBuffer) Len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.Len()
}

// Consume implements Buffer method.
func (b *boundedBuffer) Consume(size int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	// Keep only the data from the offset.
	b.buffer.Next(size)
}

// String implements Buffer method.
func (b *boundedBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.String()
}

// StringWithLen implements Buffer method.
func (b *boundedBuffer) StringWithLen() (string, int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.String(), b.buffer.Len()
}

// Truncated implements Buffer method.
func (b *boundedBuffer) Truncated() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.truncated
}
