// Copyright 2026 Richard Chamberlin (rchamberlin)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package chain provides a generic buffered pass-through that sits
// between a producer and a sink. It accumulates writes, hands the
// accumulated run to an overridable transform hook when full or on
// Flush, and keeps whatever the hook could not consume for the next
// round, in order, with no loss or duplication.
//
// The hook is a function field, not an inherited method: buffering
// policy and whatever the hook does stay independently testable.
package chain

import (
	"fmt"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
	"github.com/rchamberlin/fmtpipe/pkg/sink"
)

const (
	DefaultWriteBufferSize = 4096
	DefaultReadBufferSize  = 4096
)

// TransformFunc consumes a prefix of p, delivering whatever it produces
// to the downstream sink itself, and reports how many input bytes it
// consumed. Consuming fewer than len(p) with a nil error means the
// downstream stalled; the remainder is retained and offered again.
type TransformFunc func(p []byte) (int, error)

// ReadTransformFunc fills p with filtered upstream bytes and reports
// how many it produced. Zero with a nil error denotes end of input.
type ReadTransformFunc func(p []byte) (int, error)

// Buffer chains writes toward a sink through a transform hook. One
// goroutine at a time; the sink is referenced, never owned, and must
// outlive the buffer.
type Buffer struct {
	next sink.Sink

	transform     TransformFunc
	readTransform ReadTransformFunc

	buf  []byte // accumulated output, len = held bytes
	rbuf []byte // read-ahead, rbuf[rpos:] not yet served
	rpos int
	rerr error // read failure held back until buffered bytes are served

	wsize int
	rsize int
}

type Option func(*Buffer)

// WithWriteBufferSize sets the accumulation capacity in bytes.
func WithWriteBufferSize(n int) Option {
	return func(b *Buffer) { b.wsize = n }
}

// WithReadBufferSize sets the read-ahead capacity in bytes.
func WithReadBufferSize(n int) Option {
	return func(b *Buffer) { b.rsize = n }
}

// WithTransform replaces the pass-through write hook.
func WithTransform(fn TransformFunc) Option {
	return func(b *Buffer) { b.transform = fn }
}

// WithReadTransform replaces the pass-through read hook.
func WithReadTransform(fn ReadTransformFunc) Option {
	return func(b *Buffer) { b.readTransform = fn }
}

// New creates a buffer chained to next. A nil next is an immediate
// construction failure, never deferred to the first write.
func New(next sink.Sink, opts ...Option) (*Buffer, error) {
	if next == nil {
		return nil, errdefs.ErrNilSink
	}
	b := &Buffer{
		next:  next,
		wsize: DefaultWriteBufferSize,
		rsize: DefaultReadBufferSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.wsize <= 0 || b.rsize <= 0 {
		return nil, errdefs.ErrBufferSize
	}
	if b.transform == nil {
		b.transform = b.passThrough
	}
	if b.readTransform == nil {
		b.readTransform = b.readPassThrough
	}
	b.buf = make([]byte, 0, b.wsize)
	b.rbuf = make([]byte, 0, b.rsize)
	return b, nil
}

// Write accumulates p. When the buffer fills it is drained through the
// transform; if the downstream stalls with the buffer still full, the
// count of bytes taken so far is returned with a nil error and the
// caller retries the rest.
func (b *Buffer) Write(p []byte) (int, error) {
	taken := 0
	for taken < len(p) {
		if len(b.buf) == cap(b.buf) {
			if err := b.drain(); err != nil {
				return taken, err
			}
			if len(b.buf) == cap(b.buf) {
				return taken, nil
			}
		}
		n := copy(b.buf[len(b.buf):cap(b.buf)], p[taken:])
		b.buf = b.buf[:len(b.buf)+n]
		taken += n
	}
	return taken, nil
}

// drain offers the held run to the transform once and shifts the
// unconsumed remainder to the front.
func (b *Buffer) drain() error {
	if len(b.buf) == 0 {
		return nil
	}
	n, err := b.transform(b.buf)
	if n < 0 || n > len(b.buf) {
		return fmt.Errorf("transform consumed %d of %d: %w", n, len(b.buf), errdefs.ErrSinkCount)
	}
	if n > 0 {
		rem := copy(b.buf, b.buf[n:])
		b.buf = b.buf[:rem]
	}
	return err
}

// Flush drains the buffer and flushes the sink. If the downstream
// still refuses bytes the residue stays buffered and the failure is
// reported; Flush may be retried.
func (b *Buffer) Flush() error {
	if err := b.drain(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if len(b.buf) > 0 {
		return fmt.Errorf("%d bytes retained: %w", len(b.buf), errdefs.ErrFlushIncomplete)
	}
	return b.next.Flush()
}

// Close is the teardown flush. Residue that still cannot be delivered
// is surfaced, not swallowed.
func (b *Buffer) Close() error {
	return b.Flush()
}

// Buffered reports how many accumulated bytes have not yet been
// consumed by the transform.
func (b *Buffer) Buffered() int {
	return len(b.buf)
}

// Read serves from the read-ahead buffer, refilling it through the
// read transform on exhaustion. A zero count with a nil error is end
// of input.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.rpos == len(b.rbuf) {
		if b.rerr != nil {
			err := b.rerr
			b.rerr = nil
			return 0, err
		}
		n, err := b.readTransform(b.rbuf[:cap(b.rbuf)])
		if n < 0 || n > cap(b.rbuf) {
			return 0, fmt.Errorf("read transform produced %d of %d: %w", n, cap(b.rbuf), errdefs.ErrSinkCount)
		}
		b.rbuf = b.rbuf[:n]
		b.rpos = 0
		if n == 0 {
			return 0, err
		}
		// Serve what arrived first; hold the error for the next call.
		b.rerr = err
	}
	n := copy(p, b.rbuf[b.rpos:])
	b.rpos += n
	return n, nil
}

func (b *Buffer) passThrough(p []byte) (int, error) {
	return b.next.Write(p)
}

func (b *Buffer) readPassThrough(p []byte) (int, error) {
	r, ok := b.next.(sink.Reader)
	if !ok {
		return 0, errdefs.ErrNotReadable
	}
	return r.Read(p)
}
