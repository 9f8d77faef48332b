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

// Package sink defines the downstream contract of a filter chain.
//
// A Sink differs from io.Writer in one deliberate way: a short count
// with a nil error is not a violation, it is backpressure. The caller
// owns the unaccepted remainder and must retry it. A non-nil error is
// fatal; the count reports how many bytes were accepted before it.
//
// The adapters bridge both directions: FromWriter turns an io.Writer
// into a Sink, and NewWriter turns a Sink back into an io.Writer for
// callers that want the retry loop owned for them rather than driving
// it themselves the way internal/pump does.
package sink

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
)

// Sink accepts runs of bytes. It may keep internal state across calls.
type Sink interface {
	// Write delivers p downstream and returns the number of bytes
	// accepted, 0 <= n <= len(p). n < len(p) with a nil error means
	// backpressure: retry p[n:].
	Write(p []byte) (int, error)

	// Flush forces any bytes the sink is holding downstream.
	Flush() error
}

// Reader is implemented by sinks that can also supply bytes flowing
// upstream, for bidirectional filters. A count short of len(p) or a
// zero count denotes end of input.
type Reader interface {
	Read(p []byte) (int, error)
}

// FromWriter wraps an io.Writer as a Sink. io.Writer semantics already
// forbid silent short writes, so every accepted count is full unless
// the writer failed. If w also implements io.Reader, the returned sink
// implements Reader.
func FromWriter(w io.Writer) Sink {
	if rw, ok := w.(io.ReadWriter); ok {
		return &readWriterSink{writerSink{w: w}, rw}
	}
	return &writerSink{w: w}
}

type writerSink struct {
	w io.Writer
}

func (s *writerSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *writerSink) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

type readWriterSink struct {
	writerSink
	r io.Reader
}

func (s *readWriterSink) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// NewWriter adapts a Sink to io.Writer by retrying short acceptance
// until the run is delivered. A sink that accepts nothing twice in a
// row is treated as stalled.
func NewWriter(s Sink) io.Writer {
	return &retryWriter{s: s}
}

type retryWriter struct {
	s Sink
}

func (w *retryWriter) Write(p []byte) (int, error) {
	total := 0
	stalled := false
	for total < len(p) {
		n, err := w.s.Write(p[total:])
		if n < 0 || n > len(p)-total {
			return total, fmt.Errorf("sink accepted %d of %d: %w", n, len(p)-total, errdefs.ErrSinkCount)
		}
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			if stalled {
				return total, errdefs.ErrNoProgress
			}
			stalled = true
			continue
		}
		stalled = false
	}
	return total, nil
}

// Buffer is an in-memory Sink that records everything written to it.
// The zero value is ready to use.
type Buffer struct {
	buf bytes.Buffer
}

func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *Buffer) Flush() error { return nil }

func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

func (b *Buffer) String() string { return b.buf.String() }

func (b *Buffer) Reset() { b.buf.Reset() }
