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

package indent

import (
	"github.com/rchamberlin/fmtpipe/internal/errdefs"
	"github.com/rchamberlin/fmtpipe/pkg/chain"
	"github.com/rchamberlin/fmtpipe/pkg/codes"
	"github.com/rchamberlin/fmtpipe/pkg/sink"
)

// Default chain capacities for the buffered form. The chain exists for
// short-write recovery, not throughput, so the buffers stay small.
const (
	WriteBufferSize = 64
	ReadBufferSize  = 8
)

// WithWriteBufferSize sets the chain's accumulation capacity. Only the
// chained constructor uses it; New ignores it.
func WithWriteBufferSize(n int) Option {
	return func(c *config) { c.wsize = n }
}

// WithReadBufferSize sets the chain's read-ahead capacity. Only the
// chained constructor uses it; New ignores it.
func WithReadBufferSize(n int) Option {
	return func(c *config) { c.rsize = n }
}

// Buffered routes the filter through a chain.Buffer: the chain
// accumulates producer writes and absorbs short sink acceptance, and
// its transform hook is the filter's decode step. Output is
// byte-identical to the direct Filter.
//
// Indent and Undent enqueue mark bytes in stream order, so level
// changes line up with content already buffered ahead of them. A
// failure to enqueue is sticky and surfaces on the next call that can
// return an error.
type Buffered struct {
	f *Filter
	b *chain.Buffer

	err error
}

// NewBuffered creates the chained composition over next.
func NewBuffered(next sink.Sink, opts ...Option) (*Buffered, error) {
	c := applyOptions(opts)
	f, err := newFilter(next, c)
	if err != nil {
		return nil, err
	}
	b, err := chain.New(next,
		chain.WithTransform(f.Write),
		chain.WithWriteBufferSize(c.wsize),
		chain.WithReadBufferSize(c.rsize),
	)
	if err != nil {
		return nil, err
	}
	return &Buffered{f: f, b: b}, nil
}

// Indent enqueues an IndentMark, keeping stream order with buffered
// content. Returns the receiver for chaining.
func (w *Buffered) Indent() *Buffered {
	w.mark(codes.IndentMark)
	return w
}

// Undent enqueues an UndentMark.
func (w *Buffered) Undent() *Buffered {
	w.mark(codes.UndentMark)
	return w
}

func (w *Buffered) mark(m byte) {
	if w.err != nil {
		return
	}
	n, err := w.b.Write([]byte{m})
	if err != nil {
		w.err = err
		return
	}
	if n == 0 {
		w.err = errdefs.ErrNoProgress
	}
}

// Write hands p to the chain. Counts follow the Sink contract: a short
// count with a nil error means the chain is full and the sink stalled.
func (w *Buffered) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.b.Write(p)
}

// WriteString is Write for string producers.
func (w *Buffered) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Read serves bytes flowing upstream through the chain's read-ahead,
// when the sink supports reads.
func (w *Buffered) Read(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.b.Read(p)
}

// SetIncrement changes the spaces per level. It applies when bytes are
// decoded, so content already buffered indents at the new width once
// its line starts; drain first with Flush for a clean cut.
func (w *Buffered) SetIncrement(n int) {
	w.f.SetIncrement(n)
}

// Level reports the decoded nesting depth; marks still in the chain
// buffer are not counted yet.
func (w *Buffered) Level() int { return w.f.Level() }

// Flush drains the chain through the filter, pays owed indentation and
// flushes the sink.
func (w *Buffered) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.b.Flush(); err != nil {
		return err
	}
	return w.f.Flush()
}

// Close is the teardown flush; residue is surfaced, not dropped.
func (w *Buffered) Close() error {
	return w.Flush()
}

// Exec consumes structural instructions in order through the chain.
func (w *Buffered) Exec(ops ...Op) error {
	for _, op := range ops {
		switch op.kind {
		case opPush:
			w.Indent()
		case opPop:
			w.Undent()
		case opText:
			data := []byte(op.text)
			for len(data) > 0 {
				owed := w.f.pending
				n, err := w.Write(data)
				if err != nil {
					return err
				}
				data = data[n:]
				if n == 0 && w.f.pending == owed {
					return errdefs.ErrNoProgress
				}
			}
		}
		if w.err != nil {
			return w.err
		}
	}
	return nil
}
