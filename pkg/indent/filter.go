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

// Package indent re-indents a character stream from structural marks
// embedded in it. IndentMark and UndentMark bytes adjust the nesting
// level and are consumed; every line's original leading whitespace is
// discarded and replaced by level*increment spaces.
//
// Filter emits byte-at-a-time straight to its sink and reports partial
// progress on backpressure. Buffered layers the same filter behind a
// chain.Buffer, which is the composition most producers want.
package indent

import (
	"bytes"
	"fmt"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
	"github.com/rchamberlin/fmtpipe/pkg/codes"
	"github.com/rchamberlin/fmtpipe/pkg/sink"
)

// DefaultIncrement is the number of spaces emitted per nesting level.
const DefaultIncrement = 4

// SpaceFunc classifies a byte as whitespace for line-start suppression.
type SpaceFunc func(byte) bool

// ASCIISpace is the default SpaceFunc. It includes 0x0a, so leading
// blank lines are suppressed like any other leading whitespace.
func ASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Filter is the direct-emission indentation filter. It is bound to one
// sink for its whole life; the sink is referenced, never owned. Not
// safe for concurrent use.
type Filter struct {
	next      sink.Sink
	increment int
	level     int
	isSpace   SpaceFunc

	atLineStart bool
	pending     int // indent spaces owed to the current line after a short write

	spaces []byte // scratch run of spaces, grown as needed
	one    oneByte
}

type Option func(*config)

// config collects the knobs shared by both constructors. The buffer
// sizes apply only to the chained form; New ignores them.
type config struct {
	increment int
	isSpace   SpaceFunc
	wsize     int
	rsize     int
}

func applyOptions(opts []Option) config {
	c := config{
		increment: DefaultIncrement,
		isSpace:   ASCIISpace,
		wsize:     WriteBufferSize,
		rsize:     ReadBufferSize,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithIncrement sets the spaces emitted per nesting level.
func WithIncrement(n int) Option {
	return func(c *config) { c.increment = n }
}

// WithSpaceFunc supplies the whitespace predicate used at line starts.
func WithSpaceFunc(fn SpaceFunc) Option {
	return func(c *config) { c.isSpace = fn }
}

// New creates a filter emitting to next. A nil next fails immediately.
func New(next sink.Sink, opts ...Option) (*Filter, error) {
	return newFilter(next, applyOptions(opts))
}

func newFilter(next sink.Sink, c config) (*Filter, error) {
	if next == nil {
		return nil, errdefs.ErrNilSink
	}
	if c.increment < 0 {
		return nil, errdefs.ErrIndentWidth
	}
	if c.isSpace == nil {
		c.isSpace = ASCIISpace
	}
	return &Filter{
		next:        next,
		increment:   c.increment,
		isSpace:     c.isSpace,
		atLineStart: true,
	}, nil
}

// Indent raises the nesting level. It returns the filter for chaining
// and affects only lines that have not started yet.
func (f *Filter) Indent() *Filter {
	f.level++
	return f
}

// Undent lowers the nesting level, clamping at zero. Never an error.
func (f *Filter) Undent() *Filter {
	if f.level > 0 {
		f.level--
	}
	return f
}

// Level reports the current nesting depth.
func (f *Filter) Level() int { return f.level }

// SetIncrement changes the spaces per level for lines not yet started.
// Negative values are ignored.
func (f *Filter) SetIncrement(n int) {
	if n >= 0 {
		f.increment = n
	}
}

// Write consumes p in order and returns how many bytes of p were fully
// processed. A short count with a nil error is backpressure from the
// sink: retry p[n:]. Marks and suppressed whitespace count as
// processed once their effect is applied.
func (f *Filter) Write(p []byte) (int, error) {
	// Indentation owed from a previous call comes first. If it still
	// cannot be paid, no new input is consumed.
	if err := f.payPending(); err != nil {
		return 0, err
	}
	if f.pending > 0 {
		return 0, nil
	}

	for i := 0; i < len(p); i++ {
		b := p[i]

		if b == codes.IndentMark {
			f.Indent()
			continue
		}
		if b == codes.UndentMark {
			f.Undent()
			continue
		}

		if f.atLineStart {
			// Original leading whitespace never survives; the line's
			// indentation is rebuilt from the level alone.
			if f.isSpace(b) {
				continue
			}
			// The line starts here. Commit before paying so a retry
			// after a short write resumes the owed remainder instead
			// of recomputing a fresh indentation.
			f.pending = f.level * f.increment
			f.atLineStart = false
			if err := f.payPending(); err != nil {
				return i, err
			}
			if f.pending > 0 {
				return i, nil
			}
		}

		n, err := f.next.Write(singleByte(&f.one, b))
		if n < 0 || n > 1 {
			return i, fmt.Errorf("sink accepted %d of 1: %w", n, errdefs.ErrSinkCount)
		}
		if n == 0 {
			if err != nil {
				return i, err
			}
			return i, nil
		}
		f.atLineStart = b == codes.EndOfLine
		if err != nil {
			return i + 1, err
		}
	}
	return len(p), nil
}

// WriteString is Write for string producers.
func (f *Filter) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// Flush pays any owed indentation and flushes the sink. Residue the
// sink still refuses is reported, not dropped.
func (f *Filter) Flush() error {
	if err := f.payPending(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if f.pending > 0 {
		return fmt.Errorf("%d indent spaces retained: %w", f.pending, errdefs.ErrFlushIncomplete)
	}
	return f.next.Flush()
}

// Close is the teardown flush.
func (f *Filter) Close() error {
	return f.Flush()
}

// payPending retries the owed spaces while the sink makes progress.
// A zero-count round leaves the remainder pending for the caller.
func (f *Filter) payPending() error {
	for f.pending > 0 {
		n, err := f.next.Write(f.spaceRun(f.pending))
		if n < 0 || n > f.pending {
			return fmt.Errorf("sink accepted %d of %d: %w", n, f.pending, errdefs.ErrSinkCount)
		}
		f.pending -= n
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}

func (f *Filter) spaceRun(n int) []byte {
	if cap(f.spaces) < n {
		f.spaces = bytes.Repeat([]byte{' '}, n)
	}
	return f.spaces[:n]
}

// one backs the single-byte emission without a per-byte allocation.
type oneByte [1]byte

func singleByte(o *oneByte, b byte) []byte {
	o[0] = b
	return o[:]
}
