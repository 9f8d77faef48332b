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

package sink

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
)

// quotaSink accepts at most quota bytes per call.
type quotaSink struct {
	out   bytes.Buffer
	quota int
}

func (s *quotaSink) Write(p []byte) (int, error) {
	n := len(p)
	if n > s.quota {
		n = s.quota
	}
	s.out.Write(p[:n])
	return n, nil
}

func (s *quotaSink) Flush() error { return nil }

func TestNewWriter_RetriesShortCounts(t *testing.T) {
	s := &quotaSink{quota: 3}
	w := NewWriter(s)

	data := []byte("backpressure is not an error")
	n, err := w.Write(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(data) {
		t.Fatalf("expected %d bytes written; got: %d", len(data), n)
	}
	if !bytes.Equal(s.out.Bytes(), data) {
		t.Fatalf("expected %q; got: %q", data, s.out.Bytes())
	}
}

type deadSink struct{}

func (deadSink) Write(p []byte) (int, error) { return 0, nil }
func (deadSink) Flush() error                { return nil }

func TestNewWriter_ErrNoProgress(t *testing.T) {
	w := NewWriter(deadSink{})
	_, err := w.Write([]byte("x"))
	if !errors.Is(err, errdefs.ErrNoProgress) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrNoProgress, err)
	}
}

type lyingSink struct{}

func (lyingSink) Write(p []byte) (int, error) { return len(p) + 1, nil }
func (lyingSink) Flush() error                { return nil }

func TestNewWriter_ErrSinkCount(t *testing.T) {
	w := NewWriter(lyingSink{})
	_, err := w.Write([]byte("x"))
	if !errors.Is(err, errdefs.ErrSinkCount) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrSinkCount, err)
	}
}

func TestFromWriter_ReadWriter(t *testing.T) {
	var buf bytes.Buffer
	s := FromWriter(&buf)

	if _, err := s.Write([]byte("ping")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, ok := s.(Reader)
	if !ok {
		t.Fatal("expected sink over a ReadWriter to implement Reader")
	}
	got := make([]byte, 4)
	n, err := r.Read(got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got[:n]) != "ping" {
		t.Fatalf("expected 'ping'; got: %q", got[:n])
	}
}

func TestBuffer_Records(t *testing.T) {
	var b Buffer
	if _, err := b.Write([]byte("one ")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Write([]byte("two")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.String() != "one two" {
		t.Fatalf("expected 'one two'; got: %q", b.String())
	}
}

func TestFd_PipeRoundTrip(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	ws := NewFd(int(w.Fd()))
	data := []byte("through the descriptor")
	total := 0
	for total < len(data) {
		n, werr := ws.Write(data[total:])
		if werr != nil {
			t.Fatalf("unexpected error: %v", werr)
		}
		total += n
	}

	rs := NewFd(int(r.Fd()))
	got := make([]byte, len(data))
	read := 0
	for read < len(got) {
		n, rerr := rs.Read(got[read:])
		if rerr != nil {
			t.Fatalf("unexpected error: %v", rerr)
		}
		read += n
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("expected %q; got: %q", data, got)
	}
}
