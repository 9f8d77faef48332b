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

package pump

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
	"github.com/rchamberlin/fmtpipe/pkg/codes"
	"github.com/rchamberlin/fmtpipe/pkg/indent"
	"github.com/rchamberlin/fmtpipe/pkg/sink"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

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

type failSink struct{ err error }

func (s *failSink) Write(p []byte) (int, error) { return 0, s.err }
func (s *failSink) Flush() error                { return nil }

func TestRun_DeliversEverything(t *testing.T) {
	s := &quotaSink{quota: 3}
	p := New(context.Background(), testLogger())

	data := strings.Repeat("all bytes arrive, in order. ", 100)
	if err := p.Run(strings.NewReader(data), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.out.String() != data {
		t.Fatalf("expected %d bytes delivered; got: %d", len(data), s.out.Len())
	}
}

func TestRun_ThroughIndentFilter(t *testing.T) {
	in := append([]byte("func f() "), codes.BlockBegin('{')...)
	in = append(in, []byte("return\n")...)
	in = append(in, codes.BlockEnd('}')...)

	var out sink.Buffer
	w, err := indent.NewBuffered(&out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := New(context.Background(), testLogger())
	if err := p.Run(bytes.NewReader(in), w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "func f() {\n    return\n}\n" {
		t.Fatalf("expected formatted output; got: %q", out.String())
	}
}

func TestRun_SinkFailure(t *testing.T) {
	boom := errors.New("boom")
	p := New(context.Background(), testLogger())

	err := p.Run(strings.NewReader("doomed"), &failSink{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected '%v'; got: '%v'", boom, err)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(ctx, testLogger())
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer pr.Close()
	defer pw.Close()

	var out sink.Buffer
	runErr := p.Run(pr, &out)
	if !errors.Is(runErr, context.Canceled) {
		t.Fatalf("expected '%v'; got: '%v'", context.Canceled, runErr)
	}
}

func TestMoveBytes_ZeroProgress(t *testing.T) {
	p := New(context.Background(), testLogger())

	err := p.moveBytes(strings.NewReader("stuck"), deadSink{})
	if !errors.Is(err, errdefs.ErrNoProgress) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrNoProgress, err)
	}
}

type deadSink struct{}

func (deadSink) Write(p []byte) (int, error) { return 0, nil }
func (deadSink) Flush() error                { return nil }
