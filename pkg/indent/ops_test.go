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
	"errors"
	"testing"

	"github.com/rchamberlin/fmtpipe/pkg/sink"
)

func TestExec_Block(t *testing.T) {
	var out sink.Buffer
	f, err := New(&out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ops := []Op{Text("A")}
	ops = append(ops, Block('{', '}', Text("B"))...)
	if err := f.Exec(ops...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "A{\n    B\n}\n" {
		t.Fatalf("expected %q; got: %q", "A{\n    B\n}\n", out.String())
	}
}

func TestExec_PushPopClamp(t *testing.T) {
	var out sink.Buffer
	f, err := New(&out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.Exec(Pop(), Pop(), Text("a\n"), Push(), Text("b\n"), Pop(), Text("c\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "a\n    b\nc\n" {
		t.Fatalf("expected %q; got: %q", "a\n    b\nc\n", out.String())
	}
	if f.Level() != 0 {
		t.Fatalf("expected level 0; got: %d", f.Level())
	}
}

func TestExec_AbsorbsBackpressure(t *testing.T) {
	s := &quotaSink{quota: 1}
	f, err := New(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ops := Block('{', '}', Text("nested text, delivered byte by byte\n"))
	if err := f.Exec(ops...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "{\n    nested text, delivered byte by byte\n}\n"
	if s.out.String() != want {
		t.Fatalf("expected %q; got: %q", want, s.out.String())
	}
}

func TestExec_SinkFailure(t *testing.T) {
	boom := errors.New("boom")
	f, err := New(&failAfterSink{left: 1, err: boom})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if execErr := f.Exec(Text("ab")); !errors.Is(execErr, boom) {
		t.Fatalf("expected '%v'; got: '%v'", boom, execErr)
	}
}

func TestBuffered_Exec(t *testing.T) {
	var out sink.Buffer
	w, err := NewBuffered(&out, WithIncrement(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ops := []Op{Text("fn main() ")}
	ops = append(ops, Block('{', '}', Text("run()\n"))...)
	if err := w.Exec(ops...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.String() != "fn main() {\n  run()\n}\n" {
		t.Fatalf("expected %q; got: %q", "fn main() {\n  run()\n}\n", out.String())
	}
}
