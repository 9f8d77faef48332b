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
	"fmt"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
)

// Op is one structural instruction: text, push a level, or pop one.
// The closed instruction set is the collision-free alternative to
// embedding mark bytes in content: structure travels out of band, so
// text may contain any byte value as literal content except the marks
// themselves, which keep their in-band meaning at the filter.
type Op struct {
	kind opKind
	text string
}

type opKind int

const (
	opText opKind = iota
	opPush
	opPop
)

// Text is a run of content consumed by the filter as written.
func Text(s string) Op { return Op{kind: opText, text: s} }

// Push raises the nesting level for lines not yet started.
func Push() Op { return Op{kind: opPush} }

// Pop lowers the nesting level, clamped at zero.
func Pop() Op { return Op{kind: opPop} }

// Block wraps inner ops in delimiters with one extra level of nesting,
// the instruction-level counterpart of codes.BlockBegin/BlockEnd.
func Block(open, close byte, inner ...Op) []Op {
	ops := make([]Op, 0, len(inner)+4)
	ops = append(ops, Text(string(open)), Push(), Text("\n"))
	ops = append(ops, inner...)
	ops = append(ops, Pop(), Text("\n"), Text(string(close)), Text("\n"))
	return ops
}

// Exec consumes ops in order, absorbing sink backpressure by retrying
// until each op is fully applied. A sink that accepts nothing across
// consecutive rounds is stalled and reported as a failure.
func (f *Filter) Exec(ops ...Op) error {
	for _, op := range ops {
		switch op.kind {
		case opPush:
			f.Indent()
		case opPop:
			f.Undent()
		case opText:
			data := []byte(op.text)
			for len(data) > 0 {
				owed := f.pending
				n, err := f.Write(data)
				if err != nil {
					return err
				}
				data = data[n:]
				if n == 0 && f.pending == owed {
					return fmt.Errorf("text op stalled: %w", errdefs.ErrNoProgress)
				}
			}
		}
	}
	return nil
}
