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

// Package codes defines the reserved control bytes that carry structure
// through an otherwise ordinary character stream, and builds the literal
// byte sequences producers write around block delimiters.
//
// The three values are in-band: content that uses them invokes their
// structural effect. Producers that cannot guarantee mark-free content
// should use the typed instruction API in pkg/indent instead.
package codes

const (
	// EndOfLine terminates a line. It doubles as the ordinary '\n'.
	EndOfLine byte = 0x0a

	// IndentMark raises the nesting level by one. Never emitted.
	IndentMark byte = 0x0f

	// UndentMark lowers the nesting level by one. Never emitted.
	UndentMark byte = 0x0e
)

// IsMark reports whether b is one of the structural marks that are
// consumed by the filter rather than emitted.
func IsMark(b byte) bool {
	return b == IndentMark || b == UndentMark
}

// EOL returns the end-of-line byte as a one-byte sequence.
func EOL() []byte {
	return []byte{EndOfLine}
}

// BlockBegin opens a block: the opening delimiter, one level deeper,
// new line. Writing "ns {" as text followed by BlockBegin is not
// needed; BlockBegin('{') already carries the delimiter.
func BlockBegin(open byte) []byte {
	return []byte{open, IndentMark, EndOfLine}
}

// BlockEnd closes a block on its own line: back one level, new line,
// the closing delimiter, new line.
func BlockEnd(close byte) []byte {
	return []byte{UndentMark, EndOfLine, close, EndOfLine}
}

// BlockEndSameLine closes a block but leaves the cursor on the closing
// delimiter's line, for chained constructs like "} else {".
func BlockEndSameLine(close byte) []byte {
	return []byte{UndentMark, EndOfLine, close}
}
