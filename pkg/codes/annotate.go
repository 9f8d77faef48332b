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

package codes

// AnnotateBraces rewrites plain brace-delimited text into a
// mark-annotated stream: every '{' becomes a BlockBegin sequence and
// every '}' a BlockEnd, or BlockEndSameLine when more content follows
// on the same line ("} else {"). The result, fed through the indent
// filter, re-indents the input from its brace structure alone.
//
// Braces inside string literals or comments are not recognized; the
// annotator is byte-level, as is the filter beneath it.
func AnnotateBraces(p []byte) []byte {
	out := make([]byte, 0, len(p)+len(p)/4)
	for i := 0; i < len(p); i++ {
		switch b := p[i]; b {
		case '{':
			out = append(out, BlockBegin('{')...)
		case '}':
			if restOfLineBlank(p[i+1:]) {
				out = append(out, BlockEnd('}')...)
			} else {
				out = append(out, BlockEndSameLine('}')...)
			}
		default:
			out = append(out, b)
		}
	}
	return out
}

// restOfLineBlank reports whether p holds only horizontal whitespace
// up to the next newline (or the end of input).
func restOfLineBlank(p []byte) bool {
	for _, b := range p {
		switch b {
		case ' ', '\t', '\r':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}
