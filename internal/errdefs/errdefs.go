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

package errdefs

import "errors"

var (
	ErrNilSink          = errors.New("sink must not be nil")
	ErrSinkCount        = errors.New("sink reported an impossible byte count")
	ErrNoProgress       = errors.New("short write with no progress")
	ErrFlushIncomplete  = errors.New("could not flush all buffered output")
	ErrBufferSize       = errors.New("buffer size must be positive")
	ErrIndentWidth      = errors.New("indent width must not be negative")
	ErrNotReadable      = errors.New("next sink does not support reads")
	ErrConfig           = errors.New("config error")
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInvalidFlag      = errors.New("invalid flag usage")
	ErrStdinStat        = errors.New("failed to stat stdin")
	ErrStdinTerminal    = errors.New("stdin is a terminal: use a pipe or redirect, or pass a file")
	ErrOpenInput        = errors.New("failed to open input file")
	ErrOpenOutput       = errors.New("failed to open output file")
	ErrOpenProfilesFile = errors.New("failed to open profiles file")
	ErrInvalidProfile   = errors.New("invalid format profile")
	ErrProfileNotFound  = errors.New("format profile not found")
)
