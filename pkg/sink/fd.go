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

import "golang.org/x/sys/unix"

// Fd is a Sink writing straight to a file descriptor. On nonblocking
// descriptors the kernel's partial writes and EAGAIN surface here as
// honest backpressure counts instead of errors.
type Fd struct {
	fd int
}

// NewFd wraps the descriptor. The descriptor is borrowed, not owned;
// Flush and the sink's lifetime never close it.
func NewFd(fd int) *Fd {
	return &Fd{fd: fd}
}

func (s *Fd) Write(p []byte) (int, error) {
	n, err := unix.Write(s.fd, p)
	if n < 0 {
		n = 0
	}
	if err == unix.EAGAIN || err == unix.EINTR {
		return n, nil
	}
	return n, err
}

func (s *Fd) Read(p []byte) (int, error) {
	n, err := unix.Read(s.fd, p)
	if n < 0 {
		n = 0
	}
	if err == unix.EINTR {
		return n, nil
	}
	return n, err
}

func (s *Fd) Flush() error { return nil }
