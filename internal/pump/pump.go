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

// Package pump moves bytes from an io.Reader into a sink, owning the
// retry loops the Sink contract asks of callers: short acceptance is
// retried, zero progress is a failure, sink errors end the run.
package pump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
	"github.com/rchamberlin/fmtpipe/pkg/sink"
	"golang.org/x/sync/errgroup"
)

type Pump struct {
	ctx      context.Context
	logger   *slog.Logger
	errGroup *errgroup.Group
}

func New(ctx context.Context, logger *slog.Logger) *Pump {
	errGroup, newCtx := errgroup.WithContext(ctx)

	return &Pump{
		ctx:      newCtx,
		logger:   logger,
		errGroup: errGroup,
	}
}

// moveBytes reads one chunk from r and delivers all of it to dst.
// io.EOF is returned once the source is exhausted.
func (p *Pump) moveBytes(r io.Reader, dst sink.Sink) error {
	//nolint:mnd // 32 KiB buffer
	buf := make([]byte, 32*1024)

	n, rerr := r.Read(buf)
	p.logger.DebugContext(p.ctx, "source post-read", "n", n)

	if n > 0 {
		delivered := 0
		for delivered < n {
			m, werr := dst.Write(buf[delivered:n])
			p.logger.DebugContext(p.ctx, "sink post-write", "m", m)
			if m < 0 || m > n-delivered {
				return fmt.Errorf("sink accepted %d of %d: %w", m, n-delivered, errdefs.ErrSinkCount)
			}
			delivered += m
			if werr != nil {
				return fmt.Errorf("could not write to sink: %w", werr)
			}
			if m == 0 {
				return errdefs.ErrNoProgress
			}
		}
	}

	if rerr != nil {
		if errors.Is(rerr, io.EOF) {
			return io.EOF
		}
		p.logger.ErrorContext(p.ctx, "source read error", "error", rerr)
		return fmt.Errorf("could not read from source: %w", rerr)
	}

	return nil
}

// runMover loops moveBytes until the source drains, the context ends
// or a failure surfaces. On a clean drain the sink is flushed.
func (p *Pump) runMover(r io.Reader, dst sink.Sink, ready chan struct{}, errFunc func()) error {
	close(ready)
	for {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		default:
			err := p.moveBytes(r, dst)
			if errors.Is(err, io.EOF) {
				if ferr := dst.Flush(); ferr != nil {
					p.logger.ErrorContext(p.ctx, "final flush failed", "error", ferr)
					return fmt.Errorf("final flush: %w", ferr)
				}
				return nil
			}
			if err != nil {
				p.logger.ErrorContext(
					p.ctx,
					"move error",
					"reader", fmt.Sprintf("%T", r),
					"sink", fmt.Sprintf("%T", dst),
					"error", err,
				)
				if errFunc != nil {
					errFunc()
				}
				return err
			}
		}
	}
}

// Start launches a mover goroutine in the pump's error group.
func (p *Pump) Start(r io.Reader, dst sink.Sink, ready chan struct{}, errFunc func()) {
	p.logger.DebugContext(
		p.ctx,
		"Start: launching mover goroutine",
		"reader", fmt.Sprintf("%T", r),
		"sink", fmt.Sprintf("%T", dst),
	)
	p.errGroup.Go(func() error {
		return p.runMover(r, dst, ready, errFunc)
	})
}

// Wait blocks until every mover has finished.
func (p *Pump) Wait() error {
	return p.errGroup.Wait()
}

// Run moves r into dst synchronously until end of input.
func (p *Pump) Run(r io.Reader, dst sink.Sink) error {
	ready := make(chan struct{})
	p.Start(r, dst, ready, nil)
	return p.Wait()
}
