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

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rchamberlin/fmtpipe/internal/env"
	"github.com/rchamberlin/fmtpipe/internal/errdefs"
	"github.com/rchamberlin/fmtpipe/internal/logging"
	"github.com/rchamberlin/fmtpipe/internal/profile"
	"github.com/rchamberlin/fmtpipe/internal/pump"
	"github.com/rchamberlin/fmtpipe/pkg/codes"
	"github.com/rchamberlin/fmtpipe/pkg/indent"
	"github.com/rchamberlin/fmtpipe/pkg/sink"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func runFormat(cmd *cobra.Command, args []string) error {
	logger, err := logging.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	logger.DebugContext(cmd.Context(), "parameters received in fmtpipe",
		"profilesFile", viper.GetString(env.PROFILES_FILE.ViperKey),
		"profile", viper.GetString(env.PROFILE.ViperKey),
		"indentWidth", viper.GetInt(env.INDENT_WIDTH.ViperKey),
		"output", viper.GetString("fmtpipe.format.output"),
		"rawMarks", viper.GetBool("fmtpipe.format.rawMarks"),
	)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		logger.DebugContext(cmd.Context(), "flag value", "name", f.Name, "value", f.Value.String())
	})

	if viper.GetInt(env.INDENT_WIDTH.ViperKey) < 0 {
		return fmt.Errorf("%w: --indent-width must not be negative", errdefs.ErrInvalidFlag)
	}

	data, err := readInput(args)
	if err != nil {
		logger.Error("Failed to read input", "error", err)
		return err
	}

	if !viper.GetBool("fmtpipe.format.rawMarks") {
		data = codes.AnnotateBraces(data)
	}

	opts, err := filterOptions(cmd, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput()
	if err != nil {
		logger.Error("Failed to open output", "error", err)
		return err
	}
	defer closeOut()

	w, err := indent.NewBuffered(out, opts...)
	if err != nil {
		return err
	}

	p := pump.New(cmd.Context(), logger)
	if err := p.Run(bytes.NewReader(data), w); err != nil {
		logger.Error("Formatting failed", "error", err)
		return err
	}

	return w.Close()
}

// readInput returns the whole input: the file argument if given,
// otherwise piped stdin. An interactive stdin is rejected.
func readInput(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errdefs.ErrOpenInput, err)
		}
		return data, nil
	}

	if _, err := os.Stdin.Stat(); err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrStdinStat, err)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errdefs.ErrStdinTerminal
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("could not read stdin: %w", err)
	}
	return data, nil
}

// filterOptions resolves the indent options, profile first, with an
// explicitly set --indent-width overriding the profile.
func filterOptions(cmd *cobra.Command, logger *slog.Logger) ([]indent.Option, error) {
	var opts []indent.Option

	if name := viper.GetString(env.PROFILE.ViperKey); name != "" {
		docs, err := profile.Load(logger, env.PROFILES_FILE.ValueOrDefault())
		if err != nil {
			return nil, err
		}
		doc, err := profile.Find(docs, name)
		if err != nil {
			return nil, err
		}
		logger.Debug("using format profile", "profile", name)
		opts = append(opts, profile.FilterOptions(doc)...)
	}

	if cmd.Flags().Changed("indent-width") || len(opts) == 0 {
		opts = append(opts, indent.WithIncrement(viper.GetInt(env.INDENT_WIDTH.ViperKey)))
	}
	return opts, nil
}

// openOutput picks the sink: --output file, or stdout by descriptor.
func openOutput() (sink.Sink, func(), error) {
	if path := viper.GetString("fmtpipe.format.output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", errdefs.ErrOpenOutput, err)
		}
		return sink.FromWriter(f), func() { _ = f.Close() }, nil
	}
	return sink.NewFd(int(os.Stdout.Fd())), func() {}, nil
}
