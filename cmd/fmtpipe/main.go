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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rchamberlin/fmtpipe/cmd/fmtpipe/profiles"
	"github.com/rchamberlin/fmtpipe/internal/env"
	"github.com/rchamberlin/fmtpipe/internal/errdefs"
	"github.com/rchamberlin/fmtpipe/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := NewRootCmd()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:   "fmtpipe [file]",
		Short: "fmtpipe re-indents structured text",
		Long: `fmtpipe re-indents generated or hand-written text from its block
structure. By default braces in the input are treated as block
delimiters; with --raw-marks the input is expected to already carry
the control bytes emitted by a generator.

Examples:
  some-generator | fmtpipe
  fmtpipe --indent-width 2 main.c.in
  fmtpipe --profile kernel --output out.c main.c.in
  fmtpipe profiles
`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := LoadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Config error:", err)
				os.Exit(1)
			}

			levelVar := new(slog.LevelVar)
			levelVar.Set(logging.ParseLevel(viper.GetString(env.LOG_LEVEL.ViperKey)))

			handler := &logging.LineHandler{
				Inner:  slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}),
				Writer: os.Stderr,
			}
			logger := slog.New(handler)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, logging.CtxLogger, logger)
			ctx = context.WithValue(ctx, logging.CtxLevelVar, levelVar)
			ctx = context.WithValue(ctx, logging.CtxHandler, handler)
			cmd.SetContext(ctx)

			if logfile := viper.GetString(env.LOG_FILE.ViperKey); logfile != "" {
				return logging.SetupFileLogger(cmd, logfile, viper.GetString(env.LOG_LEVEL.ViperKey))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args)
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("profiles-file", "", "path to the FormatProfile YAML file")
	_ = viper.BindPFlag(env.LOG_LEVEL.ViperKey, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(env.LOG_FILE.ViperKey, rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag(env.PROFILES_FILE.ViperKey, rootCmd.PersistentFlags().Lookup("profiles-file"))

	rootCmd.Flags().StringP("output", "o", "", "write output to this file instead of stdout")
	rootCmd.Flags().IntP("indent-width", "w", 4, "spaces per nesting level")
	rootCmd.Flags().StringP("profile", "p", "", "format profile name")
	rootCmd.Flags().Bool("raw-marks", false, "input already contains control marks; do not annotate braces")
	_ = viper.BindPFlag(env.INDENT_WIDTH.ViperKey, rootCmd.Flags().Lookup("indent-width"))
	_ = viper.BindPFlag(env.PROFILE.ViperKey, rootCmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("fmtpipe.format.output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("fmtpipe.format.rawMarks", rootCmd.Flags().Lookup("raw-marks"))

	rootCmd.AddCommand(profiles.NewProfilesCmd())

	return rootCmd
}

func LoadConfig() error {
	if viper.GetString(env.CONFIG_FILE.ViperKey) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("err: %v", err)
		}
		configPath := filepath.Join(home, ".fmtpipe")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configPath)
	}
	_ = env.CONFIG_FILE.BindEnv()

	var profilesFile string
	if viper.GetString(env.PROFILES_FILE.ViperKey) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("err: %v", err)
		}
		profilesFile = filepath.Join(home, ".fmtpipe", "profiles.yaml")
	}
	_ = env.PROFILES_FILE.BindEnv()
	env.PROFILES_FILE.SetDefault(profilesFile)

	_ = env.LOG_LEVEL.BindEnv()
	env.LOG_LEVEL.SetDefault("info")

	_ = env.LOG_FILE.BindEnv()
	_ = env.INDENT_WIDTH.BindEnv()
	_ = env.PROFILE.BindEnv()

	if err := viper.ReadInConfig(); err != nil {
		// File not found is OK if ENV is set
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			// Config file was found but another error was produced
			return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
		}
	}

	return nil
}
