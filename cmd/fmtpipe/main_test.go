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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write %s: %v", name, err)
	}
	return path
}

func TestRootCmd_FormatsBraces(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "func f() {\nreturn\n}\n")
	out := filepath.Join(dir, "out.txt")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--log-level", "error", "--output", out, in})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("could not read output: %v", err)
	}
	want := "func f() {\n    return\n}\n"
	if string(got) != want {
		t.Fatalf("expected %q; got: %q", want, got)
	}
}

func TestRootCmd_IndentWidthFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "a {\nb\n}\n")
	out := filepath.Join(dir, "out.txt")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--log-level", "error", "--indent-width", "2", "--output", out, in})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("could not read output: %v", err)
	}
	want := "a {\n  b\n}\n"
	if string(got) != want {
		t.Fatalf("expected %q; got: %q", want, got)
	}
}

func TestRootCmd_ProfileSelectsWidth(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "a {\nb\n}\n")
	profiles := writeFile(t, dir, "profiles.yaml", `apiVersion: fmtpipe/v1beta1
kind: FormatProfile
metadata:
  name: kernel
spec:
  indentWidth: 8
`)
	out := filepath.Join(dir, "out.txt")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{
		"--log-level", "error",
		"--profiles-file", profiles,
		"--profile", "kernel",
		"--output", out,
		in,
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("could not read output: %v", err)
	}
	want := "a {\n        b\n}\n"
	if string(got) != want {
		t.Fatalf("expected %q; got: %q", want, got)
	}
}

func Test_ErrProfileNotFound(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "a\n")
	profiles := writeFile(t, dir, "profiles.yaml", `apiVersion: fmtpipe/v1beta1
kind: FormatProfile
metadata:
  name: narrow
spec:
  indentWidth: 2
`)

	cmd := NewRootCmd()
	cmd.SetArgs([]string{
		"--log-level", "error",
		"--profiles-file", profiles,
		"--profile", "missing",
		in,
	})
	if err := cmd.Execute(); !errors.Is(err, errdefs.ErrProfileNotFound) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrProfileNotFound, err)
	}
}

func Test_ErrInvalidFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", "a\n")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--log-level", "error", "--indent-width=-3", in})
	if err := cmd.Execute(); !errors.Is(err, errdefs.ErrInvalidFlag) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrInvalidFlag, err)
	}
}

func Test_ErrOpenInput(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--log-level", "error", filepath.Join(t.TempDir(), "absent.txt")})
	if err := cmd.Execute(); !errors.Is(err, errdefs.ErrOpenInput) {
		t.Fatalf("expected '%v'; got: '%v'", errdefs.ErrOpenInput, err)
	}
}

func TestProfilesCmd_ListsNames(t *testing.T) {
	dir := t.TempDir()
	profiles := writeFile(t, dir, "profiles.yaml", `apiVersion: fmtpipe/v1beta1
kind: FormatProfile
metadata:
  name: narrow
spec:
  indentWidth: 2
---
apiVersion: fmtpipe/v1beta1
kind: FormatProfile
metadata:
  name: kernel
spec:
  indentWidth: 8
`)

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"profiles", "--log-level", "error", "--profiles-file", profiles})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"narrow", "kernel"} {
		if !strings.Contains(buf.String(), name) {
			t.Fatalf("expected %q in listing; got: %q", name, buf.String())
		}
	}
}
