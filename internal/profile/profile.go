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

// Package profile loads FormatProfile YAML documents and resolves a
// named profile into indent filter options.
package profile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rchamberlin/fmtpipe/internal/errdefs"
	"github.com/rchamberlin/fmtpipe/pkg/api"
	"github.com/rchamberlin/fmtpipe/pkg/indent"
	"gopkg.in/yaml.v3"
)

// Load reads every FormatProfile document from path. A missing file is
// not an error: profiles are optional, an empty list is returned.
func Load(logger *slog.Logger, path string) ([]api.FormatProfileDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no profiles file", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", errdefs.ErrOpenProfilesFile, err)
	}
	defer f.Close()

	var docs []api.FormatProfileDoc
	dec := yaml.NewDecoder(f)
	for {
		var doc api.FormatProfileDoc
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: decoding %s: %w", errdefs.ErrInvalidProfile, path, err)
		}
		if err := Validate(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	logger.Debug("loaded format profiles", "path", path, "count", len(docs))
	return docs, nil
}

// Validate checks the document envelope and spec ranges.
func Validate(doc *api.FormatProfileDoc) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", errdefs.ErrInvalidProfile)
	}
	if doc.APIVersion == "" || doc.Kind == "" {
		return fmt.Errorf("%w: missing apiVersion/kind", errdefs.ErrInvalidProfile)
	}
	if doc.Kind != api.KindFormatProfile {
		return fmt.Errorf("%w: kind %q (expected %q)", errdefs.ErrInvalidProfile, doc.Kind, api.KindFormatProfile)
	}
	if doc.Metadata.Name == "" {
		return fmt.Errorf("%w: metadata.name is required", errdefs.ErrInvalidProfile)
	}
	if doc.Spec.IndentWidth < 0 {
		return fmt.Errorf("%w: profile %q: indentWidth must not be negative",
			errdefs.ErrInvalidProfile, doc.Metadata.Name)
	}
	if doc.Spec.WriteBufferSize < 0 || doc.Spec.ReadBufferSize < 0 {
		return fmt.Errorf("%w: profile %q: buffer sizes must not be negative",
			errdefs.ErrInvalidProfile, doc.Metadata.Name)
	}
	return nil
}

// Find returns the profile named name.
func Find(docs []api.FormatProfileDoc, name string) (*api.FormatProfileDoc, error) {
	for i := range docs {
		if docs[i].Metadata.Name == name {
			return &docs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", errdefs.ErrProfileNotFound, name)
}

// FilterOptions maps a profile spec onto indent filter options. Only
// fields the profile actually sets are mapped; the rest keep their
// built-in defaults.
func FilterOptions(doc *api.FormatProfileDoc) []indent.Option {
	var opts []indent.Option
	if doc.Spec.IndentWidth > 0 {
		opts = append(opts, indent.WithIncrement(doc.Spec.IndentWidth))
	}
	if doc.Spec.WriteBufferSize > 0 {
		opts = append(opts, indent.WithWriteBufferSize(doc.Spec.WriteBufferSize))
	}
	if doc.Spec.ReadBufferSize > 0 {
		opts = append(opts, indent.WithReadBufferSize(doc.Spec.ReadBufferSize))
	}
	return opts
}
