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

// Package api holds the document schema fmtpipe reads from disk.
package api

// apiVersion: fmtpipe/v1beta1
// kind: FormatProfile

type (
	Version string
	Kind    string
)

const (
	APIVersionV1Beta1 Version = "fmtpipe/v1beta1"
	KindFormatProfile Kind    = "FormatProfile"
)

// FormatProfileDoc models one YAML document containing a FormatProfile.
type FormatProfileDoc struct {
	APIVersion Version               `json:"apiVersion" yaml:"apiVersion"`
	Kind       Kind                  `json:"kind"       yaml:"kind"`
	Metadata   FormatProfileMetadata `json:"metadata"   yaml:"metadata"`
	Spec       FormatProfileSpec     `json:"spec"       yaml:"spec"`
}

type FormatProfileMetadata struct {
	Name        string            `json:"name"                  yaml:"name"`
	Labels      map[string]string `json:"labels,omitempty"      yaml:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// FormatProfileSpec names the formatting knobs a profile may set.
// Zero values mean "use the built-in default".
type FormatProfileSpec struct {
	IndentWidth     int `json:"indentWidth,omitempty"     yaml:"indentWidth,omitempty"`
	WriteBufferSize int `json:"writeBufferSize,omitempty" yaml:"writeBufferSize,omitempty"`
	ReadBufferSize  int `json:"readBufferSize,omitempty"  yaml:"readBufferSize,omitempty"`
}
