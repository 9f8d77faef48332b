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

package profiles

import (
	"fmt"
	"text/tabwriter"

	"github.com/rchamberlin/fmtpipe/internal/env"
	"github.com/rchamberlin/fmtpipe/internal/logging"
	"github.com/rchamberlin/fmtpipe/internal/profile"
	"github.com/rchamberlin/fmtpipe/pkg/indent"
	"github.com/spf13/cobra"
)

const (
	Command      string = "profiles"
	CommandAlias string = "prof"
)

func NewProfilesCmd() *cobra.Command {
	// profilesCmd lists the FormatProfile documents fmtpipe can use.
	profilesCmd := &cobra.Command{
		Use:     Command,
		Aliases: []string{CommandAlias},
		Short:   "List available format profiles",
		Long: `List the FormatProfile documents found in the profiles file.

Examples:
  fmtpipe profiles
  fmtpipe profiles --profiles-file ./profiles.yaml
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.FromContext(cmd.Context())
			if err != nil {
				return err
			}

			path := env.PROFILES_FILE.ValueOrDefault()
			docs, err := profile.Load(logger, path)
			if err != nil {
				return err
			}

			if len(docs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No format profiles found in %s\n", path)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tINDENT WIDTH\tWRITE BUF\tREAD BUF")
			for i := range docs {
				width := docs[i].Spec.IndentWidth
				if width == 0 {
					width = indent.DefaultIncrement
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n",
					docs[i].Metadata.Name,
					width,
					docs[i].Spec.WriteBufferSize,
					docs[i].Spec.ReadBufferSize,
				)
			}
			return tw.Flush()
		},
	}

	return profilesCmd
}
