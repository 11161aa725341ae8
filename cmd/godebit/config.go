// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lassandro/godebit/pkg/config"
)

var forcevar bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the terminal configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ld, err := loadConfig(cmd, nil)

			if err != nil {
				return err
			}

			doc, err := ld.YAML()

			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(doc)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:   "init path",
		Short: "Write the default configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC

			if !forcevar {
				flags |= os.O_EXCL
			}

			doc, err := config.NewLoader().YAML()

			if err != nil {
				return err
			}

			file, err := os.OpenFile(args[0], flags, 0644)

			if err != nil {
				return err
			}

			if _, err := file.Write(doc); err != nil {
				file.Close()
				return err
			}

			if err := file.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	}

	initCmd.Flags().BoolVarP(&forcevar, "force", "f", false, "Overwrite an existing file")

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}
