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

	"github.com/spf13/cobra"

	"github.com/lassandro/godebit/pkg/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "godebit",
		Short: "Offline debit terminal",
		Long: `godebit runs a debit terminal on the console: the keypad is read
from the keyboard, the character display is drawn in the terminal and the
cash register (SCS) is reached over a serial line.`,
		RunE:          runTerminal,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(
		&configPath, "config", "c", "", "YAML configuration file",
	)

	addRunFlags(root)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the terminal against a serial device",
		Args:  cobra.NoArgs,
		RunE:  runTerminal,
	}
	addRunFlags(runCmd)

	root.AddCommand(runCmd)
	root.AddCommand(newReplayCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	return root
}

// Reads the configuration file named by --config, applying overrides from
// flags that were set on cmd.
func loadConfig(cmd *cobra.Command, overrides map[string]string) (*config.Config, *config.Loader, error) {
	ld := config.NewLoader()

	if err := ld.Read(configPath); err != nil {
		return nil, nil, err
	}

	for flag, key := range overrides {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			ld.Set(key, f.Value.String())
		}
	}

	cfg, err := ld.Config()

	if err != nil {
		return nil, nil, err
	}

	return cfg, ld, nil
}
