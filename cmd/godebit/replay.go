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
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lassandro/godebit/pkg/debit"
	"github.com/lassandro/godebit/pkg/scenario"
	"github.com/lassandro/godebit/pkg/trace"
)

var showvar bool

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay script...",
		Short: "Run scripted sessions against the terminal logic",
		Long: `replay runs each script against a terminal wired to scripted
collaborators and checks its expectations. A script is one command per
line:

  scs "RQ:1099"            queue a line from the SCS
  press ok add1 ok+cancel  queue presses, '+' presses buttons together
  step [n]                 take n steps, 1 by default
  run                      step until the next input is not scripted
  expect state pin
  expect display 0 "Enter pwd:[0]***"
  expect sent "Cncld"      the next line the terminal sent
  expect quiet             nothing sent since the last expect sent

Text after '#' is a comment.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReplay,
	}

	cmd.Flags().BoolVar(&showvar, "show", false, "Draw the display while replaying")
	cmd.Flags().BoolVar(&tracevar, "trace", false, "Log every state transition")

	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, nil)

	if err != nil {
		return err
	}

	rules, err := cfg.Rules()

	if err != nil {
		return err
	}

	priority, err := cfg.Priority()

	if err != nil {
		return err
	}

	failed := 0

	for _, path := range args {
		logger := log.New(
			os.Stderr, fmt.Sprintf("\033[1m%s:\033[0m", filepath.Base(path)), 0,
		)

		source, err := os.ReadFile(path)

		if err != nil {
			logger.Println(err)
			failed++
			continue
		}

		script, errs := scenario.Parse(bytes.NewReader(source))
		script.Name = path

		if len(errs) > 0 {
			for _, err := range errs {
				printScriptError(logger, source, err)
			}

			failed++
			continue
		}

		runner := &scenario.Runner{
			Rules:    rules,
			Columns:  cfg.Display.Columns,
			Rows:     cfg.Display.Rows,
			Map:      cfg.PinMap(),
			Priority: priority,
			Log:      logger,
		}

		if showvar {
			runner.Output = cmd.OutOrStdout()
		}

		if tracevar {
			runner.Observer = &trace.Tracer{
				HandleTransition: func(rec trace.Record, _ *trace.Tracer, _ *debit.Machine) {
					logger.Println(rec)
				},
			}
		}

		result, err := runner.Run(context.Background(), script)

		if err != nil {
			printScriptError(logger, source, err)
			logger.Printf("display:\n%s", strings.Join(result.Display, "\n"))
			failed++
			continue
		}

		fmt.Fprintf(
			cmd.OutOrStdout(), "%s: ok (%d steps, %d lines sent)\n",
			path, result.Steps, len(result.Sent),
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed", failed, len(args))
	}

	return nil
}

// Positioned errors are shown with the offending line and a caret under
// the column.
func printScriptError(logger *log.Logger, source []byte, err error) {
	tokenErr, ok := err.(scenario.TokenError)

	if !ok {
		logger.Println(err)
		return
	}

	cursor := tokenErr.GetPosition()
	lines := strings.Split(string(source), "\n")

	if cursor.Line < 1 || cursor.Line > len(lines) {
		logger.Println(err)
		return
	}

	logger.Printf(
		"%s\n%s\n\033[31m%s^\033[0m",
		err,
		strings.TrimRight(lines[cursor.Line-1], "\r"),
		strings.Repeat(" ", cursor.Column-1),
	)
}
