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
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/clock"
	"github.com/lassandro/godebit/pkg/debit"
	"github.com/lassandro/godebit/pkg/display"
	"github.com/lassandro/godebit/pkg/serial"
	"github.com/lassandro/godebit/pkg/sound"
	"github.com/lassandro/godebit/pkg/trace"
	"github.com/lassandro/godebit/pkg/tty"
)

var (
	tracevar bool
	watchvar []string
	logvar   string
)

var runOverrides = map[string]string{
	"device":   "serial.device",
	"baud":     "serial.baud",
	"approval": "approval",
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("device", "", "Serial device the SCS is attached to")
	cmd.Flags().Int("baud", serial.DEFAULT_BAUD, "Serial baud rate")
	cmd.Flags().String("approval", "", "Approval policy: exact or contains")
	cmd.Flags().BoolVar(&tracevar, "trace", false, "Log every state transition")
	cmd.Flags().StringSliceVar(&watchvar, "watch", nil, "Log the whole transaction when it enters these states")
	cmd.Flags().StringVar(&logvar, "log", "", "Write the log to this file")
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, runOverrides)

	if err != nil {
		return err
	}

	if cfg.Serial.Device == "" {
		return errors.New("No serial device, set serial.device or --device")
	}

	logger := log.Default()

	// The console owns the terminal, so the log goes elsewhere when asked
	if logvar != "" {
		file, err := os.OpenFile(logvar, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)

		if err != nil {
			return err
		}

		defer file.Close()
		logger = log.New(file, log.Prefix(), log.LstdFlags)
	}

	rules, err := cfg.Rules()

	if err != nil {
		return err
	}

	tracer, err := newTracer(logger, tracevar, watchvar)

	if err != nil {
		return err
	}

	port, err := serial.OpenPort(cfg.Serial.Device, cfg.Serial.Baud)

	if err != nil {
		return err
	}

	defer port.Close()

	link := serial.NewLink(port, port)
	link.MaxLine = cfg.Serial.MaxLine

	fd := int(os.Stdin.Fd())

	if tty.IsTerminal(fd) {
		state, err := tty.MakeRaw(fd)

		if err != nil {
			return err
		}

		defer tty.Restore(fd, state)
	}

	keyboard := &button.Keyboard{
		Hold: 4 * cfg.Debounce.Interval,
		Gap:  2 * cfg.Debounce.Interval,
		Map:  cfg.PinMap(),
	}
	keyboard.Listen(os.Stdin)

	console := &display.Console{
		Output: os.Stdout,
		Title:  fmt.Sprintf("godebit %s", cfg.Serial.Device),
	}
	console.Columns = cfg.Display.Columns
	console.Rows = cfg.Display.Rows
	console.Clear()

	mc := &debit.Machine{
		Rules:        rules,
		Display:      console,
		Link:         link,
		Buttons:      cfg.Input(keyboard, clock.System{}),
		Player:       &sound.Bell{Output: os.Stdout, Log: logger},
		Log:          logger,
		Observer:     tracer,
		PressTimeout: cfg.Timeouts.Press,
		LineTimeout:  cfg.Timeouts.Line,
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	err = mc.Run(ctx)

	if errors.Is(err, context.Canceled) {
		return nil
	}

	logger.Printf("Stopped in %s after:", mc.State())
	tracer.PrintHistory(logger.Writer())

	return err
}

// Logs every transition when all is set, and the whole transaction so far
// whenever it enters one of the watched states.
func newTracer(logger *log.Logger, all bool, watch []string) (*trace.Tracer, error) {
	tracer := &trace.Tracer{}

	for _, name := range watch {
		state, err := debit.ParseState(name)

		if err != nil {
			return nil, err
		}

		tracer.Watch = append(tracer.Watch, state)
	}

	if all {
		tracer.HandleTransition = func(rec trace.Record, _ *trace.Tracer, _ *debit.Machine) {
			logger.Println(rec)
		}
	}

	if len(tracer.Watch) > 0 {
		tracer.HandleWatch = func(rec trace.Record, tr *trace.Tracer, _ *debit.Machine) {
			logger.Printf("Transaction entered %s:", rec.To)

			for _, past := range tr.Transaction(rec.TxID) {
				logger.Println(past)
			}
		}
	}

	return tracer, nil
}
