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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lassandro/godebit/pkg/config"
	"github.com/lassandro/godebit/pkg/protocol"
	"github.com/lassandro/godebit/pkg/serial"
)

var (
	configvar  string
	devicevar  string
	baudvar    int
	replyvar   string
	timeoutvar time.Duration
)

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "godebit-scs [amount...]",
		Short: "Cash register simulator for godebit",
		Long: `godebit-scs drives a godebit terminal over a serial line. Each
amount, in cents, is requested as one sale; with no arguments amounts are
read from standard input one per line. Every transaction message is
answered with --reply.`,
		RunE:          runSimulator,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&configvar, "config", "c", "", "Terminal YAML configuration file")
	cmd.Flags().StringVar(&devicevar, "device", "", "Serial device the terminal is attached to")
	cmd.Flags().IntVar(&baudvar, "baud", serial.DEFAULT_BAUD, "Serial baud rate")
	cmd.Flags().StringVar(&replyvar, "reply", protocol.APPROVAL_TOKEN, "Bank reply to send")
	cmd.Flags().DurationVar(&timeoutvar, "timeout", 2*time.Minute, "Give up on a silent terminal after this")

	return cmd
}

func runSimulator(cmd *cobra.Command, args []string) error {
	ld := config.NewLoader()

	if err := ld.Read(configvar); err != nil {
		return err
	}

	if cmd.Flags().Changed("device") {
		ld.Set("serial.device", devicevar)
	}

	if cmd.Flags().Changed("baud") {
		ld.Set("serial.baud", baudvar)
	}

	cfg, err := ld.Config()

	if err != nil {
		return err
	}

	if cfg.Serial.Device == "" {
		return errors.New("No serial device, set serial.device or --device")
	}

	// The terminal's policy decides what our reply means
	policy, err := protocol.ParsePolicy(cfg.Approval)

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

	sim := &Simulator{
		Link:    link,
		Reply:   replyvar,
		Policy:  policy,
		Notice:  cfg.CancelNotice,
		Timeout: timeoutvar,
		Out:     cmd.OutOrStdout(),
		Log:     log.Default(),
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	err = runSales(ctx, sim, args, cmd.InOrStdin())
	fmt.Fprintln(cmd.OutOrStdout(), sim.Summary())

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// Sells each amount in args, or each line of input when args is empty.
func runSales(ctx context.Context, sim *Simulator, args []string, input io.Reader) error {
	if len(args) > 0 {
		for _, amount := range args {
			if _, err := sim.Sale(ctx, amount); err != nil {
				return err
			}
		}

		return nil
	}

	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		amount := strings.TrimSpace(scanner.Text())

		if amount == "" {
			continue
		}

		if _, err := sim.Sale(ctx, amount); err != nil {
			var invalid *protocol.InvalidAmountError

			if errors.As(err, &invalid) {
				log.Println(err)
				continue
			}

			return err
		}
	}

	return scanner.Err()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
