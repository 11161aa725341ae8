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
	"io"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lassandro/godebit/pkg/protocol"
)

type Outcome uint

const (
	OUTCOME_APPROVED Outcome = iota
	OUTCOME_DECLINED
	OUTCOME_CANCELLED
)

type Link interface {
	ReadLine(ctx context.Context) (string, error)
	WriteLine(line string) error
}

// Simulator plays the cash register: it asks the terminal for a sale and
// answers the bank's side of the exchange.
type Simulator struct {
	Link    Link
	Reply   string
	Policy  protocol.ApprovalPolicy
	Notice  string
	Timeout time.Duration
	Out     io.Writer
	Log     *log.Logger

	approved decimal.Decimal
	counts   [3]int
}

func (o Outcome) String() string {
	switch o {
	case OUTCOME_APPROVED:
		return "approved"
	case OUTCOME_DECLINED:
		return "declined"
	default:
		return "cancelled"
	}
}

// Runs one sale of amount, given in cents.
func (sim *Simulator) Sale(ctx context.Context, amount string) (Outcome, error) {
	request, err := protocol.FormatRequest(amount)

	if err != nil {
		return OUTCOME_CANCELLED, err
	}

	if err := sim.Link.WriteLine(request); err != nil {
		return OUTCOME_CANCELLED, err
	}

	for {
		line, err := sim.readLine(ctx)

		if err != nil {
			return OUTCOME_CANCELLED, err
		}

		if sim.Notice != "" && strings.TrimSpace(line) == sim.Notice {
			return sim.record(OUTCOME_CANCELLED, amount), nil
		}

		info, err := protocol.ParseInfo(line)

		if err != nil {
			sim.logf("Warning: ignoring %q: %v", line, err)
			continue
		}

		fmt.Fprintf(
			sim.Out, "info: track1=%q track2=%q pin=**** amount=%s account=%c\n",
			info.Track1, info.Track2, info.Amount, info.Account,
		)

		if info.Amount != amount {
			sim.logf("Warning: terminal charged %s, requested %s", info.Amount, amount)
		}

		if err := sim.Link.WriteLine(sim.Reply); err != nil {
			return OUTCOME_CANCELLED, err
		}

		if protocol.Decide(sim.Reply, sim.Policy) == protocol.DECISION_APPROVED {
			return sim.record(OUTCOME_APPROVED, info.Amount), nil
		}

		// A declined sale ends with the cancel notice
		if sim.Notice != "" {
			if _, err := sim.readLine(ctx); err != nil {
				sim.logf("Warning: no cancel notice after decline: %v", err)
			}
		}

		return sim.record(OUTCOME_DECLINED, amount), nil
	}
}

// Sum of approved sales in currency units.
func (sim *Simulator) Approved() decimal.Decimal {
	return sim.approved
}

func (sim *Simulator) Count(o Outcome) int {
	return sim.counts[o]
}

func (sim *Simulator) Summary() string {
	return fmt.Sprintf(
		"%d approved (%s), %d declined, %d cancelled",
		sim.counts[OUTCOME_APPROVED],
		sim.approved.StringFixed(2),
		sim.counts[OUTCOME_DECLINED],
		sim.counts[OUTCOME_CANCELLED],
	)
}

func (sim *Simulator) record(o Outcome, amount string) Outcome {
	sim.counts[o]++

	if o == OUTCOME_APPROVED {
		cents, err := decimal.NewFromString(amount)

		if err == nil {
			sim.approved = sim.approved.Add(cents.Shift(-2))
		}
	}

	fmt.Fprintf(sim.Out, "sale %s: %s\n", amount, o)
	return o
}

func (sim *Simulator) readLine(ctx context.Context) (string, error) {
	if sim.Timeout <= 0 {
		return sim.Link.ReadLine(ctx)
	}

	wait, cancel := context.WithTimeout(ctx, sim.Timeout)
	defer cancel()

	line, err := sim.Link.ReadLine(wait)

	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return "", fmt.Errorf("no answer from terminal within %s", sim.Timeout)
	}

	return line, err
}

func (sim *Simulator) logf(format string, args ...interface{}) {
	if sim.Log != nil {
		sim.Log.Printf(format, args...)
	}
}
