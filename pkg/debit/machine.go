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

package debit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lassandro/godebit/pkg/clock"
	"github.com/lassandro/godebit/pkg/display"
	"github.com/lassandro/godebit/pkg/serial"
	"github.com/lassandro/godebit/pkg/sound"
)

func (mc *Machine) State() State {
	return mc.snap.State
}

func (mc *Machine) Transaction() Transaction {
	return mc.snap.Tx
}

func (mc *Machine) Snapshot() Snapshot {
	return mc.snap
}

// The input the next Step will block on.
func (mc *Machine) Awaiting() Input {
	return Awaits(mc.snap.State)
}

// Drops the transaction in progress and starts over at Welcome on the next
// Step.
func (mc *Machine) Reset() {
	mc.snap = Snapshot{State: STATE_WELCOME}
	mc.entered = false
}

// Consumes at most one line or one button press and performs every effect
// that results, including the entry effects of a new state. Errors are
// either ctx ending or the link failing.
func (mc *Machine) Step(ctx context.Context) error {
	if !mc.entered {
		if err := mc.enter(); err != nil {
			return err
		}
	}

	ev, err := mc.await(ctx)

	if err != nil {
		return err
	}

	next, effects := mc.Rules.Transition(mc.snap, ev)

	if err := mc.apply(effects); err != nil {
		return err
	}

	from := mc.snap.State
	mc.snap = next

	if next.State == from {
		return nil
	}

	if mc.Observer != nil {
		mc.Observer.Transition(from, next.State, mc)
	}

	return mc.enter()
}

func (mc *Machine) Run(ctx context.Context) error {
	for {
		if err := mc.Step(ctx); err != nil {
			return err
		}
	}
}

func (mc *Machine) enter() error {
	mc.entered = true
	return mc.apply(mc.Rules.Enter(mc.snap))
}

func (mc *Machine) await(ctx context.Context) (Event, error) {
	switch mc.Awaiting() {
	case INPUT_LINE:
		wait, cancel := mc.deadline(ctx, mc.LineTimeout)
		defer cancel()

		line, err := mc.Link.ReadLine(wait)
		return mc.event(ctx, err, Event{Type: EVENT_LINE, Line: line})

	case INPUT_PRESS:
		wait, cancel := mc.deadline(ctx, mc.PressTimeout)
		defer cancel()

		b, err := mc.Buttons.WaitForPress(wait)
		return mc.event(ctx, err, Event{Type: EVENT_PRESS, Button: b})
	}

	return Event{Type: EVENT_NONE}, nil
}

// Welcome is idle, so only waits inside a transaction are bounded.
func (mc *Machine) deadline(
	ctx context.Context, timeout time.Duration,
) (context.Context, context.CancelFunc) {
	if timeout <= 0 || mc.snap.State == STATE_WELCOME {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

func (mc *Machine) event(ctx context.Context, err error, ev Event) (Event, error) {
	var long *serial.LineTooLongError

	switch {
	case err == nil:
		return ev, nil
	case ctx.Err() != nil:
		return Event{}, ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return Event{Type: EVENT_TIMEOUT}, nil
	case errors.As(err, &long):
		return Event{Type: EVENT_MALFORMED}, nil
	}

	return Event{}, fmt.Errorf("%s: %w", mc.snap.State, err)
}

func (mc *Machine) apply(effects []Effect) error {
	dirty := false

	flush := func() {
		if !dirty {
			return
		}

		dirty = false

		if flusher, ok := mc.Display.(display.Flusher); ok {
			if err := flusher.Flush(); err != nil {
				mc.logf("Warning: display flush failed: %v", err)
			}
		}
	}

	defer flush()

	for _, fx := range effects {
		switch fx.Type {
		case EFFECT_CLEAR:
			mc.Display.Clear()
			dirty = true

		case EFFECT_TEXT:
			mc.Display.Goto(fx.Col, fx.Row)
			mc.Display.PutString(fx.Text)
			dirty = true

		case EFFECT_SEND:
			flush()

			if err := mc.Link.WriteLine(fx.Text); err != nil {
				return fmt.Errorf("%s: send: %w", mc.snap.State, err)
			}

		case EFFECT_TONE:
			flush()
			sound.Play(mc.player(), fx.Cue)

		case EFFECT_HOLD:
			flush()
			mc.clock().Sleep(fx.Duration)

		case EFFECT_NOTE:
			mc.logf("%s: %s", mc.snap.State, fx.Text)
		}
	}

	return nil
}

func (mc *Machine) player() sound.Player {
	if mc.Player != nil {
		return mc.Player
	}

	return &sound.Silent{Clock: mc.clock()}
}

func (mc *Machine) clock() clock.Clock {
	if mc.Clock != nil {
		return mc.Clock
	}

	return clock.System{}
}

func (mc *Machine) logf(format string, args ...interface{}) {
	if mc.Log != nil {
		mc.Log.Printf(format, args...)
	}
}
