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

package debit_test

import (
	"context"
	"time"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/clock"
	"github.com/lassandro/godebit/pkg/debit"
	"github.com/lassandro/godebit/pkg/display"
	"github.com/lassandro/godebit/pkg/sound"
)

// Serves queued lines, then blocks until the wait is abandoned. readErr
// makes the link fail once the queue is drained.
type fakeLink struct {
	lines    []string
	sent     []string
	readErr  error
	writeErr error
}

func (fl *fakeLink) ReadLine(ctx context.Context) (string, error) {
	if len(fl.lines) > 0 {
		line := fl.lines[0]
		fl.lines = fl.lines[1:]
		return line, nil
	}

	if fl.readErr != nil {
		return "", fl.readErr
	}

	<-ctx.Done()
	return "", ctx.Err()
}

func (fl *fakeLink) WriteLine(line string) error {
	if fl.writeErr != nil {
		return fl.writeErr
	}

	fl.sent = append(fl.sent, line)
	return nil
}

// Serves queued presses, then blocks until the wait is abandoned.
type fakeButtons struct {
	presses []button.Button
}

func (fb *fakeButtons) WaitForPress(ctx context.Context) (button.Button, error) {
	if len(fb.presses) > 0 {
		b := fb.presses[0]
		fb.presses = fb.presses[1:]
		return b, nil
	}

	<-ctx.Done()
	return button.BUTTON_NONE, ctx.Err()
}

type fakePlayer struct {
	tones []sound.Tone
}

func (fp *fakePlayer) PlayTone(freq uint32, duration time.Duration) {
	fp.tones = append(fp.tones, sound.Tone{Freq: freq, Duration: duration})
}

type transition struct {
	From debit.State
	To   debit.State
}

type fakeObserver struct {
	seen []transition
}

func (fo *fakeObserver) Transition(from, to debit.State, mc *debit.Machine) {
	fo.seen = append(fo.seen, transition{from, to})
}

type rig struct {
	mc      *debit.Machine
	link    *fakeLink
	buttons *fakeButtons
	screen  *display.TextDisplay
	player  *fakePlayer
	clock   *clock.Fake
}

func newRig() *rig {
	rg := &rig{
		link:    &fakeLink{},
		buttons: &fakeButtons{},
		screen:  display.NewTextDisplay(16, 2),
		player:  &fakePlayer{},
		clock:   &clock.Fake{},
	}

	rg.mc = &debit.Machine{
		Rules:   debit.DefaultRules(),
		Display: rg.screen,
		Link:    rg.link,
		Buttons: rg.buttons,
		Player:  rg.player,
		Clock:   rg.clock,
	}

	return rg
}

func (rg *rig) line(lines ...string) *rig {
	rg.link.lines = append(rg.link.lines, lines...)
	return rg
}

func (rg *rig) press(presses ...button.Button) *rig {
	rg.buttons.presses = append(rg.buttons.presses, presses...)
	return rg
}
