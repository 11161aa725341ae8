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

package scenario

import (
	"context"
	"io"
	"strconv"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/clock"
	"github.com/lassandro/godebit/pkg/debit"
	"github.com/lassandro/godebit/pkg/display"
	"github.com/lassandro/godebit/pkg/sound"
)

// Lines the script queued for the terminal, and everything it sent back.
type scriptLink struct {
	incoming []string
	sent     []string
}

func (sl *scriptLink) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(sl.incoming) == 0 {
		return "", io.EOF
	}

	line := sl.incoming[0]
	sl.incoming = sl.incoming[1:]
	return line, nil
}

func (sl *scriptLink) WriteLine(line string) error {
	sl.sent = append(sl.sent, line)
	return nil
}

type session struct {
	mc      *debit.Machine
	link    *scriptLink
	pins    *button.Sequence
	screen  *display.TextDisplay
	steps   int
	checked int
}

func NewRunner() *Runner {
	return &Runner{Rules: debit.DefaultRules()}
}

// Executes every command in order and stops at the first failed
// expectation or stalled step. The result reflects the session up to that
// point either way.
func (rn *Runner) Run(ctx context.Context, script *Script) (*Result, error) {
	ss := rn.start(script)

	for i := range script.Commands {
		if err := ss.exec(ctx, &script.Commands[i]); err != nil {
			return ss.result(), err
		}
	}

	return ss.result(), nil
}

func (rn *Runner) start(script *Script) *session {
	fake := &clock.Fake{}
	pinmap := rn.Map

	if pinmap == nil {
		pinmap = button.DefaultMap()
	}

	ss := &session{
		link: &scriptLink{},
		pins: &button.Sequence{Map: pinmap},
	}

	var disp display.Display

	if rn.Output != nil {
		con := &display.Console{Output: rn.Output, Title: script.Name}
		con.Columns = rn.Columns
		con.Rows = rn.Rows
		con.Clear()

		ss.screen = &con.TextDisplay
		disp = con
	} else {
		ss.screen = display.NewTextDisplay(rn.Columns, rn.Rows)
		disp = ss.screen
	}

	ss.mc = &debit.Machine{
		Rules:   rn.Rules,
		Display: disp,
		Link:    ss.link,
		Buttons: &button.Input{
			Pins:     ss.pins,
			Clock:    fake,
			Map:      pinmap,
			Priority: rn.Priority,
		},
		Player:   &sound.Silent{Clock: fake},
		Clock:    fake,
		Log:      rn.Log,
		Observer: rn.Observer,
	}

	return ss
}

func (ss *session) exec(ctx context.Context, cmd *Command) error {
	switch cmd.Type {
	case COMMAND_SCS:
		ss.link.incoming = append(ss.link.incoming, cmd.Line)

	case COMMAND_PRESS:
		for _, chord := range cmd.Chords {
			ss.pins.Press(chord...)
		}

	case COMMAND_STEP:
		for i := 0; i < cmd.Count; i++ {
			if !ss.ready() {
				return &StalledError{cmd.Position, ss.mc.State()}
			}

			if err := ss.step(ctx, cmd); err != nil {
				return err
			}
		}

	case COMMAND_RUN:
		for i := 0; i < MAX_RUN_STEPS && ss.ready(); i++ {
			if err := ss.step(ctx, cmd); err != nil {
				return err
			}
		}

	case COMMAND_EXPECT:
		return ss.expect(cmd)
	}

	return nil
}

func (ss *session) step(ctx context.Context, cmd *Command) error {
	if err := ss.mc.Step(ctx); err != nil {
		return &StepError{cmd.Position, err}
	}

	ss.steps++
	return nil
}

// Whether the input the machine waits on next has been scripted.
func (ss *session) ready() bool {
	switch ss.mc.Awaiting() {
	case debit.INPUT_LINE:
		return len(ss.link.incoming) > 0
	case debit.INPUT_PRESS:
		return ss.pins.Pending() > 0
	}

	return true
}

func (ss *session) expect(cmd *Command) error {
	switch cmd.Expect {
	case EXPECT_STATE:
		if have := ss.mc.State(); have != cmd.State {
			return &ExpectationError{
				cmd.Position, "state", cmd.State.String(), have.String(),
			}
		}

	case EXPECT_DISPLAY:
		if have := ss.screen.Line(cmd.Row); have != cmd.Text {
			return &ExpectationError{
				cmd.Position, "display row " + strconv.Itoa(cmd.Row), cmd.Text, have,
			}
		}

	case EXPECT_SENT:
		if ss.checked >= len(ss.link.sent) {
			return &ExpectationError{cmd.Position, "sent line", cmd.Text, ""}
		}

		have := ss.link.sent[ss.checked]
		ss.checked++

		if have != cmd.Text {
			return &ExpectationError{cmd.Position, "sent line", cmd.Text, have}
		}

	case EXPECT_QUIET:
		if ss.checked < len(ss.link.sent) {
			return &ExpectationError{
				cmd.Position, "sent line", "", ss.link.sent[ss.checked],
			}
		}
	}

	return nil
}

func (ss *session) result() *Result {
	sent := make([]string, len(ss.link.sent))
	copy(sent, ss.link.sent)

	return &Result{
		Steps:   ss.steps,
		State:   ss.mc.State(),
		Display: ss.screen.Lines(),
		Sent:    sent,
	}
}
