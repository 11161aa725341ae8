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
	"fmt"
	"io"
	"log"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/debit"
)

type CommandType uint
type ExpectType uint

type Cursor struct {
	Line   int
	Column int
}

type Token struct {
	Position Cursor
	Value    string
	Quoted   bool
}

// Command is one parsed script line. Which fields are meaningful depends
// on Type and, for expectations, Expect.
type Command struct {
	Type     CommandType
	Position Cursor

	Line   string
	Chords [][]button.Button
	Count  int

	Expect ExpectType
	State  debit.State
	Row    int
	Text   string
}

type Script struct {
	Name     string
	Commands []Command
}

// Runner executes scripts against a machine wired to scripted
// collaborators: a queued SCS link, a replayed button port, an in-memory
// display and a fake clock.
type Runner struct {
	Rules    debit.Rules
	Columns  int
	Rows     int
	Map      map[button.Button]uint8
	Priority []button.Button

	// When set, the display is also drawn here after every change
	Output io.Writer

	Log      *log.Logger
	Observer debit.Observer
}

type Result struct {
	Steps   int
	State   debit.State
	Display []string
	Sent    []string
}

type TokenError interface {
	GetPosition() Cursor
}

type UnknownCommandError struct {
	Position Cursor
	Received string
}

func (err *UnknownCommandError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownCommandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown command '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidNumArgumentsError struct {
	Position Cursor
	Required string
	Received int
}

func (err *InvalidNumArgumentsError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid number of arguments\n\twant:%s\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type InvalidArgumentError struct {
	Position Cursor
	Required string
	Received string
}

func (err *InvalidArgumentError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidArgumentError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid argument\n\twant:%s\n\thave:%q",
		err.Position.Line,
		err.Position.Column,
		err.Required,
		err.Received,
	)
}

type InvalidStringError struct {
	Position Cursor
}

func (err *InvalidStringError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidStringError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid string literal",
		err.Position.Line,
		err.Position.Column,
	)
}

type ExpectationError struct {
	Position Cursor
	What     string
	Required string
	Received string
}

func (err *ExpectationError) GetPosition() Cursor {
	return err.Position
}

func (err *ExpectationError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unexpected %s\n\twant:%q\n\thave:%q",
		err.Position.Line,
		err.Position.Column,
		err.What,
		err.Required,
		err.Received,
	)
}

// StalledError reports a step the machine could not take because the
// input it waits for was never scripted.
type StalledError struct {
	Position Cursor
	State    debit.State
}

func (err *StalledError) GetPosition() Cursor {
	return err.Position
}

func (err *StalledError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: No scripted input for state %s",
		err.Position.Line,
		err.Position.Column,
		err.State,
	)
}

type StepError struct {
	Position Cursor
	Err      error
}

func (err *StepError) GetPosition() Cursor {
	return err.Position
}

func (err *StepError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %v",
		err.Position.Line,
		err.Position.Column,
		err.Err,
	)
}

func (err *StepError) Unwrap() error {
	return err.Err
}
