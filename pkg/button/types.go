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

package button

import (
	"fmt"
	"strings"
	"time"

	"github.com/lassandro/godebit/pkg/clock"
)

type Button uint8

// PinReader samples a whole input port at once. Bit n of the result is set
// while pin n reads its active level.
type PinReader interface {
	ReadPins() uint32
}

// A PinReader that can fail reports it through Err. WaitForPress returns
// the first non-nil error.
type FailingReader interface {
	PinReader
	Err() error
}

type Input struct {
	Pins     PinReader
	Clock    clock.Clock
	Interval time.Duration
	Map      map[Button]uint8
	Priority []Button

	latched uint32
}

func (b Button) String() string {
	switch b {
	case BUTTON_OK:
		return "ok"
	case BUTTON_CANCEL:
		return "cancel"
	case BUTTON_ADD1:
		return "add1"
	case BUTTON_ADD2:
		return "add2"
	default:
		return "none"
	}
}

func Parse(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ok":
		return BUTTON_OK, nil
	case "cancel":
		return BUTTON_CANCEL, nil
	case "add1":
		return BUTTON_ADD1, nil
	case "add2":
		return BUTTON_ADD2, nil
	}

	return BUTTON_NONE, &UnknownButtonError{name}
}

type UnknownButtonError struct {
	Received string
}

func (err *UnknownButtonError) Error() string {
	return fmt.Sprintf(
		"Unknown button\n\twant:ok, cancel, add1, or add2\n\thave:%q",
		err.Received,
	)
}

type InvalidPriorityError struct {
	Received []Button
}

func (err *InvalidPriorityError) Error() string {
	names := make([]string, 0, len(err.Received))
	for _, b := range err.Received {
		names = append(names, b.String())
	}

	return fmt.Sprintf(
		"Priority must order each button exactly once\n\twant:%d buttons\n"+
			"\thave:[%s]",
		len(DEFAULT_PRIORITY),
		strings.Join(names, " "),
	)
}

type InvalidPinError struct {
	Button Button
	Pin    uint8
}

func (err *InvalidPinError) Error() string {
	return fmt.Sprintf(
		"Pin for %s is unusable\n\twant:unique pin 0-31\n\thave:%d",
		err.Button,
		err.Pin,
	)
}
