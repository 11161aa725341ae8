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
	"context"
	"fmt"

	"github.com/lassandro/godebit/pkg/clock"
)

func (in *Input) Validate() error {
	if err := ValidatePriority(in.priority()); err != nil {
		return err
	}

	var used uint32

	for _, b := range DEFAULT_PRIORITY {
		pin, exists := in.pinMap()[b]

		if !exists || pin > 31 || used&(1<<pin) != 0 {
			return &InvalidPinError{b, pin}
		}

		used |= 1 << pin
	}

	return nil
}

func ValidatePriority(priority []Button) error {
	if len(priority) != len(DEFAULT_PRIORITY) {
		return &InvalidPriorityError{priority}
	}

	seen := make(map[Button]bool, len(priority))

	for _, b := range priority {
		if b == BUTTON_NONE || b > BUTTON_ADD2 || seen[b] {
			return &InvalidPriorityError{priority}
		}

		seen[b] = true
	}

	return nil
}

// Blocks until a button reads active on both samples of a poll. Buttons
// still held from the previous press are ignored until they are released,
// so a long press is reported once. Only ctx or a failing reader ends
// the wait early.
func (in *Input) WaitForPress(ctx context.Context) (Button, error) {
	interval := in.Interval
	if interval <= 0 {
		interval = DEFAULT_INTERVAL
	}

	var clk clock.Clock = clock.System{}
	if in.Clock != nil {
		clk = in.Clock
	}

	failing, _ := in.Pins.(FailingReader)

	for {
		if err := ctx.Err(); err != nil {
			return BUTTON_NONE, err
		}

		if failing != nil {
			if err := failing.Err(); err != nil {
				return BUTTON_NONE, fmt.Errorf("buttons: %w", err)
			}
		}

		first := in.Pins.ReadPins()
		clk.Sleep(interval)
		second := in.Pins.ReadPins()

		stable := first & second

		// Released only once both samples read inactive
		in.latched &= first | second

		if pressed := in.Resolve(stable &^ in.latched); pressed != BUTTON_NONE {
			in.latched |= stable
			return pressed, nil
		}
	}
}

// Maps a sampled pin set to the highest priority button it contains.
func (in *Input) Resolve(pins uint32) Button {
	pinmap := in.pinMap()

	for _, b := range in.priority() {
		if pin, exists := pinmap[b]; exists && pins&(1<<pin) != 0 {
			return b
		}
	}

	return BUTTON_NONE
}

// Port mask for a set of buttons under this input's pin map.
func (in *Input) Mask(buttons ...Button) uint32 {
	return mask(in.pinMap(), buttons)
}

func (in *Input) priority() []Button {
	if in.Priority == nil {
		return DEFAULT_PRIORITY[:]
	}

	return in.Priority
}

func (in *Input) pinMap() map[Button]uint8 {
	if in.Map == nil {
		in.Map = DefaultMap()
	}

	return in.Map
}

func mask(pinmap map[Button]uint8, buttons []Button) uint32 {
	var result uint32

	for _, b := range buttons {
		if pin, exists := pinmap[b]; exists {
			result |= 1 << pin
		}
	}

	return result
}
