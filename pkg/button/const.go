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
	"time"
)

const (
	BUTTON_NONE Button = iota
	BUTTON_OK
	BUTTON_CANCEL
	BUTTON_ADD1
	BUTTON_ADD2
)

// Port pins the four buttons are wired to on the reference board.
const (
	PIN_OK     uint8 = 0
	PIN_CANCEL uint8 = 1
	PIN_ADD1   uint8 = 3
	PIN_ADD2   uint8 = 4
)

const DEFAULT_INTERVAL = 50 * time.Millisecond

// Resolution order when several buttons are stable in the same poll.
var DEFAULT_PRIORITY = [4]Button{
	BUTTON_OK,
	BUTTON_CANCEL,
	BUTTON_ADD1,
	BUTTON_ADD2,
}

var DEFAULT_KEYMAP = map[byte]Button{
	'o':  BUTTON_OK,
	'O':  BUTTON_OK,
	'\r': BUTTON_OK,
	'\n': BUTTON_OK,
	'c':  BUTTON_CANCEL,
	'C':  BUTTON_CANCEL,
	0x1b: BUTTON_CANCEL,
	0x7f: BUTTON_CANCEL,
	'+':  BUTTON_ADD1,
	'=':  BUTTON_ADD1,
	'u':  BUTTON_ADD1,
	'>':  BUTTON_ADD2,
	'.':  BUTTON_ADD2,
	' ':  BUTTON_ADD2,
}

func DefaultMap() map[Button]uint8 {
	return map[Button]uint8{
		BUTTON_OK:     PIN_OK,
		BUTTON_CANCEL: PIN_CANCEL,
		BUTTON_ADD1:   PIN_ADD1,
		BUTTON_ADD2:   PIN_ADD2,
	}
}
