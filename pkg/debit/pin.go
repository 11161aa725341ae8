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
	"strings"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/protocol"
)

func NewPinEditor() PinEditor {
	var ed PinEditor

	for i := range ed.Digits {
		ed.Digits[i] = '0'
	}

	return ed
}

// Add2 moves the cursor right, wrapping to the first digit. Add1 rolls the
// digit under the cursor from 9 back to 0. OK and Cancel end the edit.
func (ed *PinEditor) Press(b button.Button) EditResult {
	switch b {
	case button.BUTTON_OK:
		return EDIT_CONFIRM

	case button.BUTTON_CANCEL:
		return EDIT_CANCEL

	case button.BUTTON_ADD1:
		if ed.Digits[ed.Cursor] < '9' {
			ed.Digits[ed.Cursor]++
		} else {
			ed.Digits[ed.Cursor] = '0'
		}

	case button.BUTTON_ADD2:
		ed.Cursor = (ed.Cursor + 1) % protocol.PIN_LENGTH
	}

	return EDIT_CONTINUE
}

// Masked view of the PIN with the digit under the cursor revealed: *[3]**
func (ed PinEditor) Render() string {
	var sb strings.Builder

	for i, digit := range ed.Digits {
		if i == ed.Cursor {
			sb.WriteByte('[')
			sb.WriteByte(digit)
			sb.WriteByte(']')
		} else {
			sb.WriteByte('*')
		}
	}

	return sb.String()
}

func (ed PinEditor) Pin() string {
	return string(ed.Digits[:])
}
