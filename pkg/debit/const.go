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
	"time"
)

const (
	STATE_WELCOME State = iota
	STATE_AMOUNT
	STATE_ACCOUNT
	STATE_PIN
	STATE_APPROVING
	STATE_CANCELLED
)

const (
	ACCOUNT_NONE Account = iota
	ACCOUNT_CHECKING
	ACCOUNT_SAVINGS
)

const (
	EVENT_NONE EventType = iota
	EVENT_LINE
	EVENT_PRESS
	EVENT_MALFORMED
	EVENT_TIMEOUT
)

const (
	INPUT_NONE Input = iota
	INPUT_LINE
	INPUT_PRESS
)

const (
	EFFECT_CLEAR EffectType = iota
	EFFECT_TEXT
	EFFECT_SEND
	EFFECT_TONE
	EFFECT_HOLD
	EFFECT_NOTE
)

const (
	EDIT_CONTINUE EditResult = iota
	EDIT_CONFIRM
	EDIT_CANCEL
)

const (
	LABEL_ROW        = 1
	LABEL_OK_COL     = 0
	LABEL_CANCEL_COL = 10
	PIN_COL          = 10
)

const (
	TEXT_WELCOME      = "Welcome!"
	TEXT_AMOUNT       = "Amount: $"
	TEXT_CHOOSE       = "Choose account:"
	TEXT_CHQ_SAV      = "Chq         Sav"
	TEXT_CONTINUE_CHQ = "Continue chq?"
	TEXT_CONTINUE_SAV = "Continue sav?"
	TEXT_ENTER_PIN    = "Enter pwd:"
	TEXT_APPROVING    = "Approving..."
	TEXT_APPROVED     = "Approved"
	TEXT_CANCELLED    = "Transaction"
	TEXT_CANCELLED2   = "canceled!"
	TEXT_OK           = "OK"
	TEXT_CANCEL       = "CANCEL"
)

const (
	DEFAULT_TRACK1        = "Track 1"
	DEFAULT_TRACK2        = "Track 2"
	DEFAULT_HOLD          = time.Second
	DEFAULT_MAX_MALFORMED = 3
	DEFAULT_PRESS_TIMEOUT = 60 * time.Second
	DEFAULT_LINE_TIMEOUT  = 30 * time.Second
)
