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
	"fmt"
	"log"
	"time"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/clock"
	"github.com/lassandro/godebit/pkg/display"
	"github.com/lassandro/godebit/pkg/protocol"
	"github.com/lassandro/godebit/pkg/sound"
)

type State uint8
type Account uint8
type EventType uint
type Input uint
type EffectType uint
type EditResult uint

type Event struct {
	Type   EventType
	Line   string
	Button button.Button
}

// Effect is one output action requested by a state handler. Which fields
// are meaningful depends on Type.
type Effect struct {
	Type     EffectType
	Col      int
	Row      int
	Text     string
	Cue      sound.Cue
	Duration time.Duration
}

type PinEditor struct {
	Digits [protocol.PIN_LENGTH]byte
	Cursor int
}

// Transaction holds everything collected for the sale in progress.
type Transaction struct {
	Amount     string
	Account    Account
	Pin        PinEditor
	Confirming bool
	Message    string
	Malformed  int
}

type Snapshot struct {
	State State
	Tx    Transaction
}

// Rules is the terminal configuration the transition table depends on.
type Rules struct {
	Track1       string
	Track2       string
	Approval     protocol.ApprovalPolicy
	MaxMalformed int
	Hold         time.Duration
	ApproveCue   sound.Cue
	CancelCue    sound.Cue
	CancelNotice string
}

type Link interface {
	ReadLine(ctx context.Context) (string, error)
	WriteLine(line string) error
}

type Buttons interface {
	WaitForPress(ctx context.Context) (button.Button, error)
}

type Observer interface {
	Transition(from, to State, mc *Machine)
}

type Machine struct {
	Rules    Rules
	Display  display.Display
	Link     Link
	Buttons  Buttons
	Player   sound.Player
	Clock    clock.Clock
	Log      *log.Logger
	Observer Observer

	// Waits outside Welcome give up after these; zero waits forever
	PressTimeout time.Duration
	LineTimeout  time.Duration

	snap    Snapshot
	entered bool
}

func (s State) String() string {
	switch s {
	case STATE_WELCOME:
		return "welcome"
	case STATE_AMOUNT:
		return "amount"
	case STATE_ACCOUNT:
		return "account"
	case STATE_PIN:
		return "pin"
	case STATE_APPROVING:
		return "approving"
	case STATE_CANCELLED:
		return "cancelled"
	default:
		return "invalid"
	}
}

// Account code carried in the outbound message.
func (a Account) Code() byte {
	switch a {
	case ACCOUNT_CHECKING:
		return protocol.ACCOUNT_CODE_CHECKING
	case ACCOUNT_SAVINGS:
		return protocol.ACCOUNT_CODE_SAVINGS
	default:
		return 0
	}
}

func (a Account) String() string {
	switch a {
	case ACCOUNT_CHECKING:
		return "checking"
	case ACCOUNT_SAVINGS:
		return "savings"
	default:
		return "none"
	}
}

func ParseState(name string) (State, error) {
	for s := STATE_WELCOME; s <= STATE_CANCELLED; s++ {
		if s.String() == name {
			return s, nil
		}
	}

	return STATE_WELCOME, &UnknownStateError{name}
}

type UnknownStateError struct {
	Received string
}

func (err *UnknownStateError) Error() string {
	return fmt.Sprintf(
		"Unknown state\n\twant:welcome, amount, account, pin, approving, "+
			"or cancelled\n\thave:%q",
		err.Received,
	)
}
