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
	"fmt"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/protocol"
	"github.com/lassandro/godebit/pkg/sound"
)

func DefaultRules() Rules {
	return Rules{
		Track1:       DEFAULT_TRACK1,
		Track2:       DEFAULT_TRACK2,
		Approval:     protocol.DEFAULT_APPROVAL,
		MaxMalformed: DEFAULT_MAX_MALFORMED,
		Hold:         DEFAULT_HOLD,
		ApproveCue: sound.ApproveCue(
			sound.TONE_LOW, sound.TONE_HIGH, sound.TONE_DURATION,
		),
		CancelCue: sound.CancelCue(
			sound.TONE_LOW, sound.TONE_HIGH, sound.TONE_DURATION,
		),
		CancelNotice: protocol.CANCEL_NOTICE,
	}
}

// The input a state consumes before it can move on.
func Awaits(s State) Input {
	switch s {
	case STATE_WELCOME, STATE_APPROVING:
		return INPUT_LINE
	case STATE_AMOUNT, STATE_ACCOUNT, STATE_PIN:
		return INPUT_PRESS
	default:
		return INPUT_NONE
	}
}

// Effects performed on entering snap.State.
func (r *Rules) Enter(snap Snapshot) []Effect {
	switch snap.State {
	case STATE_WELCOME:
		return screen(TEXT_WELCOME)

	case STATE_AMOUNT:
		return append(screen(TEXT_AMOUNT+snap.Tx.Amount), labels()...)

	case STATE_ACCOUNT:
		return screen(TEXT_CHOOSE, TEXT_CHQ_SAV)

	case STATE_PIN:
		return pinScreen(snap.Tx.Pin)

	case STATE_APPROVING:
		// Card data stays out of the log, only the size is noted
		effects := []Effect{
			{Type: EFFECT_SEND, Text: protocol.FormatInfo(snap.Tx.Message)},
			note("sent transaction info (%d bytes)", len(snap.Tx.Message)),
		}
		return append(effects, screen(TEXT_APPROVING)...)

	case STATE_CANCELLED:
		var effects []Effect

		if r.CancelNotice != "" {
			effects = append(effects, Effect{Type: EFFECT_SEND, Text: r.CancelNotice})
		}

		effects = append(effects, screen(TEXT_CANCELLED, TEXT_CANCELLED2)...)
		return append(
			effects,
			Effect{Type: EFFECT_TONE, Cue: r.CancelCue},
			Effect{Type: EFFECT_HOLD, Duration: r.Hold},
		)
	}

	return nil
}

// Pure transition table. The returned effects belong to the event itself;
// entry effects of a new state come from Enter.
func (r *Rules) Transition(snap Snapshot, ev Event) (Snapshot, []Effect) {
	if ev.Type == EVENT_TIMEOUT &&
		snap.State != STATE_WELCOME && snap.State != STATE_CANCELLED {
		return cancelled(), []Effect{
			note("timed out waiting in %s", snap.State),
		}
	}

	switch snap.State {
	case STATE_WELCOME:
		return r.welcome(snap, ev)
	case STATE_AMOUNT:
		return r.amount(snap, ev)
	case STATE_ACCOUNT:
		return r.account(snap, ev)
	case STATE_PIN:
		return r.pin(snap, ev)
	case STATE_APPROVING:
		return r.approving(snap, ev)
	case STATE_CANCELLED:
		return Snapshot{State: STATE_WELCOME}, nil
	}

	return snap, nil
}

func (r *Rules) welcome(snap Snapshot, ev Event) (Snapshot, []Effect) {
	switch ev.Type {
	case EVENT_LINE:
		amount, err := protocol.ParseRequest(ev.Line)

		if err != nil {
			return r.malformed(snap, note("discarded request: %v", err))
		}

		return Snapshot{
			State: STATE_AMOUNT,
			Tx:    Transaction{Amount: amount},
		}, nil

	case EVENT_MALFORMED:
		return r.malformed(snap, note("discarded oversized request"))
	}

	return snap, nil
}

func (r *Rules) amount(snap Snapshot, ev Event) (Snapshot, []Effect) {
	if ev.Type != EVENT_PRESS {
		return snap, nil
	}

	if ev.Button != button.BUTTON_OK {
		return cancelled(), nil
	}

	snap.State = STATE_ACCOUNT
	return snap, nil
}

func (r *Rules) account(snap Snapshot, ev Event) (Snapshot, []Effect) {
	if ev.Type != EVENT_PRESS {
		return snap, nil
	}

	if !snap.Tx.Confirming {
		prompt := TEXT_CONTINUE_SAV
		snap.Tx.Account = ACCOUNT_SAVINGS

		if ev.Button == button.BUTTON_OK {
			prompt = TEXT_CONTINUE_CHQ
			snap.Tx.Account = ACCOUNT_CHECKING
		}

		snap.Tx.Confirming = true
		return snap, append(screen(prompt), labels()...)
	}

	if ev.Button != button.BUTTON_OK {
		return cancelled(), nil
	}

	snap.State = STATE_PIN
	snap.Tx.Confirming = false
	snap.Tx.Pin = NewPinEditor()
	return snap, nil
}

func (r *Rules) pin(snap Snapshot, ev Event) (Snapshot, []Effect) {
	if ev.Type != EVENT_PRESS {
		return snap, nil
	}

	switch snap.Tx.Pin.Press(ev.Button) {
	case EDIT_CANCEL:
		return cancelled(), nil

	case EDIT_CONFIRM:
		msg, err := protocol.BuildInfo(
			r.Track1,
			r.Track2,
			snap.Tx.Pin.Pin(),
			snap.Tx.Amount,
			snap.Tx.Account.Code(),
		)

		if err != nil {
			return cancelled(), []Effect{
				note("transaction info not assembled: %v", err),
			}
		}

		snap.State = STATE_APPROVING
		snap.Tx.Message = msg
		return snap, nil
	}

	return snap, pinScreen(snap.Tx.Pin)
}

func (r *Rules) approving(snap Snapshot, ev Event) (Snapshot, []Effect) {
	switch ev.Type {
	case EVENT_LINE:
		switch protocol.Decide(ev.Line, r.Approval) {
		case protocol.DECISION_APPROVED:
			effects := []Effect{
				note("approved"),
				{Type: EFFECT_TONE, Cue: r.ApproveCue},
			}
			effects = append(effects, screen(TEXT_APPROVED)...)
			effects = append(effects, Effect{Type: EFFECT_HOLD, Duration: r.Hold})
			return Snapshot{State: STATE_WELCOME}, effects

		case protocol.DECISION_DECLINED:
			return cancelled(), []Effect{note("declined")}
		}

		return r.malformed(snap, note("discarded blank reply"))

	case EVENT_MALFORMED:
		return r.malformed(snap, note("discarded oversized reply"))
	}

	return snap, nil
}

// Counts a discarded line. At Approving too many in a row cancel the
// transaction; at Welcome the count only triggers a summary note.
func (r *Rules) malformed(snap Snapshot, reason Effect) (Snapshot, []Effect) {
	snap.Tx.Malformed++
	effects := []Effect{reason}

	if r.MaxMalformed <= 0 || snap.Tx.Malformed < r.MaxMalformed {
		return snap, effects
	}

	if snap.State == STATE_APPROVING {
		return cancelled(), append(
			effects, note("no decision after %d replies", snap.Tx.Malformed),
		)
	}

	effects = append(
		effects, note("%d malformed requests in a row", snap.Tx.Malformed),
	)
	snap.Tx.Malformed = 0
	return snap, effects
}

func cancelled() Snapshot {
	return Snapshot{State: STATE_CANCELLED}
}

func screen(lines ...string) []Effect {
	effects := []Effect{{Type: EFFECT_CLEAR}}

	for row, line := range lines {
		effects = append(effects, Effect{Type: EFFECT_TEXT, Row: row, Text: line})
	}

	return effects
}

func labels() []Effect {
	return []Effect{
		{Type: EFFECT_TEXT, Col: LABEL_OK_COL, Row: LABEL_ROW, Text: TEXT_OK},
		{Type: EFFECT_TEXT, Col: LABEL_CANCEL_COL, Row: LABEL_ROW, Text: TEXT_CANCEL},
	}
}

func pinScreen(ed PinEditor) []Effect {
	effects := screen(TEXT_ENTER_PIN)
	effects = append(effects, Effect{
		Type: EFFECT_TEXT,
		Col:  PIN_COL,
		Text: ed.Render(),
	})
	return append(effects, labels()...)
}

func note(format string, args ...interface{}) Effect {
	return Effect{Type: EFFECT_NOTE, Text: fmt.Sprintf(format, args...)}
}
