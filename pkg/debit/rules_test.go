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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/godebit/pkg/button"
	"github.com/lassandro/godebit/pkg/debit"
	"github.com/lassandro/godebit/pkg/protocol"
)

func lineEvent(line string) debit.Event {
	return debit.Event{Type: debit.EVENT_LINE, Line: line}
}

func pressEvent(b button.Button) debit.Event {
	return debit.Event{Type: debit.EVENT_PRESS, Button: b}
}

func hasEffect(effects []debit.Effect, kind debit.EffectType) bool {
	for _, fx := range effects {
		if fx.Type == kind {
			return true
		}
	}

	return false
}

func TestAwaits(t *testing.T) {
	tests := []struct {
		State debit.State
		Input debit.Input
	}{
		{debit.STATE_WELCOME, debit.INPUT_LINE},
		{debit.STATE_AMOUNT, debit.INPUT_PRESS},
		{debit.STATE_ACCOUNT, debit.INPUT_PRESS},
		{debit.STATE_PIN, debit.INPUT_PRESS},
		{debit.STATE_APPROVING, debit.INPUT_LINE},
		{debit.STATE_CANCELLED, debit.INPUT_NONE},
	}

	for _, test := range tests {
		assert.Equal(t, test.Input, debit.Awaits(test.State), test.State.String())
	}
}

func TestWelcomeAcceptsRequests(t *testing.T) {
	rules := debit.DefaultRules()

	for n := 1; n <= protocol.MAX_AMOUNT; n++ {
		for _, digit := range "0123456789" {
			amount := strings.Repeat(string(digit), n)
			start := debit.Snapshot{State: debit.STATE_WELCOME}

			next, _ := rules.Transition(start, lineEvent("RQ:"+amount))

			assert.Equal(t, debit.STATE_AMOUNT, next.State)
			assert.Equal(t, amount, next.Tx.Amount)
			assert.Equal(t, debit.ACCOUNT_NONE, next.Tx.Account)
		}
	}
}

func TestWelcomeIgnoresOtherLines(t *testing.T) {
	rules := debit.DefaultRules()
	rules.MaxMalformed = 0

	lines := []string{
		"", "Hello", "Ok", "rq:1099", "RQ1099", "RQ:", "RQ:1234567",
		"RQ:12a", "Info:Track 1,Track 2,0000,1,1",
	}

	snap := debit.Snapshot{State: debit.STATE_WELCOME}

	for _, line := range lines {
		next, effects := rules.Transition(snap, lineEvent(line))

		assert.Equal(t, debit.STATE_WELCOME, next.State, line)
		assert.Equal(t, "", next.Tx.Amount, line)
		assert.True(t, hasEffect(effects, debit.EFFECT_NOTE), line)
		assert.False(t, hasEffect(effects, debit.EFFECT_SEND), line)

		snap = next
	}

	assert.Equal(t, len(lines), snap.Tx.Malformed)
}

func TestWelcomeMalformedLimitResets(t *testing.T) {
	rules := debit.DefaultRules()
	snap := debit.Snapshot{State: debit.STATE_WELCOME}

	for i := 0; i < rules.MaxMalformed; i++ {
		snap, _ = rules.Transition(snap, lineEvent("garbage"))
	}

	assert.Equal(t, debit.STATE_WELCOME, snap.State)
	assert.Equal(t, 0, snap.Tx.Malformed)

	next, _ := rules.Transition(snap, debit.Event{Type: debit.EVENT_MALFORMED})
	assert.Equal(t, debit.STATE_WELCOME, next.State)
	assert.Equal(t, 1, next.Tx.Malformed)
}

func TestAmountState(t *testing.T) {
	rules := debit.DefaultRules()
	snap := debit.Snapshot{
		State: debit.STATE_AMOUNT,
		Tx:    debit.Transaction{Amount: "1099"},
	}

	next, _ := rules.Transition(snap, pressEvent(button.BUTTON_OK))
	assert.Equal(t, debit.STATE_ACCOUNT, next.State)
	assert.Equal(t, "1099", next.Tx.Amount)

	for _, b := range []button.Button{
		button.BUTTON_CANCEL, button.BUTTON_ADD1, button.BUTTON_ADD2,
	} {
		next, _ := rules.Transition(snap, pressEvent(b))
		assert.Equal(t, debit.STATE_CANCELLED, next.State, b.String())
		assert.Equal(t, debit.Transaction{}, next.Tx)
	}

	// Lines are not this state's input
	next, effects := rules.Transition(snap, lineEvent("RQ:5"))
	assert.Equal(t, snap, next)
	assert.Empty(t, effects)
}

func TestAccountState(t *testing.T) {
	tests := []struct {
		Name    string
		First   button.Button
		Confirm button.Button
		Account debit.Account
		Prompt  string
		State   debit.State
	}{
		{
			"Checking", button.BUTTON_OK, button.BUTTON_OK,
			debit.ACCOUNT_CHECKING, debit.TEXT_CONTINUE_CHQ, debit.STATE_PIN,
		},
		{
			"SavingsOnCancel", button.BUTTON_CANCEL, button.BUTTON_OK,
			debit.ACCOUNT_SAVINGS, debit.TEXT_CONTINUE_SAV, debit.STATE_PIN,
		},
		{
			"SavingsOnAdd1", button.BUTTON_ADD1, button.BUTTON_OK,
			debit.ACCOUNT_SAVINGS, debit.TEXT_CONTINUE_SAV, debit.STATE_PIN,
		},
		{
			"ConfirmCancelled", button.BUTTON_OK, button.BUTTON_CANCEL,
			debit.ACCOUNT_CHECKING, debit.TEXT_CONTINUE_CHQ,
			debit.STATE_CANCELLED,
		},
		{
			"ConfirmAdd2", button.BUTTON_ADD2, button.BUTTON_ADD2,
			debit.ACCOUNT_SAVINGS, debit.TEXT_CONTINUE_SAV,
			debit.STATE_CANCELLED,
		},
	}

	rules := debit.DefaultRules()

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			snap := debit.Snapshot{
				State: debit.STATE_ACCOUNT,
				Tx:    debit.Transaction{Amount: "1099"},
			}

			chosen, effects := rules.Transition(snap, pressEvent(test.First))

			require.Equal(t, debit.STATE_ACCOUNT, chosen.State)
			assert.Equal(t, test.Account, chosen.Tx.Account)
			assert.True(t, chosen.Tx.Confirming)
			assert.Contains(t, effects, debit.Effect{
				Type: debit.EFFECT_TEXT, Text: test.Prompt,
			})

			next, _ := rules.Transition(chosen, pressEvent(test.Confirm))

			assert.Equal(t, test.State, next.State)

			if test.State == debit.STATE_PIN {
				assert.Equal(t, test.Account, next.Tx.Account)
				assert.Equal(t, "0000", next.Tx.Pin.Pin())
				assert.Equal(t, 0, next.Tx.Pin.Cursor)
				assert.False(t, next.Tx.Confirming)
			} else {
				assert.Equal(t, debit.ACCOUNT_NONE, next.Tx.Account)
			}
		})
	}
}

func TestPinState(t *testing.T) {
	rules := debit.DefaultRules()
	snap := debit.Snapshot{
		State: debit.STATE_PIN,
		Tx: debit.Transaction{
			Amount:  "1099",
			Account: debit.ACCOUNT_SAVINGS,
			Pin:     debit.NewPinEditor(),
		},
	}

	next, effects := rules.Transition(snap, pressEvent(button.BUTTON_ADD1))
	assert.Equal(t, debit.STATE_PIN, next.State)
	assert.Equal(t, "1000", next.Tx.Pin.Pin())
	assert.Contains(t, effects, debit.Effect{
		Type: debit.EFFECT_TEXT, Col: debit.PIN_COL, Text: "[1]***",
	})

	approving, effects := rules.Transition(next, pressEvent(button.BUTTON_OK))
	assert.Equal(t, debit.STATE_APPROVING, approving.State)
	assert.Equal(t, "Track 1,Track 2,1000,1099,2", approving.Tx.Message)
	assert.Empty(t, effects)

	cancelled, _ := rules.Transition(next, pressEvent(button.BUTTON_CANCEL))
	assert.Equal(t, debit.STATE_CANCELLED, cancelled.State)
	assert.Equal(t, debit.Transaction{}, cancelled.Tx)
}

func TestPinStateAssemblyFailure(t *testing.T) {
	rules := debit.DefaultRules()
	rules.Track1 = "Track,1"

	snap := debit.Snapshot{
		State: debit.STATE_PIN,
		Tx: debit.Transaction{
			Amount:  "1099",
			Account: debit.ACCOUNT_CHECKING,
			Pin:     debit.NewPinEditor(),
		},
	}

	next, effects := rules.Transition(snap, pressEvent(button.BUTTON_OK))

	assert.Equal(t, debit.STATE_CANCELLED, next.State)
	assert.Empty(t, next.Tx.Message)
	assert.True(t, hasEffect(effects, debit.EFFECT_NOTE))
}

func approvingSnapshot() debit.Snapshot {
	return debit.Snapshot{
		State: debit.STATE_APPROVING,
		Tx: debit.Transaction{
			Amount:  "1099",
			Account: debit.ACCOUNT_CHECKING,
			Pin:     debit.NewPinEditor(),
			Message: "Track 1,Track 2,0000,1099,1",
		},
	}
}

func TestApprovingPolicy(t *testing.T) {
	tests := []struct {
		Policy protocol.ApprovalPolicy
		Line   string
		State  debit.State
	}{
		{protocol.DEFAULT_APPROVAL, "Ok", debit.STATE_WELCOME},
		{protocol.DEFAULT_APPROVAL, "NotOk", debit.STATE_CANCELLED},
		{protocol.DEFAULT_APPROVAL, "Declined", debit.STATE_CANCELLED},
		{protocol.APPROVE_CONTAINS, "Ok", debit.STATE_WELCOME},
		{protocol.APPROVE_CONTAINS, "NotOk", debit.STATE_WELCOME},
		{protocol.APPROVE_CONTAINS, "Declined", debit.STATE_CANCELLED},
	}

	for _, test := range tests {
		name := fmt.Sprintf("%s/%s", test.Policy, test.Line)

		t.Run(name, func(t *testing.T) {
			rules := debit.DefaultRules()
			rules.Approval = test.Policy

			next, effects := rules.Transition(
				approvingSnapshot(), lineEvent(test.Line),
			)

			assert.Equal(t, test.State, next.State)
			assert.Equal(t, debit.Transaction{}, next.Tx)

			approved := test.State == debit.STATE_WELCOME
			assert.Equal(t, approved, hasEffect(effects, debit.EFFECT_TONE))
			assert.Equal(t, approved, hasEffect(effects, debit.EFFECT_HOLD))

			if approved {
				assert.Contains(t, effects, debit.Effect{
					Type: debit.EFFECT_TONE, Cue: rules.ApproveCue,
				})
				assert.Contains(t, effects, debit.Effect{
					Type: debit.EFFECT_TEXT, Text: debit.TEXT_APPROVED,
				})
			}
		})
	}
}

func TestApprovingMalformedLimit(t *testing.T) {
	rules := debit.DefaultRules()
	snap := approvingSnapshot()

	snap, _ = rules.Transition(snap, lineEvent(""))
	assert.Equal(t, debit.STATE_APPROVING, snap.State)
	assert.Equal(t, 1, snap.Tx.Malformed)

	snap, _ = rules.Transition(snap, debit.Event{Type: debit.EVENT_MALFORMED})
	assert.Equal(t, debit.STATE_APPROVING, snap.State)
	assert.Equal(t, 2, snap.Tx.Malformed)

	snap, effects := rules.Transition(snap, lineEvent("  "))
	assert.Equal(t, debit.STATE_CANCELLED, snap.State)
	assert.True(t, hasEffect(effects, debit.EFFECT_NOTE))
}

func TestApprovingUnlimitedMalformed(t *testing.T) {
	rules := debit.DefaultRules()
	rules.MaxMalformed = 0
	snap := approvingSnapshot()

	for i := 0; i < 100; i++ {
		snap, _ = rules.Transition(snap, lineEvent(""))
	}

	assert.Equal(t, debit.STATE_APPROVING, snap.State)
	assert.Equal(t, 100, snap.Tx.Malformed)
}

func TestTimeoutCancels(t *testing.T) {
	rules := debit.DefaultRules()
	timeout := debit.Event{Type: debit.EVENT_TIMEOUT}

	for _, state := range []debit.State{
		debit.STATE_AMOUNT,
		debit.STATE_ACCOUNT,
		debit.STATE_PIN,
		debit.STATE_APPROVING,
	} {
		snap := approvingSnapshot()
		snap.State = state

		next, effects := rules.Transition(snap, timeout)

		assert.Equal(t, debit.STATE_CANCELLED, next.State, state.String())
		assert.True(t, hasEffect(effects, debit.EFFECT_NOTE), state.String())
	}

	welcome := debit.Snapshot{State: debit.STATE_WELCOME}
	next, _ := rules.Transition(welcome, timeout)
	assert.Equal(t, welcome, next)
}

func TestCancelledReturnsToWelcome(t *testing.T) {
	rules := debit.DefaultRules()
	snap := debit.Snapshot{State: debit.STATE_CANCELLED}

	next, effects := rules.Transition(snap, debit.Event{Type: debit.EVENT_NONE})

	assert.Equal(t, debit.Snapshot{State: debit.STATE_WELCOME}, next)
	assert.Empty(t, effects)
}

func TestEnterEffects(t *testing.T) {
	rules := debit.DefaultRules()

	cancelled := rules.Enter(debit.Snapshot{State: debit.STATE_CANCELLED})
	assert.Equal(t, []debit.Effect{
		{Type: debit.EFFECT_SEND, Text: protocol.CANCEL_NOTICE},
		{Type: debit.EFFECT_CLEAR},
		{Type: debit.EFFECT_TEXT, Text: debit.TEXT_CANCELLED},
		{Type: debit.EFFECT_TEXT, Row: 1, Text: debit.TEXT_CANCELLED2},
		{Type: debit.EFFECT_TONE, Cue: rules.CancelCue},
		{Type: debit.EFFECT_HOLD, Duration: debit.DEFAULT_HOLD},
	}, cancelled)

	rules.CancelNotice = ""
	quiet := rules.Enter(debit.Snapshot{State: debit.STATE_CANCELLED})
	assert.False(t, hasEffect(quiet, debit.EFFECT_SEND))

	approving := rules.Enter(approvingSnapshot())
	require.NotEmpty(t, approving)
	assert.Equal(t, debit.Effect{
		Type: debit.EFFECT_SEND,
		Text: "Info:Track 1,Track 2,0000,1099,1",
	}, approving[0])

	for _, fx := range approving {
		if fx.Type == debit.EFFECT_NOTE {
			assert.NotContains(t, fx.Text, "Track")
		}
	}
}

func TestParseState(t *testing.T) {
	for s := debit.STATE_WELCOME; s <= debit.STATE_CANCELLED; s++ {
		have, err := debit.ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, have)
	}

	_, err := debit.ParseState("idle")
	var unknown *debit.UnknownStateError
	assert.ErrorAs(t, err, &unknown)
}
