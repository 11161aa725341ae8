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

package protocol_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/godebit/pkg/protocol"
)

func randomDigits(rng *rand.Rand, n int) string {
	var sb strings.Builder

	for i := 0; i < n; i++ {
		sb.WriteByte(byte('0' + rng.Intn(10)))
	}

	return sb.String()
}

func TestParseRequestAccepts(t *testing.T) {
	rng := rand.New(rand.NewSource(8125))

	for n := 1; n <= protocol.MAX_AMOUNT; n++ {
		for i := 0; i < 50; i++ {
			want := randomDigits(rng, n)

			have, err := protocol.ParseRequest("RQ:" + want)
			require.NoError(t, err)
			assert.Equal(t, want, have)
		}
	}

	tests := []struct {
		Line   string
		Amount string
	}{
		{"RQ:1099", "1099"},
		{"RQ:1099\r\n", "1099"},
		{"  RQ:7  ", "7"},
		{"SCS>RQ:000001", "000001"},
	}

	for _, test := range tests {
		have, err := protocol.ParseRequest(test.Line)
		require.NoError(t, err, test.Line)
		assert.Equal(t, test.Amount, have)
	}
}

func TestParseRequestRejects(t *testing.T) {
	tests := []struct {
		Line     string
		NoMarker bool
	}{
		{"", true},
		{"Hello", true},
		{"rq:1099", true},
		{"RQ 1099", true},
		{"RQ:", false},
		{"RQ:1234567", false},
		{"RQ:12a4", false},
		{"RQ:-100", false},
		{"RQ:10.99", false},
		{"RQ:12 34", false},
	}

	for _, test := range tests {
		_, err := protocol.ParseRequest(test.Line)
		require.Error(t, err, test.Line)

		if test.NoMarker {
			assert.ErrorIs(t, err, protocol.ErrNoMarker, test.Line)
		} else {
			var invalid *protocol.InvalidAmountError
			assert.ErrorAs(t, err, &invalid, test.Line)
		}
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		Line     string
		Exact    protocol.Decision
		Contains protocol.Decision
	}{
		{"Ok", protocol.DECISION_APPROVED, protocol.DECISION_APPROVED},
		{"Ok\r", protocol.DECISION_APPROVED, protocol.DECISION_APPROVED},
		{"NotOk", protocol.DECISION_DECLINED, protocol.DECISION_APPROVED},
		{"Ok:1234", protocol.DECISION_DECLINED, protocol.DECISION_APPROVED},
		{"OK", protocol.DECISION_DECLINED, protocol.DECISION_DECLINED},
		{"Declined", protocol.DECISION_DECLINED, protocol.DECISION_DECLINED},
		{"", protocol.DECISION_NONE, protocol.DECISION_NONE},
		{"   ", protocol.DECISION_NONE, protocol.DECISION_NONE},
	}

	for _, test := range tests {
		assert.Equal(
			t, test.Exact,
			protocol.Decide(test.Line, protocol.APPROVE_EXACT),
			"exact %q", test.Line,
		)
		assert.Equal(
			t, test.Contains,
			protocol.Decide(test.Line, protocol.APPROVE_CONTAINS),
			"contains %q", test.Line,
		)
	}
}

func TestDefaultApprovalDeclinesSuperstring(t *testing.T) {
	assert.Equal(
		t,
		protocol.DECISION_DECLINED,
		protocol.Decide("NotOk", protocol.DEFAULT_APPROVAL),
	)
}

func TestParsePolicy(t *testing.T) {
	for _, policy := range []protocol.ApprovalPolicy{
		protocol.APPROVE_EXACT, protocol.APPROVE_CONTAINS,
	} {
		have, err := protocol.ParsePolicy(policy.String())
		require.NoError(t, err)
		assert.Equal(t, policy, have)
	}

	_, err := protocol.ParsePolicy("fuzzy")
	var unknown *protocol.UnknownPolicyError
	assert.ErrorAs(t, err, &unknown)
}

func TestBuffer(t *testing.T) {
	buf := protocol.NewBuffer(6)

	require.NoError(t, buf.Append("1234"))
	require.NoError(t, buf.AppendByte(','))

	err := buf.Append("99")
	var overflow *protocol.OverflowError
	require.ErrorAs(t, err, &overflow)
	assert.Equal(t, 6, overflow.Required)
	assert.Equal(t, 7, overflow.Received)

	// Refused appends leave the contents untouched
	assert.Equal(t, "1234,", buf.String())

	require.NoError(t, buf.AppendByte('1'))
	assert.ErrorAs(t, buf.AppendByte('2'), &overflow)
	assert.Equal(t, "1234,1", buf.String())
	assert.Equal(t, buf.Cap(), buf.Len())
}

func TestBuildInfoFields(t *testing.T) {
	rng := rand.New(rand.NewSource(2017))
	tracks := [][2]string{
		{"Track 1", "Track 2"},
		{"%B4000001234567899^DOE/JOHN^2512101?", ";4000001234567899=2512101?"},
		{"T", "U"},
	}

	for _, tr := range tracks {
		for _, account := range []byte{
			protocol.ACCOUNT_CODE_CHECKING, protocol.ACCOUNT_CODE_SAVINGS,
		} {
			for n := 1; n <= protocol.MAX_AMOUNT; n++ {
				pin := randomDigits(rng, protocol.PIN_LENGTH)
				amount := randomDigits(rng, n)

				msg, err := protocol.BuildInfo(tr[0], tr[1], pin, amount, account)
				require.NoError(t, err)

				fields := strings.Split(msg, ",")
				assert.Equal(
					t,
					[]string{tr[0], tr[1], pin, amount, string(account)},
					fields,
				)
				assert.LessOrEqual(
					t, len(msg), protocol.InfoCapacity(tr[0], tr[1]),
				)
			}
		}
	}
}

func TestBuildInfoWorstCaseFits(t *testing.T) {
	track1 := strings.Repeat("A", protocol.MAX_TRACK1)
	track2 := strings.Repeat("B", protocol.MAX_TRACK2)

	msg, err := protocol.BuildInfo(track1, track2, "9999", "999999", '2')
	require.NoError(t, err)
	assert.Equal(t, protocol.InfoCapacity(track1, track2), len(msg))
}

func TestBuildInfoRejects(t *testing.T) {
	tests := []struct {
		Name    string
		Track1  string
		Track2  string
		Pin     string
		Amount  string
		Account byte
	}{
		{"ShortPin", "Track 1", "Track 2", "123", "1099", '1'},
		{"LongPin", "Track 1", "Track 2", "12345", "1099", '1'},
		{"AlphaPin", "Track 1", "Track 2", "12a4", "1099", '1'},
		{"LongAmount", "Track 1", "Track 2", "1234", "1234567", '1'},
		{"EmptyAmount", "Track 1", "Track 2", "1234", "", '1'},
		{"NoAccount", "Track 1", "Track 2", "1234", "1099", 0},
		{"BadAccount", "Track 1", "Track 2", "1234", "1099", '3'},
		{"CommaTrack", "Track,1", "Track 2", "1234", "1099", '1'},
		{"NewlineTrack", "Track 1", "Track\n2", "1234", "1099", '1'},
		{"EmptyTrack", "", "Track 2", "1234", "1099", '1'},
		{
			"LongTrack",
			strings.Repeat("A", protocol.MAX_TRACK1+1),
			"Track 2", "1234", "1099", '1',
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			msg, err := protocol.BuildInfo(
				test.Track1, test.Track2, test.Pin, test.Amount, test.Account,
			)

			assert.Error(t, err)
			assert.Empty(t, msg)
		})
	}
}

func TestParseInfo(t *testing.T) {
	info, err := protocol.ParseInfo("Info:Track 1,Track 2,1234,1099,1\r\n")
	require.NoError(t, err)

	assert.Equal(t, protocol.Info{
		Track1:  "Track 1",
		Track2:  "Track 2",
		Pin:     "1234",
		Amount:  "1099",
		Account: '1',
	}, info)

	_, err = protocol.ParseInfo("Cncld")
	assert.ErrorIs(t, err, protocol.ErrNotInfo)

	_, err = protocol.ParseInfo("Info:Track 1,Track 2,1234,1099")
	assert.Error(t, err)

	_, err = protocol.ParseInfo("Info:Track 1,Track 2,1234,1099,12")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	line, err := protocol.FormatRequest("1099")
	require.NoError(t, err)
	assert.Equal(t, "RQ:1099", line)

	_, err = protocol.FormatRequest("1234567")
	assert.Error(t, err)

	assert.Equal(t, "Info:a,b,0000,1,2", protocol.FormatInfo("a,b,0000,1,2"))
}
