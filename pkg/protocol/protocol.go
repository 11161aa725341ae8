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

package protocol

import (
	"strconv"
	"strings"
)

// Extracts the amount from a request line. Everything after the first
// marker must be 1 to MAX_AMOUNT digits; anything else is rejected rather
// than truncated.
func ParseRequest(line string) (string, error) {
	line = strings.TrimSpace(line)
	i := strings.Index(line, REQUEST_MARKER)

	if i == -1 {
		return "", ErrNoMarker
	}

	amount := line[i+len(REQUEST_MARKER):]

	if !IsAmount(amount) {
		return "", &InvalidAmountError{amount}
	}

	return amount, nil
}

func FormatRequest(amount string) (string, error) {
	if !IsAmount(amount) {
		return "", &InvalidAmountError{amount}
	}

	return REQUEST_MARKER + amount, nil
}

// Classifies a bank reply. A blank line carries no decision.
func Decide(line string, policy ApprovalPolicy) Decision {
	line = strings.TrimSpace(line)

	if line == "" {
		return DECISION_NONE
	}

	switch policy {
	case APPROVE_CONTAINS:
		if strings.Contains(line, APPROVAL_TOKEN) {
			return DECISION_APPROVED
		}
	default:
		if line == APPROVAL_TOKEN {
			return DECISION_APPROVED
		}
	}

	return DECISION_DECLINED
}

func ParsePolicy(name string) (ApprovalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exact":
		return APPROVE_EXACT, nil
	case "contains":
		return APPROVE_CONTAINS, nil
	}

	return DEFAULT_APPROVAL, &UnknownPolicyError{name}
}

func (policy ApprovalPolicy) String() string {
	if policy == APPROVE_CONTAINS {
		return "contains"
	}

	return "exact"
}

func (decision Decision) String() string {
	switch decision {
	case DECISION_APPROVED:
		return "approved"
	case DECISION_DECLINED:
		return "declined"
	default:
		return "none"
	}
}

// Worst case message size for the given tracks: both tracks, the PIN, the
// longest amount, the account code and the four separators.
func InfoCapacity(track1, track2 string) int {
	return len(track1) + len(track2) + PIN_LENGTH + MAX_AMOUNT + 1 +
		(INFO_FIELDS - 1)
}

// Assembles track1,track2,pin,amount,account. Each field is appended in
// turn to a buffer sized by InfoCapacity.
func BuildInfo(track1, track2, pin, amount string, account byte) (string, error) {
	if err := ValidateTrack("track1", track1, MAX_TRACK1); err != nil {
		return "", err
	}

	if err := ValidateTrack("track2", track2, MAX_TRACK2); err != nil {
		return "", err
	}

	if len(pin) != PIN_LENGTH || !isDigits(pin) {
		return "", &InvalidFieldError{"pin", "4 digits"}
	}

	if !IsAmount(amount) {
		return "", &InvalidAmountError{amount}
	}

	if account != ACCOUNT_CODE_CHECKING && account != ACCOUNT_CODE_SAVINGS {
		return "", &InvalidFieldError{"account", "1 or 2"}
	}

	buf := NewBuffer(InfoCapacity(track1, track2))

	for _, field := range []string{track1, track2, pin, amount} {
		if err := buf.Append(field); err != nil {
			return "", err
		}

		if err := buf.Append(FIELD_SEPARATOR); err != nil {
			return "", err
		}
	}

	if err := buf.AppendByte(account); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func FormatInfo(msg string) string {
	return INFO_PREFIX + msg
}

func ParseInfo(line string) (Info, error) {
	line = strings.TrimSpace(line)

	if !strings.HasPrefix(line, INFO_PREFIX) {
		return Info{}, ErrNotInfo
	}

	fields := strings.Split(line[len(INFO_PREFIX):], FIELD_SEPARATOR)

	if len(fields) != INFO_FIELDS {
		return Info{}, &InvalidFieldError{"info", "5 fields"}
	}

	if len(fields[4]) != 1 {
		return Info{}, &InvalidFieldError{"account", "1 or 2"}
	}

	info := Info{
		Track1:  fields[0],
		Track2:  fields[1],
		Pin:     fields[2],
		Amount:  fields[3],
		Account: fields[4][0],
	}

	if _, err := BuildInfo(
		info.Track1, info.Track2, info.Pin, info.Amount, info.Account,
	); err != nil {
		return Info{}, err
	}

	return info, nil
}

func ValidateTrack(name, track string, limit int) error {
	if track == "" || len(track) > limit {
		return &InvalidFieldError{name, "1-" + strconv.Itoa(limit) + " characters"}
	}

	for i := 0; i < len(track); i++ {
		if c := track[i]; c < 0x20 || c > 0x7e || c == FIELD_SEPARATOR[0] {
			return &InvalidFieldError{name, "printable ASCII without ','"}
		}
	}

	return nil
}

func IsAmount(s string) bool {
	return len(s) > 0 && len(s) <= MAX_AMOUNT && isDigits(s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
