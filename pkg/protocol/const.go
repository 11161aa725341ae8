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

const (
	REQUEST_MARKER  = "RQ:"
	INFO_PREFIX     = "Info:"
	APPROVAL_TOKEN  = "Ok"
	FIELD_SEPARATOR = ","
	CANCEL_NOTICE   = "Cncld"
)

const (
	MAX_AMOUNT  = 6
	PIN_LENGTH  = 4
	INFO_FIELDS = 5
	MAX_TRACK1  = 79
	MAX_TRACK2  = 40
)

const (
	ACCOUNT_CODE_CHECKING byte = '1'
	ACCOUNT_CODE_SAVINGS  byte = '2'
)

const (
	// Reply must be exactly the approval token
	APPROVE_EXACT ApprovalPolicy = iota
	// Reply only has to contain the approval token. "NotOk" approves.
	APPROVE_CONTAINS
)

// How bank replies are matched unless configured otherwise.
const DEFAULT_APPROVAL = APPROVE_EXACT

const (
	DECISION_NONE Decision = iota
	DECISION_APPROVED
	DECISION_DECLINED
)
