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
	"errors"
	"fmt"
)

type ApprovalPolicy uint
type Decision uint

// Buffer is an append-only byte buffer with a fixed capacity. An append
// that does not fit is refused whole.
type Buffer struct {
	data []byte
	cap  int
}

// Fields of an outbound transaction message.
type Info struct {
	Track1  string
	Track2  string
	Pin     string
	Amount  string
	Account byte
}

var ErrNoMarker = errors.New("Request marker not found")
var ErrNotInfo = errors.New("Not an info message")

type InvalidAmountError struct {
	Received string
}

func (err *InvalidAmountError) Error() string {
	return fmt.Sprintf(
		"Invalid amount\n\twant:1-%d digits\n\thave:%q",
		MAX_AMOUNT,
		err.Received,
	)
}

type OverflowError struct {
	Required int
	Received int
}

func (err *OverflowError) Error() string {
	return fmt.Sprintf(
		"Buffer capacity exceeded\n\twant:%d\n\thave:%d",
		err.Required,
		err.Received,
	)
}

type InvalidFieldError struct {
	Field    string
	Required string
}

func (err *InvalidFieldError) Error() string {
	return fmt.Sprintf(
		"Invalid %s field\n\twant:%s",
		err.Field,
		err.Required,
	)
}

type UnknownPolicyError struct {
	Received string
}

func (err *UnknownPolicyError) Error() string {
	return fmt.Sprintf(
		"Unknown approval policy\n\twant:exact or contains\n\thave:%q",
		err.Received,
	)
}
