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

func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity), cap: capacity}
}

func (buf *Buffer) Append(s string) error {
	if len(buf.data)+len(s) > buf.cap {
		return &OverflowError{buf.cap, len(buf.data) + len(s)}
	}

	buf.data = append(buf.data, s...)
	return nil
}

func (buf *Buffer) AppendByte(c byte) error {
	if len(buf.data)+1 > buf.cap {
		return &OverflowError{buf.cap, len(buf.data) + 1}
	}

	buf.data = append(buf.data, c)
	return nil
}

func (buf *Buffer) Len() int {
	return len(buf.data)
}

func (buf *Buffer) Cap() int {
	return buf.cap
}

func (buf *Buffer) String() string {
	return string(buf.data)
}
