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

package display

import (
	"io"
)

// Display is a character cell screen addressed by column and row.
type Display interface {
	Clear()
	Goto(col, row int)
	PutChar(c byte)
	PutString(s string)
}

// Flusher is implemented by displays that buffer drawing until Flush.
type Flusher interface {
	Flush() error
}

// TextDisplay keeps the screen contents in memory. Characters written past
// the last column are dropped, as is anything drawn outside the grid.
type TextDisplay struct {
	Columns int
	Rows    int

	cells [][]byte
	col   int
	row   int
}

// Console draws a TextDisplay on a terminal each time it is flushed.
type Console struct {
	TextDisplay

	Output io.Writer
	Title  string
}
