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
	"bytes"
	"fmt"
	"strings"
)

func NewTextDisplay(columns, rows int) *TextDisplay {
	td := &TextDisplay{Columns: columns, Rows: rows}
	td.Clear()
	return td
}

func (td *TextDisplay) Clear() {
	if td.Columns <= 0 {
		td.Columns = DEFAULT_COLUMNS
	}

	if td.Rows <= 0 {
		td.Rows = DEFAULT_ROWS
	}

	td.cells = make([][]byte, td.Rows)

	for i := range td.cells {
		td.cells[i] = bytes.Repeat([]byte{' '}, td.Columns)
	}

	td.col = 0
	td.row = 0
}

func (td *TextDisplay) Goto(col, row int) {
	if td.cells == nil {
		td.Clear()
	}

	td.col = col
	td.row = row
}

func (td *TextDisplay) PutChar(c byte) {
	if td.cells == nil {
		td.Clear()
	}

	if td.row >= 0 && td.row < td.Rows && td.col >= 0 && td.col < td.Columns {
		td.cells[td.row][td.col] = c
	}

	td.col++
}

func (td *TextDisplay) PutString(s string) {
	for i := 0; i < len(s); i++ {
		td.PutChar(s[i])
	}
}

// Row contents without trailing blanks.
func (td *TextDisplay) Line(row int) string {
	if td.cells == nil || row < 0 || row >= td.Rows {
		return ""
	}

	return strings.TrimRight(string(td.cells[row]), " ")
}

func (td *TextDisplay) Lines() []string {
	result := make([]string, 0, td.Rows)

	for row := 0; row < td.Rows; row++ {
		result = append(result, td.Line(row))
	}

	return result
}

func (td *TextDisplay) String() string {
	return strings.Join(td.Lines(), "\n")
}

func (con *Console) Flush() error {
	if con.cells == nil {
		con.Clear()
	}

	var buf strings.Builder

	border := "+" + strings.Repeat("-", con.Columns) + "+"

	buf.WriteString(ANSI_HOME_CLEAR)

	if con.Title != "" {
		fmt.Fprintf(&buf, "%s%s%s\r\n", ANSI_DIM, con.Title, ANSI_RESET)
	}

	buf.WriteString(border + "\r\n")

	for _, row := range con.cells {
		fmt.Fprintf(&buf, "|%s%s%s|\r\n", ANSI_BOLD, row, ANSI_RESET)
	}

	buf.WriteString(border + "\r\n")

	_, err := fmt.Fprint(con.Output, buf.String())
	return err
}
