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

const (
	DEFAULT_COLUMNS = 16
	DEFAULT_ROWS    = 2
)

const (
	ANSI_HOME_CLEAR = "\033[H\033[2J"
	ANSI_BOLD       = "\033[1m"
	ANSI_DIM        = "\033[1;30m"
	ANSI_RESET      = "\033[0m"
)
