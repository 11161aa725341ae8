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

package scenario

const (
	COMMAND_NONE CommandType = iota
	COMMAND_SCS
	COMMAND_PRESS
	COMMAND_STEP
	COMMAND_RUN
	COMMAND_EXPECT
)

const (
	EXPECT_NONE ExpectType = iota
	EXPECT_STATE
	EXPECT_DISPLAY
	EXPECT_SENT
	EXPECT_QUIET
)

const (
	COMMENT_CHAR = '#'
	CHORD_CHAR   = "+"
)

// Upper bound on steps taken by a single run command.
const MAX_RUN_STEPS = 1024
