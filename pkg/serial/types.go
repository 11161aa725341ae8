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

package serial

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// Link is the line oriented text channel to the store cash software.
type Link struct {
	MaxLine    int
	Terminator string

	reader io.Reader
	writer *bufio.Writer
	lines  chan received
	once   sync.Once
	err    error
}

type received struct {
	line string
	err  error
}

// Port is a serial device opened for the SCS link.
type Port struct {
	*os.File

	restore *unix.Termios
}

type LineTooLongError struct {
	Required int
	Received int
}

func (err *LineTooLongError) Error() string {
	return fmt.Sprintf(
		"Line exceeds allowed length\n\twant:%d\n\thave:%d",
		err.Required,
		err.Received,
	)
}
