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

package tty

import (
	"fmt"

	"golang.org/x/sys/unix"
)

var BAUD_RATES = []int{9600, 19200, 38400, 57600, 115200}

func CheckBaud(baud int) error {
	for _, rate := range BAUD_RATES {
		if rate == baud {
			return nil
		}
	}

	return &UnsupportedBaudError{baud}
}

type UnsupportedBaudError struct {
	Received int
}

func (err *UnsupportedBaudError) Error() string {
	return fmt.Sprintf(
		"Unsupported baud rate\n\twant:9600, 19200, 38400, 57600, or 115200"+
			"\n\thave:%d",
		err.Received,
	)
}

func IsTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	return err == nil
}

// Puts the terminal in non-canonical mode without echo. Reads block for at
// least one byte. Signals stay enabled so ^C still interrupts. The returned
// state is what Restore expects.
func MakeRaw(fd int) (*unix.Termios, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)

	if err != nil {
		return nil, err
	}

	restore := *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &termstate); err != nil {
		return nil, err
	}

	return &restore, nil
}

// Configures a serial line for the SCS link: raw 8N1, no flow control, no
// output processing, receiver enabled, at the given baud rate.
func MakeSerial(fd int, baud int) (*unix.Termios, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)

	if err != nil {
		return nil, err
	}

	restore := *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK |
		unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON |
		unix.IXOFF
	termstate.Oflag &^= unix.OPOST
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG |
		unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CRTSCTS
	termstate.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL

	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	if err := setSpeed(&termstate, baud); err != nil {
		return nil, err
	}

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &termstate); err != nil {
		return nil, err
	}

	return &restore, nil
}

func Restore(fd int, state *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, state)
}
