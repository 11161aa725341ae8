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
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/lassandro/godebit/pkg/tty"
)

// Opens the SCS device. Terminals are switched to raw 8N1 at baud; other
// files such as FIFOs are used as they are.
func OpenPort(path string, baud int) (*Port, error) {
	file, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)

	if err != nil {
		return nil, err
	}

	port := &Port{File: file}
	fd := int(file.Fd())

	if tty.IsTerminal(fd) {
		if port.restore, err = tty.MakeSerial(fd, baud); err != nil {
			file.Close()
			return nil, fmt.Errorf("configure %s: %w", path, err)
		}
	}

	return port, nil
}

func (port *Port) Close() error {
	if port.restore != nil {
		if err := tty.Restore(int(port.File.Fd()), port.restore); err != nil {
			port.File.Close()
			return err
		}
	}

	return port.File.Close()
}
